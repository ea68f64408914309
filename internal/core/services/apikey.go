package services

import (
	"strings"
	"sync"

	"github.com/custodia-labs/deepscout/internal/core/domain"
)

// EnvAPIKey overrides any provider-specific variable and the config file.
//
//nolint:gosec // G101: environment variable name, not a credential.
const EnvAPIKey = "DEEPSCOUT_API_KEY"

// Key sources reported by APIKeyHolder.Source.
const (
	KeySourceNone    = "not configured"
	KeySourceFile    = "config file"
	KeySourceRuntime = "set at runtime"
)

// APIKeyHolder is the single active LLM credential shared by every
// LLM-calling component. It is safe for concurrent use.
//
// Initialisation order: EnvAPIKey, then the provider variable
// (e.g. GOOGLE_API_KEY), then the persisted config value.
// A later Set always replaces the active key.
type APIKeyHolder struct {
	mu          sync.RWMutex
	key         string
	source      string
	requiresKey bool
}

// NewAPIKeyHolder resolves the initial key. getenv may be nil.
func NewAPIKeyHolder(provider domain.AIProvider, fileKey string, getenv func(string) string) *APIKeyHolder {
	h := &APIKeyHolder{
		source:      KeySourceNone,
		requiresKey: provider.RequiresAPIKey(),
	}

	if getenv != nil {
		for _, name := range []string{EnvAPIKey, provider.EnvKey()} {
			if name == "" {
				continue
			}
			if v := strings.TrimSpace(getenv(name)); v != "" {
				h.key = v
				h.source = "environment (" + name + ")"
				return h
			}
		}
	}

	if v := strings.TrimSpace(fileKey); v != "" {
		h.key = v
		h.source = KeySourceFile
	}
	return h
}

// Get returns the active key, possibly empty.
func (h *APIKeyHolder) Get() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.key
}

// Set replaces the active key.
func (h *APIKeyHolder) Set(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.key = strings.TrimSpace(key)
	if h.key == "" {
		h.source = KeySourceNone
		return
	}
	h.source = KeySourceRuntime
}

// SetProvider updates whether the active provider needs a key at all.
func (h *APIKeyHolder) SetProvider(provider domain.AIProvider) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requiresKey = provider.RequiresAPIKey()
}

// Source describes where the active key came from.
func (h *APIKeyHolder) Source() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.source
}

// Configured reports whether LLM calls can be attempted.
func (h *APIKeyHolder) Configured() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.requiresKey || h.key != ""
}
