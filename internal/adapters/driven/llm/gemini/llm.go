// Package gemini provides an LLM service adapter for the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/custodia-labs/deepscout/internal/core/domain"
	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Config holds configuration for the Gemini LLM service.
type Config struct {
	// Model is the Gemini model name (default: gemini-2.0-flash).
	Model string

	// BaseURL overrides the API endpoint. Empty uses the SDK default.
	BaseURL string
}

// LLMService generates text through the genai SDK.
// One client is kept per API key; a new key builds a new client.
type LLMService struct {
	model   string
	baseURL string

	mu      sync.Mutex
	clients map[string]*genai.Client
}

// NewLLMService creates a new Gemini LLM service.
func NewLLMService(cfg Config) *LLMService {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &LLMService{
		model:   cfg.Model,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		clients: make(map[string]*genai.Client),
	}
}

// Generate sends prompt as a single user turn and returns the concatenated text parts.
func (s *LLMService) Generate(ctx context.Context, apiKey, prompt string, opts driven.GenerateOptions) (string, error) {
	client, err := s.client(ctx, apiKey)
	if err != nil {
		return "", err
	}

	resp, err := client.Models.GenerateContent(
		ctx,
		s.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		generateConfig(opts),
	)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: no response content returned")
	}
	return text, nil
}

// ModelName returns the configured model.
func (s *LLMService) ModelName() string {
	return s.model
}

// Ping fetches the model metadata, which checks the key without running inference.
func (s *LLMService) Ping(ctx context.Context, apiKey string) error {
	client, err := s.client(ctx, apiKey)
	if err != nil {
		return err
	}
	if _, err := client.Models.Get(ctx, s.model, nil); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close drops cached clients.
func (s *LLMService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = make(map[string]*genai.Client)
	return nil
}

func (s *LLMService) client(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", domain.ErrAPIKeyMissing)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.clients[apiKey]; ok {
		return c, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if s.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: s.baseURL + "/"}
	}

	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	s.clients[apiKey] = c
	return c, nil
}

func generateConfig(opts driven.GenerateOptions) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens) //nolint:gosec // bounded by caller
	}
	if opts.Temperature > 0 {
		t := float32(opts.Temperature)
		cfg.Temperature = &t
	}
	if len(opts.StopWords) > 0 {
		cfg.StopSequences = opts.StopWords
	}
	return cfg
}
