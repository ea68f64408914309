package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deepscout/internal/core/ports/driven"
)

func TestPromptWatcher_ReloadsOnWrite(t *testing.T) {
	store := newTestPromptStore(t)

	before, err := store.Load(driven.PromptPlain)
	require.NoError(t, err)
	assert.Equal(t, "Answer: {query}", before)

	w, err := NewPromptWatcher(store)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "plain.txt"), []byte("Live {query}"), 0600))

	select {
	case name := <-w.Changed():
		assert.Equal(t, driven.PromptPlain, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	after, err := store.Load(driven.PromptPlain)
	require.NoError(t, err)
	assert.Equal(t, "Live {query}", after)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewPromptWatcher_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "prompts")
	store, err := NewPromptStore(dir, testDefaults)
	require.NoError(t, err)

	w, err := NewPromptWatcher(store)
	require.NoError(t, err)
	defer w.Close()

	_, err = os.Stat(filepath.Join(dir, "plain.txt"))
	assert.NoError(t, err)
}
