package file

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/deepscout/internal/logger"
)

// PromptWatcher reloads a PromptStore whenever a template file changes.
type PromptWatcher struct {
	store   *PromptStore
	watcher *fsnotify.Watcher
	changed chan string
}

// NewPromptWatcher starts watching the store's prompt directory.
// The directory is created if needed.
func NewPromptWatcher(store *PromptStore) (*PromptWatcher, error) {
	if err := store.Init(); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(store.Dir()); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", store.Dir(), err)
	}

	return &PromptWatcher{
		store:   store,
		watcher: w,
		changed: make(chan string, 16),
	}, nil
}

// Changed receives the name of each reloaded prompt. Sends never block;
// notifications are dropped when nobody is reading.
func (w *PromptWatcher) Changed() <-chan string {
	return w.changed
}

// Run processes file events until ctx is cancelled or the watcher is closed.
func (w *PromptWatcher) Run(ctx context.Context) error {
	defer close(w.changed)

	for {
		select {
		case <-ctx.Done():
			return w.watcher.Close()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			name, ok := w.store.NameForPath(event.Name)
			if !ok {
				continue
			}
			w.store.Reload()
			logger.Info("Prompt %q changed, reloaded templates", name)
			select {
			case w.changed <- name:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("prompt watcher: %v", err)
		}
	}
}

// Close stops watching.
func (w *PromptWatcher) Close() error {
	return w.watcher.Close()
}
