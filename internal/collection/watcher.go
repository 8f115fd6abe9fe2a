package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/deckforge/deckforge/internal/deck"
)

// Watcher re-imports a collection file whenever it changes on disk.
// Editors often produce bursts of write events, so imports are debounced.
type Watcher struct {
	path     string
	delay    time.Duration
	onImport func([]deck.OwnedCard)
	onError  func(error)
}

// NewWatcher creates a watcher for the given collection file. onImport
// receives the freshly parsed collection; onError may be nil.
func NewWatcher(path string, delay time.Duration, onImport func([]deck.OwnedCard), onError func(error)) *Watcher {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Watcher{path: path, delay: delay, onImport: onImport, onError: onError}
}

// Start blocks, watching the file until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	var timer *time.Timer
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			pending = timer.C

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.reportError(fmt.Errorf("file watcher error: %w", werr))

		case <-pending:
			pending = nil
			owned, err := ParseFile(w.path)
			if err != nil {
				w.reportError(fmt.Errorf("re-import failed: %w", err))
				continue
			}
			w.onImport(owned)
		}
	}
}

func (w *Watcher) reportError(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}
