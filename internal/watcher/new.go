package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
	"github.com/nguyentantai21042004/playlist-digest/internal/retry"
)

// DefaultDebounce is how long a file must stay unchanged before it is handled.
const DefaultDebounce = 500 * time.Millisecond

// Option customizes a Watcher.
type Option func(*implWatcher)

// WithDebounce sets the quiet period before a changed file is handled.
func WithDebounce(d time.Duration) Option {
	return func(w *implWatcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithPause keeps at least d between the end of one handled file and the
// start of the next.
func WithPause(d time.Duration) Option {
	return func(w *implWatcher) { w.pause = d }
}

// WithSleep replaces the wait used for the pause.
func WithSleep(sleep retry.SleepFunc) Option {
	return func(w *implWatcher) { w.sleep = sleep }
}

// New creates a Watcher on dir. Files are handed to handler one at a time.
func New(dir string, handler EventHandler, log logger.Logger, opts ...Option) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	w := &implWatcher{
		dir:      dir,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		debounce: DefaultDebounce,
		sleep:    retry.Sleep,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}
