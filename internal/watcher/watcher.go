package watcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
	"github.com/nguyentantai21042004/playlist-digest/internal/retry"
	"github.com/nguyentantai21042004/playlist-digest/internal/transcript"
)

type implWatcher struct {
	dir      string
	handler  EventHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	debounce time.Duration
	pause    time.Duration
	sleep    retry.SleepFunc
	lastDone time.Time
}

// Start monitors the directory until ctx is cancelled. Create and write
// events are collected per file; a file is handled once no event has arrived
// for it during the debounce period.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.dir)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(max(w.debounce/4, 10*time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !transcript.IsTranscriptFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-transcript file: %s", event.Name)
				continue
			}
			pending[event.Name] = time.Now()

		case now := <-ticker.C:
			w.handleAll(ctx, settled(pending, now, w.debounce))

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// handleAll hands paths to the handler one at a time, pausing between files.
func (w *implWatcher) handleAll(ctx context.Context, paths []string) {
	for _, path := range paths {
		if w.pause > 0 && !w.lastDone.IsZero() {
			if wait := w.pause - time.Since(w.lastDone); wait > 0 {
				if err := w.sleep(ctx, wait); err != nil {
					return
				}
			}
		}
		if ctx.Err() != nil {
			return
		}

		w.logger.Info(ctx, "New transcript detected: %s", path)
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
		w.lastDone = time.Now()
	}
}

// Stop closes the file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// settled removes and returns, sorted, the paths whose last event is at least
// quiet old.
func settled(pending map[string]time.Time, now time.Time, quiet time.Duration) []string {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= quiet {
			ready = append(ready, path)
			delete(pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}
