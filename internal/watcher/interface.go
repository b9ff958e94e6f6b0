package watcher

import "context"

// Watcher monitors a directory for transcript files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one settled transcript file.
type EventHandler func(ctx context.Context, filePath string) error
