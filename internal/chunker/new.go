package chunker

import (
	"errors"
	"fmt"
)

const (
	DefaultSize    = 6000
	DefaultOverlap = 400
)

// ErrInvalidWindow is returned for a size/overlap pair that could not make progress.
var ErrInvalidWindow = errors.New("invalid chunk window")

type implChunker struct {
	size    int
	overlap int
}

// New creates a Chunker producing windows of size characters where each
// window starts overlap characters before the previous one ended.
func New(size, overlap int) (Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size %d must be positive", ErrInvalidWindow, size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d must be non-negative", ErrInvalidWindow, overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than size %d", ErrInvalidWindow, overlap, size)
	}

	return &implChunker{size: size, overlap: overlap}, nil
}
