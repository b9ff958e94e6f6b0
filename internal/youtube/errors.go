package youtube

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned when no video id can be found in a link.
	ErrInvalidURL = errors.New("youtube: invalid video url")
	// ErrNoCaptions is returned when a video has no caption track in the
	// requested language.
	ErrNoCaptions = errors.New("youtube: no captions available")
	// ErrMissingField marks an API record without a required field.
	ErrMissingField = errors.New("youtube: missing required field")
	// ErrEmptyPlaylist is returned when a playlist lists no videos.
	ErrEmptyPlaylist = errors.New("youtube: playlist has no items")
)

// FieldError describes an API record that could not be converted.
type FieldError struct {
	Kind  string
	ID    string
	Field string
}

func (e *FieldError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("youtube: %s record missing %s", e.Kind, e.Field)
	}
	return fmt.Sprintf("youtube: %s %s missing %s", e.Kind, e.ID, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}
