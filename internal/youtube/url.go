package youtube

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reVideoID  = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[&?].*)?$`)
	reSpaces   = regexp.MustCompile(`\s+`)
	reSlugDrop = regexp.MustCompile(`[^0-9A-Za-z가-힣_\-]+`)
)

const maxSlugLen = 120

// VideoIDFromURL extracts the 11-character video id from a watch, short or
// embed link.
func VideoIDFromURL(link string) (string, error) {
	m := reVideoID.FindStringSubmatch(link)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, link)
	}
	return m[1], nil
}

// WatchURL builds the playlist-scoped watch link stored in the catalog.
func WatchURL(videoID, playlistID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s&list=%s", videoID, playlistID)
}

// Slugify makes a file-name stem: whitespace runs become "-", everything
// outside ASCII letters, digits, Hangul, "_" and "-" is dropped, and the
// result is capped at 120 characters.
func Slugify(text string) string {
	s := reSpaces.ReplaceAllString(strings.TrimSpace(text), "-")
	s = reSlugDrop.ReplaceAllString(s, "")
	if r := []rune(s); len(r) > maxSlugLen {
		s = string(r[:maxSlugLen])
	}
	return s
}
