package summarizer

import (
	"strings"
	"unicode"
)

const maxTitleLen = 120

// OutputName turns a report title into a file name without extension: the
// title is capped at 120 characters, spaces become underscores and characters
// that are unsafe in file names are dropped.
func OutputName(title string) string {
	runes := []rune(title)
	if len(runes) > maxTitleLen {
		runes = runes[:maxTitleLen]
	}

	name := strings.ReplaceAll(string(runes), " ", "_")
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\:*?"<>|`, r) || unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimLeft(name, ".")

	if name == "" {
		return "untitled"
	}
	return name
}
