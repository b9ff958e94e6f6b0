// Package transcript loads caption files and the metadata stored beside them.
package transcript

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyInput marks a transcript with no non-empty lines.
var ErrEmptyInput = errors.New("empty transcript")

// Document is one transcript file read for summarization.
type Document struct {
	ID          string
	Path        string
	Title       string
	Description string
	Body        string
}

// Load reads path and its sidecar metadata. It returns ErrEmptyInput when
// the file has no caption text.
func Load(path string) (*Document, error) {
	body, err := LoadBody(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyInput)
	}

	meta := LoadMetadata(path)
	return &Document{
		ID:          Stem(path),
		Path:        path,
		Title:       meta.Title,
		Description: meta.Description,
		Body:        body,
	}, nil
}

// LoadBody joins the caption lines of path with single spaces. Empty lines are
// dropped; a tab-separated line with at least three fields (start, end, text)
// contributes only its third field.
func LoadBody(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	scanner.Split(scanLines)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if parts := strings.Split(line, "\t"); len(parts) >= 3 {
			line = parts[2]
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	return strings.Join(lines, " "), nil
}

// Stem is the file name of path without its final extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// scanLines is bufio.ScanLines that also ends a line at a lone "\r".
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if !atEOF {
			// Wait for the next byte to tell "\r\n" from a lone "\r".
			return 0, nil, nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
