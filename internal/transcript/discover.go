package transcript

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions lists the transcript file types picked up by Discover.
var Extensions = []string{".txt", ".tsv"}

// IsTranscriptFile reports whether name has a transcript extension and is not hidden.
func IsTranscriptFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(base))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Discover lists the transcript files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsTranscriptFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}

	sort.Strings(files)
	return files, nil
}
