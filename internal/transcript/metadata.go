package transcript

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

const (
	descExt = ".desc"
	metaExt = ".meta.json"
)

// Metadata is the context handed to the prompts alongside a transcript.
type Metadata struct {
	Title       string
	Description string
}

// LoadMetadata derives the title from the file name and looks up the
// description sidecar.
func LoadMetadata(path string) Metadata {
	return Metadata{
		Title:       Title(path),
		Description: LoadDescription(path),
	}
}

// Title turns the file stem into a readable title: underscores and hyphens
// become spaces.
func Title(path string) string {
	return strings.NewReplacer("_", " ", "-", " ").Replace(Stem(path))
}

// LoadDescription returns the trimmed content of the sibling .desc file, or
// else the "description" field of the sibling .meta.json. A missing sidecar
// or one that does not parse yields "".
func LoadDescription(path string) string {
	base := filepath.Join(filepath.Dir(path), Stem(path))

	if data, err := os.ReadFile(base + descExt); err == nil {
		return strings.TrimSpace(string(data))
	}

	data, err := os.ReadFile(base + metaExt)
	if err != nil {
		return ""
	}
	var meta struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return ""
	}
	return strings.TrimSpace(meta.Description)
}
