// Package prompt renders the fixed instruction templates sent to the model.
//
// Templates are versioned: a change in wording gets a new version file so
// reports produced by different versions can be told apart.
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

const (
	PartialV1 = "partial_v1"
	FusionV1  = "fusion_v1"

	// Current versions used by the summarizer.
	PartialVersion = PartialV1
	FusionVersion  = FusionV1
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("prompt").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl"))

// PartialParams feeds the per-chunk template.
type PartialParams struct {
	ChunkIndex  int
	Total       int
	Title       string
	Description string
}

// FusionParams feeds the fusion template.
type FusionParams struct {
	Title       string
	Description string
}

// Partial renders the current per-chunk instruction.
func Partial(p PartialParams) (string, error) {
	return Render(PartialVersion, p)
}

// Fusion renders the current fusion instruction.
func Fusion(p FusionParams) (string, error) {
	return Render(FusionVersion, p)
}

// Render executes the template of the given version with params. The result
// has surrounding whitespace removed.
func Render(version string, params any) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, version+".tmpl", params); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", version, err)
	}
	return strings.TrimSpace(b.String()), nil
}
