package summarizer

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	docxFont     = "Times New Roman"
	docxBodySize = 13
	docxColor    = "000000"
)

var (
	reHeading = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBullet  = regexp.MustCompile(`^[-*+]\s+(.+)$`)
	reQuote   = regexp.MustCompile(`^>\s?(.*)$`)
	reStrong  = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

type blockKind int

const (
	blockSkip blockKind = iota
	blockHeading
	blockBullet
	blockQuote
	blockText
)

// block is one rendered paragraph of a report.
type block struct {
	kind  blockKind
	level int
	text  string
}

// classify maps one Markdown line of a report to a docx paragraph kind.
// Rules, blank lines and display-math fences produce nothing.
func classify(line string) block {
	line = strings.TrimSpace(line)
	switch line {
	case "", "---", "***", "$$":
		return block{kind: blockSkip}
	}

	if m := reHeading.FindStringSubmatch(line); m != nil {
		return block{kind: blockHeading, level: len(m[1]), text: m[2]}
	}
	if m := reBullet.FindStringSubmatch(line); m != nil {
		return block{kind: blockBullet, text: m[1]}
	}
	if m := reQuote.FindStringSubmatch(line); m != nil {
		if strings.TrimSpace(m[1]) == "" {
			return block{kind: blockSkip}
		}
		return block{kind: blockQuote, text: m[1]}
	}
	return block{kind: blockText, text: line}
}

// markdownToDocx renders a fused report, headed by its title, as a docx file.
func markdownToDocx(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	writePlain(doc.AddParagraph(""), title, 16, true)

	for _, line := range strings.Split(markdown, "\n") {
		b := classify(line)
		switch b.kind {
		case blockHeading:
			writePlain(doc.AddParagraph(""), b.text, headingSize(b.level), true)
		case blockBullet:
			writeInline(doc.AddParagraph(""), "• "+b.text)
		case blockQuote:
			writeInline(doc.AddParagraph(""), "“"+b.text+"”")
		case blockText:
			writeInline(doc.AddParagraph(""), b.text)
		}
	}

	return doc.SaveTo(outputPath)
}

func headingSize(level int) uint64 {
	if level >= 4 {
		return docxBodySize
	}
	return uint64(17 - level)
}

func writePlain(p *docx.Paragraph, text string, size uint64, bold bool) {
	run := p.AddText(stripInline(text)).Font(docxFont).Size(size).Color(docxColor)
	if bold {
		run.Bold(true)
	}
}

// writeInline emits text as alternating normal and bold runs around **spans**.
func writeInline(p *docx.Paragraph, text string) {
	last := 0
	for _, loc := range reStrong.FindAllStringSubmatchIndex(text, -1) {
		if plain := text[last:loc[0]]; plain != "" {
			writePlain(p, plain, docxBodySize, false)
		}
		writePlain(p, text[loc[2]:loc[3]], docxBodySize, true)
		last = loc[1]
	}
	if rest := text[last:]; rest != "" {
		writePlain(p, rest, docxBodySize, false)
	}
}

// stripInline drops inline markup with no docx counterpart. LaTeX delimiters
// stay so formulas remain readable.
func stripInline(s string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(s)
}
