package chunker

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{"defaults", DefaultSize, DefaultOverlap, false},
		{"no overlap", 10, 0, false},
		{"overlap one less than size", 10, 9, false},
		{"overlap equals size", 10, 10, true},
		{"overlap larger than size", 10, 11, true},
		{"zero size", 0, 0, true},
		{"negative overlap", 10, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.size, tt.overlap)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("New() error = %v, want ErrInvalidWindow", err)
			}
			if !tt.wantErr && c == nil {
				t.Error("New() returned nil chunker")
			}
		})
	}
}

func TestSplitEmpty(t *testing.T) {
	c, _ := New(10, 2)
	if got := c.Split(""); len(got) != 0 {
		t.Errorf("Split(\"\") = %d chunks, want 0", len(got))
	}
}

func TestSplitShortText(t *testing.T) {
	c, _ := New(DefaultSize, DefaultOverlap)
	text := "hello world from talk"

	got := c.Split(text)
	if len(got) != 1 {
		t.Fatalf("Split() = %d chunks, want 1", len(got))
	}
	if got[0].Text != text || got[0].Index != 1 || got[0].Total != 1 {
		t.Errorf("Split()[0] = %+v", got[0])
	}
}

func TestSplitWindows(t *testing.T) {
	c, _ := New(10, 3)
	got := c.Split("abcdefghijklmnopqrstuvwxyz")

	want := []string{"abcdefghij", "hijklmnopq", "opqrstuvwx", "vwxyz"}
	if len(got) != len(want) {
		t.Fatalf("Split() = %d chunks, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("chunk %d = %q, want %q", i+1, got[i].Text, w)
		}
		if got[i].Index != i+1 || got[i].Total != len(want) {
			t.Errorf("chunk %d position = %d/%d", i+1, got[i].Index, got[i].Total)
		}
	}
}

func TestSplitExactMultipleEndsWithoutTail(t *testing.T) {
	c, _ := New(5, 0)
	got := c.Split("abcdefghij")
	if len(got) != 2 || got[1].Text != "fghij" {
		t.Errorf("Split() = %+v, want two 5-char chunks", got)
	}
}

func TestSplitCountsCharactersNotBytes(t *testing.T) {
	c, _ := New(4, 1)
	got := c.Split("안녕하세요 여러분")

	for _, ch := range got {
		if n := len([]rune(ch.Text)); n > 4 {
			t.Errorf("chunk %q has %d characters, want <= 4", ch.Text, n)
		}
	}
	if got[0].Text != "안녕하세" {
		t.Errorf("first chunk = %q, want 안녕하세", got[0].Text)
	}
}

// reconstruct stitches chunks back together by dropping each chunk's overlap
// with its predecessor.
func reconstruct(chunks []Chunk) string {
	var b strings.Builder
	prevEnd := 0
	for _, ch := range chunks {
		runes := []rune(ch.Text)
		b.WriteString(string(runes[prevEnd-ch.Start:]))
		prevEnd = ch.End
	}
	return b.String()
}

func TestSplitReconstructsText(t *testing.T) {
	texts := []string{
		"a",
		"short",
		strings.Repeat("0123456789", 37),
		strings.Repeat("자막 텍스트 ", 211),
		strings.Repeat("x", 6000),
		strings.Repeat("y", 6001),
	}
	windows := []struct{ size, overlap int }{
		{1, 0}, {7, 3}, {10, 9}, {100, 0}, {6000, 400},
	}

	for _, w := range windows {
		c, err := New(w.size, w.overlap)
		if err != nil {
			t.Fatal(err)
		}
		for _, text := range texts {
			chunks := c.Split(text)
			n := len([]rune(text))

			if got := reconstruct(chunks); got != text {
				t.Errorf("size=%d overlap=%d: reconstruction mismatch for %d-char text", w.size, w.overlap, n)
			}
			if last := chunks[len(chunks)-1]; last.End != n {
				t.Errorf("size=%d overlap=%d: last chunk ends at %d, want %d", w.size, w.overlap, last.End, n)
			}
			step := w.size - w.overlap
			bound := (n+step-1)/step + 1
			if len(chunks) > bound {
				t.Errorf("size=%d overlap=%d: %d chunks exceeds bound %d", w.size, w.overlap, len(chunks), bound)
			}
			for i := 1; i < len(chunks); i++ {
				if chunks[i].Start != chunks[i-1].End-w.overlap {
					t.Errorf("size=%d overlap=%d: chunk %d starts at %d, want %d",
						w.size, w.overlap, i+1, chunks[i].Start, chunks[i-1].End-w.overlap)
				}
			}
		}
	}
}
