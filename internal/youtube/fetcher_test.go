package youtube

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/playlist-digest/internal/catalog"
	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
)

type fakeCaptions map[string]string

func (f fakeCaptions) Fetch(ctx context.Context, videoID, lang string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, ok := f[videoID]
	if !ok {
		return "", ErrNoCaptions
	}
	return lang + ": " + text, nil
}

func TestFetchAll(t *testing.T) {
	dir := t.TempDir()
	items := []catalog.Item{
		{Title: "Lecture 1: Intro", Link: "https://www.youtube.com/watch?v=aaaaaaaaaaa&list=PL1"},
		{Title: "", Link: "https://youtu.be/bbbbbbbbbbb"},
		{Title: "no captions", Link: "https://youtu.be/ccccccccccc"},
		{Title: "broken", Link: "not a link"},
	}
	captions := fakeCaptions{"aaaaaaaaaaa": "first talk", "bbbbbbbbbbb": "second talk"}

	report, err := NewFetcher(captions, "en", logger.Nop()).FetchAll(context.Background(), items, dir)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if report.OK != 2 || report.Failed != 2 {
		t.Errorf("report = %+v, want 2 ok / 2 failed", report)
	}

	want := map[string]string{
		"Lecture-1-Intro_subtitle.txt": "en: first talk",
		"bbbbbbbbbbb_subtitle.txt":     "en: second talk",
	}
	for name, content := range want {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if string(data) != content {
			t.Errorf("%s = %q, want %q", name, data, content)
		}
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 2 {
		t.Errorf("dir has %d files, want 2", len(entries))
	}
}

func TestFetchAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := []catalog.Item{{Title: "x", Link: "https://youtu.be/aaaaaaaaaaa"}}
	report, err := NewFetcher(fakeCaptions{"aaaaaaaaaaa": "t"}, "en", logger.Nop()).FetchAll(ctx, items, t.TempDir())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("FetchAll() error = %v, want context.Canceled", err)
	}
	if report.OK != 0 {
		t.Errorf("report = %+v", report)
	}
}
