// Package catalog reads and writes the playlist catalog CSV.
package catalog

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nguyentantai21042004/playlist-digest/pkg/fsutil"
)

// Header is the column order of the catalog file.
var Header = []string{"title", "duration", "link", "videoId", "publishedAt"}

// ErrBadHeader is returned when a catalog file lacks a required column.
var ErrBadHeader = errors.New("catalog: missing required column")

var bom = []byte("\ufeff")

// Item is one playlist video.
type Item struct {
	Title       string
	Duration    string
	Link        string
	VideoID     string
	PublishedAt string
}

func (it Item) record() []string {
	return []string{it.Title, it.Duration, it.Link, it.VideoID, it.PublishedAt}
}

// Write stores items at path as UTF-8 CSV with a byte order mark, so that
// spreadsheet tools detect the encoding.
func Write(path string, items []Item) error {
	w, err := fsutil.NewAtomicWriter(path)
	if err != nil {
		return err
	}

	if err := encode(w, items); err != nil {
		w.Abort()
		return fmt.Errorf("write catalog: %w", err)
	}
	return w.Commit()
}

func encode(w io.Writer, items []Item) error {
	if _, err := w.Write(bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, it := range items {
		if err := cw.Write(it.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read loads a catalog file. Columns are matched by header name, so extra or
// reordered columns are tolerated; title and link are required.
func Read(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	items, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return items, nil
}

func decode(r io.Reader) ([]Item, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"title", "link"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%w %q", ErrBadHeader, required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var items []Item
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		items = append(items, Item{
			Title:       field(rec, "title"),
			Duration:    field(rec, "duration"),
			Link:        field(rec, "link"),
			VideoID:     field(rec, "videoId"),
			PublishedAt: field(rec, "publishedAt"),
		})
	}
	return items, nil
}
