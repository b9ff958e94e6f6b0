package youtube

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/nguyentantai21042004/playlist-digest/internal/catalog"
	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
	"github.com/nguyentantai21042004/playlist-digest/pkg/fsutil"
)

// SubtitleSuffix ends every transcript file name written by Fetcher.
const SubtitleSuffix = "_subtitle.txt"

// Fetcher downloads the captions of catalog rows into transcript files.
type Fetcher struct {
	captions CaptionSource
	lang     string
	logger   logger.Logger
}

func NewFetcher(captions CaptionSource, lang string, log logger.Logger) *Fetcher {
	return &Fetcher{captions: captions, lang: lang, logger: log}
}

// FetchReport counts the outcome of FetchAll.
type FetchReport struct {
	OK     int
	Failed int
	Paths  []string
}

// SubtitlePath is the transcript file for a catalog row.
func SubtitlePath(outDir string, item catalog.Item, videoID string) string {
	hint := item.Title
	if hint == "" {
		hint = videoID
	}
	name := Slugify(hint)
	if name == "" {
		name = videoID
	}
	return filepath.Join(outDir, name+SubtitleSuffix)
}

// FetchAll writes one transcript per item into outDir. A row with a bad link
// or without captions is logged and counted as failed; only context
// cancellation stops the loop.
func (f *Fetcher) FetchAll(ctx context.Context, items []catalog.Item, outDir string) (FetchReport, error) {
	var report FetchReport

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		videoID, err := VideoIDFromURL(item.Link)
		if err != nil {
			f.logger.Warn(ctx, "[WARN] invalid URL: %s", item.Link)
			report.Failed++
			continue
		}

		text, err := f.captions.Fetch(ctx, videoID, f.lang)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return report, err
			}
			f.logger.Error(ctx, "[ERR] %s: %v", item.Title, err)
			report.Failed++
			continue
		}

		path := SubtitlePath(outDir, item, videoID)
		if err := fsutil.WriteFile(path, []byte(text)); err != nil {
			f.logger.Error(ctx, "[ERR] %s: %v", item.Title, err)
			report.Failed++
			continue
		}

		report.OK++
		report.Paths = append(report.Paths, path)
		f.logger.Info(ctx, "[OK] %s -> %s", item.Title, path)
	}

	f.logger.Info(ctx, "[DONE] fetched %d, failed %d", report.OK, report.Failed)
	return report, nil
}
