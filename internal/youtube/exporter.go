package youtube

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/playlist-digest/internal/catalog"
	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
)

// Exporter turns a playlist into catalog rows.
type Exporter struct {
	api    API
	logger logger.Logger
}

func NewExporter(api API, log logger.Logger) *Exporter {
	return &Exporter{api: api, logger: log}
}

// Export lists playlistID and returns one row per playlist entry, in
// playlist order. Entries the videos listing does not return (private or
// deleted videos) keep their link and id with empty metadata.
func (e *Exporter) Export(ctx context.Context, playlistID string) ([]catalog.Item, error) {
	e.logger.Info(ctx, "Loading playlist %s", playlistID)

	ids, err := e.api.PlaylistVideoIDs(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPlaylist, playlistID)
	}

	videos, err := e.api.Videos(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	items := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		item := catalog.Item{
			Link:    WatchURL(id, playlistID),
			VideoID: id,
		}
		if v, ok := byID[id]; ok {
			item.Title = v.Title
			item.Duration = FormatDuration(v.Duration)
			item.PublishedAt = v.PublishedAt
		} else {
			e.logger.Warn(ctx, "No metadata for video %s", id)
		}
		items = append(items, item)
	}

	return items, nil
}
