package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
	"github.com/nguyentantai21042004/playlist-digest/internal/retry"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const (
	// maxPageSize is the largest page playlistItems.list and videos.list accept.
	maxPageSize = 50

	apiAttempts  = 3
	apiBaseDelay = 800 * time.Millisecond
)

// API lists playlist contents.
type API interface {
	// PlaylistVideoIDs returns the video ids of a playlist in playlist order.
	PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error)
	// Videos returns metadata for ids. Ids unknown to the API are absent from
	// the result.
	Videos(ctx context.Context, ids []string) ([]Video, error)
}

// DataAPI implements API with the YouTube Data API v3.
type DataAPI struct {
	service *yt.Service
	limiter *rate.Limiter
	policy  retry.Policy
	logger  logger.Logger
}

// NewDataAPI creates a Data API client authenticated with apiKey. Calls are
// limited to rps requests per second; rps <= 0 disables the limit.
func NewDataAPI(ctx context.Context, apiKey string, rps float64, log logger.Logger, opts ...option.ClientOption) (*DataAPI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("youtube api key required")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &DataAPI{
		service: service,
		limiter: rate.NewLimiter(limit, 1),
		policy: retry.Policy{
			Attempts:  apiAttempts,
			BaseDelay: apiBaseDelay,
			Backoff:   retry.Exponential,
		},
		logger: log,
	}, nil
}

// call runs one API request under the rate limit and retry policy.
func (a *DataAPI) call(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	err := retry.Do(ctx, a.policy, func(ctx context.Context) error {
		if err := a.limiter.Wait(ctx); err != nil {
			return err
		}
		return fn(ctx)
	}, func(attempt int, err error) {
		a.logger.Warn(ctx, "youtube: %s attempt %d/%d failed: %v", name, attempt, a.policy.Attempts, err)
	})
	if err != nil {
		return fmt.Errorf("youtube %s: %w", name, err)
	}
	return nil
}

func (a *DataAPI) PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string

	pageToken := ""
	for {
		var resp *yt.PlaylistItemListResponse
		err := a.call(ctx, "playlistItems.list", func(ctx context.Context) error {
			call := a.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
				PlaylistId(playlistID).
				MaxResults(maxPageSize).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}

			r, err := call.Do()
			if err != nil {
				return err
			}
			resp = r
			return nil
		})
		if err != nil {
			return nil, err
		}

		for _, item := range resp.Items {
			id, err := playlistVideoID(item)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	a.logger.Debug(ctx, "youtube: playlist %s has %d items", playlistID, len(ids))
	return ids, nil
}

func (a *DataAPI) Videos(ctx context.Context, ids []string) ([]Video, error) {
	videos := make([]Video, 0, len(ids))

	for start := 0; start < len(ids); start += maxPageSize {
		batch := ids[start:min(start+maxPageSize, len(ids))]

		var resp *yt.VideoListResponse
		err := a.call(ctx, "videos.list", func(ctx context.Context) error {
			r, err := a.service.Videos.List([]string{"snippet", "contentDetails"}).
				Id(batch...).
				Context(ctx).
				Do()
			if err != nil {
				return err
			}
			resp = r
			return nil
		})
		if err != nil {
			return nil, err
		}

		for _, item := range resp.Items {
			v, err := videoFromAPI(item)
			if err != nil {
				return nil, err
			}
			videos = append(videos, v)
		}
	}

	return videos, nil
}
