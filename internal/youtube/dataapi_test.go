package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
	"github.com/nguyentantai21042004/playlist-digest/internal/retry"
	"google.golang.org/api/option"
)

func videoIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("vid%08d", i)
	}
	return ids
}

// fakeDataAPI serves playlistItems and videos listings for ids, with pageSize
// items per playlist page.
type fakeDataAPI struct {
	ids          []string
	pageSize     int
	failFirst    int32
	playlistHits atomic.Int32
	videoHits    atomic.Int32
}

func (f *fakeDataAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch {
	case strings.HasSuffix(r.URL.Path, "/playlistItems"):
		hit := f.playlistHits.Add(1)
		if hit <= f.failFirst {
			http.Error(w, `{"error":{"code":503,"message":"backend error"}}`, http.StatusServiceUnavailable)
			return
		}
		start := 0
		if tok := q.Get("pageToken"); tok != "" {
			fmt.Sscanf(tok, "page-%d", &start)
		}
		end := min(start+f.pageSize, len(f.ids))
		var items []map[string]any
		for _, id := range f.ids[start:end] {
			items = append(items, map[string]any{
				"id":             "item-" + id,
				"contentDetails": map[string]any{"videoId": id},
			})
		}
		resp := map[string]any{"items": items}
		if end < len(f.ids) {
			resp["nextPageToken"] = fmt.Sprintf("page-%d", end)
		}
		json.NewEncoder(w).Encode(resp)

	case strings.HasSuffix(r.URL.Path, "/videos"):
		f.videoHits.Add(1)
		var requested []string
		for _, v := range q["id"] {
			requested = append(requested, strings.Split(v, ",")...)
		}
		if len(requested) > maxPageSize {
			http.Error(w, "too many ids", http.StatusBadRequest)
			return
		}
		var items []map[string]any
		for _, id := range requested {
			items = append(items, map[string]any{
				"id":             id,
				"snippet":        map[string]any{"title": "Title " + id, "publishedAt": "2024-01-01T00:00:00Z"},
				"contentDetails": map[string]any{"duration": "PT1M5S"},
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"items": items})

	default:
		http.NotFound(w, r)
	}
}

func newTestDataAPI(t *testing.T, h http.Handler) *DataAPI {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	api, err := NewDataAPI(context.Background(), "test-key", 0, logger.Nop(), option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("NewDataAPI() error = %v", err)
	}
	api.policy.Sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return api
}

func TestDataAPIPaging(t *testing.T) {
	fake := &fakeDataAPI{ids: videoIDs(120), pageSize: 50}
	api := newTestDataAPI(t, fake)
	ctx := context.Background()

	ids, err := api.PlaylistVideoIDs(ctx, "PL1")
	if err != nil {
		t.Fatalf("PlaylistVideoIDs() error = %v", err)
	}
	if len(ids) != 120 || ids[0] != "vid00000000" || ids[119] != "vid00000119" {
		t.Errorf("ids = %d items, first %q", len(ids), ids[0])
	}
	if got := fake.playlistHits.Load(); got != 3 {
		t.Errorf("playlist pages = %d, want 3", got)
	}

	videos, err := api.Videos(ctx, ids)
	if err != nil {
		t.Fatalf("Videos() error = %v", err)
	}
	if len(videos) != 120 {
		t.Errorf("videos = %d, want 120", len(videos))
	}
	if got := fake.videoHits.Load(); got != 3 {
		t.Errorf("videos batches = %d, want 3", got)
	}
	if videos[5].Title != "Title vid00000005" || videos[5].Duration != "PT1M5S" {
		t.Errorf("video 5 = %+v", videos[5])
	}
}

func TestDataAPIRetriesTransientFailure(t *testing.T) {
	fake := &fakeDataAPI{ids: videoIDs(3), pageSize: 50, failFirst: 1}
	api := newTestDataAPI(t, fake)

	ids, err := api.PlaylistVideoIDs(context.Background(), "PL1")
	if err != nil {
		t.Fatalf("PlaylistVideoIDs() error = %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("ids = %v", ids)
	}
	if got := fake.playlistHits.Load(); got < 2 {
		t.Errorf("playlist hits = %d, want a retry", got)
	}
}

func TestDataAPIGivesUp(t *testing.T) {
	fake := &fakeDataAPI{ids: videoIDs(3), pageSize: 50, failFirst: 100}
	api := newTestDataAPI(t, fake)

	_, err := api.PlaylistVideoIDs(context.Background(), "PL1")
	var exhausted *retry.ExhaustedError
	if !errors.As(err, &exhausted) || exhausted.Attempts != apiAttempts {
		t.Fatalf("error = %v, want exhausted after %d attempts", err, apiAttempts)
	}
}

func TestNewDataAPIRequiresKey(t *testing.T) {
	if _, err := NewDataAPI(context.Background(), "", 0, logger.Nop()); err == nil {
		t.Error("NewDataAPI() without key should fail")
	}
}
