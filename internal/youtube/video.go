package youtube

import (
	"fmt"
	"regexp"
	"strconv"

	yt "google.golang.org/api/youtube/v3"
)

// Video is the subset of video metadata the catalog needs.
type Video struct {
	ID string
	// Title from the video snippet.
	Title string
	// Duration is the raw ISO 8601 duration, e.g. "PT1H2M3S".
	Duration    string
	PublishedAt string
}

func videoFromAPI(v *yt.Video) (Video, error) {
	if v == nil || v.Id == "" {
		return Video{}, &FieldError{Kind: "video", Field: "id"}
	}
	if v.Snippet == nil {
		return Video{}, &FieldError{Kind: "video", ID: v.Id, Field: "snippet"}
	}
	if v.ContentDetails == nil || v.ContentDetails.Duration == "" {
		return Video{}, &FieldError{Kind: "video", ID: v.Id, Field: "contentDetails.duration"}
	}
	return Video{
		ID:          v.Id,
		Title:       v.Snippet.Title,
		Duration:    v.ContentDetails.Duration,
		PublishedAt: v.Snippet.PublishedAt,
	}, nil
}

func playlistVideoID(item *yt.PlaylistItem) (string, error) {
	if item == nil || item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
		id := ""
		if item != nil {
			id = item.Id
		}
		return "", &FieldError{Kind: "playlist item", ID: id, Field: "contentDetails.videoId"}
	}
	return item.ContentDetails.VideoId, nil
}

var reISODuration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatDuration converts an ISO 8601 duration such as "PT1H2M3S" into
// "01:02:03". Minutes and seconds are normalized; anything that does not
// parse yields "00:00:00".
func FormatDuration(iso string) string {
	var total int
	if m := reISODuration.FindStringSubmatch(iso); m != nil {
		for i, unit := range []int{3600, 60, 1} {
			if m[i+1] == "" {
				continue
			}
			n, _ := strconv.Atoi(m[i+1])
			total += n * unit
		}
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
