package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultTimedtextURL is YouTube's caption endpoint.
const DefaultTimedtextURL = "https://www.youtube.com/api/timedtext"

// CaptionSource returns the caption text of a video.
type CaptionSource interface {
	Fetch(ctx context.Context, videoID, lang string) (string, error)
}

// TimedtextClient fetches captions from the timedtext endpoint in json3 form.
type TimedtextClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewTimedtextClient creates a client for baseURL (DefaultTimedtextURL when
// empty) limited to rps requests per second; rps <= 0 disables the limit.
func NewTimedtextClient(baseURL string, rps float64) *TimedtextClient {
	if baseURL == "" {
		baseURL = DefaultTimedtextURL
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &TimedtextClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

type timedtextResponse struct {
	Events []timedtextEvent `json:"events"`
}

type timedtextEvent struct {
	Segs []struct {
		UTF8 string `json:"utf8"`
	} `json:"segs"`
}

// Fetch returns the caption text of videoID in lang, one space between
// caption events.
func (c *TimedtextClient) Fetch(ctx context.Context, videoID, lang string) (string, error) {
	if videoID == "" {
		return "", fmt.Errorf("video id is required")
	}
	if lang == "" {
		lang = "en"
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)
	params.Set("fmt", "json3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("timedtext request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", fmt.Errorf("%w: %s (%s)", ErrNoCaptions, videoID, lang)
	case http.StatusTooManyRequests:
		return "", fmt.Errorf("timedtext rate limited for %s", videoID)
	default:
		return "", fmt.Errorf("timedtext returned status %d for %s", resp.StatusCode, videoID)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read timedtext response: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return "", fmt.Errorf("%w: %s (%s)", ErrNoCaptions, videoID, lang)
	}

	text, err := parseTimedtext(body)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("%w: %s (%s)", ErrNoCaptions, videoID, lang)
	}
	return text, nil
}

func parseTimedtext(data []byte) (string, error) {
	var resp timedtextResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("parse timedtext response: %w", err)
	}

	parts := make([]string, 0, len(resp.Events))
	for _, ev := range resp.Events {
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.Join(strings.Fields(b.String()), " ")
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}
