package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel          = "gemini-2.5-flash"
	DefaultChunkSize      = 6000
	DefaultChunkOverlap   = 400
	DefaultRetry          = 3
	DefaultRetryBaseDelay = 1500 * time.Millisecond
	DefaultThrottleDelay  = 1200 * time.Millisecond
)

type Config struct {
	Gemini  GeminiConfig  `yaml:"gemini"`
	YouTube YouTubeConfig `yaml:"youtube"`
	Summary SummaryConfig `yaml:"summary"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
}

type GeminiConfig struct {
	APIKeys []string `yaml:"api_keys"`
	Model   string   `yaml:"model"`
}

type YouTubeConfig struct {
	APIKey            string  `yaml:"api_key"`
	PlaylistID        string  `yaml:"playlist_id"`
	TranscriptLang    string  `yaml:"transcript_lang"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

type SummaryConfig struct {
	ChunkSize      int           `yaml:"chunk_size"`
	// ChunkOverlap is nil when unset so an explicit 0 is kept.
	ChunkOverlap   *int          `yaml:"chunk_overlap"`
	Retry          int           `yaml:"retry"`
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
	ThrottleDelay  time.Duration `yaml:"throttle_delay"`
	Docx           bool          `yaml:"docx"`
}

type PathsConfig struct {
	Catalog   string `yaml:"catalog"`
	Subtitles string `yaml:"subtitles"`
	Summaries string `yaml:"summaries"`
	History   string `yaml:"history"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads path (optional), applies environment overrides and validates.
// A missing file is not an error: defaults and the environment still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromEnv overrides file values with process environment variables.
func (c *Config) loadFromEnv() error {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.Gemini.APIKeys = splitList(v)
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv("YT_API_KEY"); v != "" {
		c.YouTube.APIKey = v
	}
	if v := os.Getenv("PLAYLIST_ID"); v != "" {
		c.YouTube.PlaylistID = strings.TrimSpace(v)
	}
	if v := os.Getenv("TRANSCRIPT_LANG"); v != "" {
		c.YouTube.TranscriptLang = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"CHUNK_SIZE", &c.Summary.ChunkSize},
		{"RETRY", &c.Summary.Retry},
	}
	for _, e := range ints {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.dst = n
	}
	if v := os.Getenv("CHUNK_OVERLAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHUNK_OVERLAP: %w", err)
		}
		c.Summary.ChunkOverlap = &n
	}

	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"RETRY_BASE_DELAY", &c.Summary.RetryBaseDelay},
		{"THROTTLE_DELAY", &c.Summary.ThrottleDelay},
	}
	for _, e := range durations {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.dst = d
	}

	if v := os.Getenv("SUMMARY_DOCX"); v != "" {
		c.Summary.Docx = v == "true" || v == "1"
	}

	return nil
}

// parseDuration accepts Go durations ("1.5s") and bare seconds ("1.2").
func parseDuration(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", v)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate rejects inconsistent values and fills defaults for unset ones.
func (c *Config) Validate() error {
	if c.Summary.ChunkSize < 0 {
		return fmt.Errorf("summary.chunk_size must be positive")
	}
	if c.Summary.ChunkOverlap != nil && *c.Summary.ChunkOverlap < 0 {
		return fmt.Errorf("summary.chunk_overlap must be non-negative")
	}
	if c.Summary.Retry < 0 {
		return fmt.Errorf("summary.retry must be non-negative")
	}
	if c.Summary.RetryBaseDelay < 0 {
		return fmt.Errorf("summary.retry_base_delay must be non-negative")
	}
	if c.Summary.ThrottleDelay < 0 {
		return fmt.Errorf("summary.throttle_delay must be non-negative")
	}
	if c.YouTube.RequestsPerSecond < 0 {
		return fmt.Errorf("youtube.requests_per_second must be non-negative")
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = DefaultModel
	}
	if c.YouTube.TranscriptLang == "" {
		c.YouTube.TranscriptLang = "en"
	}
	if c.YouTube.RequestsPerSecond == 0 {
		c.YouTube.RequestsPerSecond = 5
	}
	if c.Summary.ChunkSize == 0 {
		c.Summary.ChunkSize = DefaultChunkSize
	}
	if c.Summary.ChunkOverlap == nil {
		overlap := DefaultChunkOverlap
		c.Summary.ChunkOverlap = &overlap
	}
	if c.Summary.Retry == 0 {
		c.Summary.Retry = DefaultRetry
	}
	if c.Summary.RetryBaseDelay == 0 {
		c.Summary.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if c.Summary.ThrottleDelay == 0 {
		c.Summary.ThrottleDelay = DefaultThrottleDelay
	}
	if c.Paths.Catalog == "" {
		c.Paths.Catalog = "data/playlist_items.csv"
	}
	if c.Paths.Subtitles == "" {
		c.Paths.Subtitles = "data/subtitles"
	}
	if c.Paths.Summaries == "" {
		c.Paths.Summaries = "data/summaries"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if *c.Summary.ChunkOverlap >= c.Summary.ChunkSize {
		return fmt.Errorf("summary.chunk_overlap (%d) must be smaller than summary.chunk_size (%d)",
			*c.Summary.ChunkOverlap, c.Summary.ChunkSize)
	}

	return nil
}

// RequireGemini checks the settings the summarize stage cannot run without.
func (c *Config) RequireGemini() error {
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required (set GOOGLE_API_KEY)")
	}
	return nil
}

// RequireYouTube checks the settings the export stage cannot run without.
func (c *Config) RequireYouTube() error {
	if c.YouTube.APIKey == "" || c.YouTube.PlaylistID == "" {
		return fmt.Errorf("youtube.api_key and youtube.playlist_id are required (set YT_API_KEY, PLAYLIST_ID)")
	}
	return nil
}
