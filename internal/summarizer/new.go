package summarizer

import (
	"time"

	"github.com/nguyentantai21042004/playlist-digest/internal/chunker"
	"github.com/nguyentantai21042004/playlist-digest/internal/llm"
	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
	"github.com/nguyentantai21042004/playlist-digest/internal/retry"
)

type implSummarizer struct {
	generator llm.Generator
	chunker   chunker.Chunker
	logger    logger.Logger
	throttle  time.Duration
	docx      bool
	recorder  Recorder
	sleep     retry.SleepFunc
}

// Option customizes a Summarizer.
type Option func(*implSummarizer)

// WithThrottle sets the pause between consecutive files.
func WithThrottle(d time.Duration) Option {
	return func(s *implSummarizer) { s.throttle = d }
}

// WithDocx also renders every report as a .docx file.
func WithDocx(enabled bool) Option {
	return func(s *implSummarizer) { s.docx = enabled }
}

// WithRecorder stores every batch report through r.
func WithRecorder(r Recorder) Option {
	return func(s *implSummarizer) { s.recorder = r }
}

// WithSleep replaces the throttle wait.
func WithSleep(sleep retry.SleepFunc) Option {
	return func(s *implSummarizer) { s.sleep = sleep }
}

// New creates a Summarizer. gen should already carry the retry policy.
func New(gen llm.Generator, chk chunker.Chunker, log logger.Logger, opts ...Option) Summarizer {
	s := &implSummarizer{
		generator: gen,
		chunker:   chk,
		logger:    log,
		sleep:     retry.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
