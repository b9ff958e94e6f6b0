package summarizer

import "time"

// Status is the processing state of one transcript file.
//
//	pending -> loaded -> chunked -> partial_summarized -> fused -> persisted
//
// with skipped (empty transcript) and failed reachable from any state, and
// interrupted when the context is cancelled mid-file.
type Status string

const (
	StatusPending           Status = "pending"
	StatusLoaded            Status = "loaded"
	StatusChunked           Status = "chunked"
	StatusPartialSummarized Status = "partial_summarized"
	StatusFused             Status = "fused"
	StatusPersisted         Status = "persisted"
	StatusSkipped           Status = "skipped"
	StatusFailed            Status = "failed"
	StatusInterrupted       Status = "interrupted"
)

// FileResult is the outcome of processing one transcript.
type FileResult struct {
	Path   string
	Title  string
	Status Status
	// FailedAt is the last state reached before a failure.
	FailedAt Status
	Chunks   int
	Output   string
	Docx     string
	Err      error
	Duration time.Duration
}

// BatchReport collects the results of one SummarizeAll call.
type BatchReport struct {
	RunID      string
	SourceDir  string
	DestDir    string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []FileResult
}

// Counts returns the number of persisted, skipped and failed files.
func (r *BatchReport) Counts() (succeeded, skipped, failed int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusPersisted:
			succeeded++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return succeeded, skipped, failed
}
