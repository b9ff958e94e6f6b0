package summarizer

import "context"

// Summarizer turns transcript files into fused Markdown reports.
type Summarizer interface {
	// SummarizeAll processes every transcript in srcDir in name order and
	// writes one report per transcript into destDir. A failing file is
	// recorded in the report and never stops the batch.
	SummarizeAll(ctx context.Context, srcDir, destDir string) (*BatchReport, error)
	// SummarizeFile processes a single transcript.
	SummarizeFile(ctx context.Context, path, destDir string) FileResult
	// SummarizeOne processes a single transcript as a run of its own, logged
	// and recorded like a batch of one.
	SummarizeOne(ctx context.Context, path, destDir string) *BatchReport
}

// Recorder persists the outcome of a batch.
type Recorder interface {
	RecordRun(ctx context.Context, report *BatchReport) error
}
