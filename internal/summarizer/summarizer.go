package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/playlist-digest/internal/chunker"
	"github.com/nguyentantai21042004/playlist-digest/internal/prompt"
	"github.com/nguyentantai21042004/playlist-digest/internal/transcript"
	"github.com/nguyentantai21042004/playlist-digest/pkg/fsutil"
)

// SummarizeAll reads all transcript files from srcDir, summarizes each,
// and writes individual .md files into destDir.
func (s *implSummarizer) SummarizeAll(ctx context.Context, srcDir, destDir string) (*BatchReport, error) {
	report := &BatchReport{
		RunID:     uuid.NewString(),
		SourceDir: srcDir,
		DestDir:   destDir,
		StartedAt: time.Now(),
	}

	files, err := transcript.Discover(srcDir)
	if err != nil {
		return nil, fmt.Errorf("discover transcript files: %w", err)
	}

	if len(files) == 0 {
		s.logger.Info(ctx, "No transcript files found in %s", srcDir)
		report.FinishedAt = time.Now()
		return report, nil
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, fmt.Errorf("create dest dir: %w", err)
	}

	s.logger.Info(ctx, "Found %d transcript files to summarize", len(files))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return s.finish(ctx, report), err
		}

		s.logger.Info(ctx, "[%d/%d] %s", i+1, len(files), filepath.Base(path))
		report.Results = append(report.Results, s.SummarizeFile(ctx, path, destDir))
		if err := ctx.Err(); err != nil {
			return s.finish(ctx, report), err
		}

		if i < len(files)-1 && s.throttle > 0 {
			if err := s.sleep(ctx, s.throttle); err != nil {
				return s.finish(ctx, report), err
			}
		}
	}

	return s.finish(ctx, report), nil
}

func (s *implSummarizer) SummarizeOne(ctx context.Context, path, destDir string) *BatchReport {
	report := &BatchReport{
		RunID:     uuid.NewString(),
		SourceDir: filepath.Dir(path),
		DestDir:   destDir,
		StartedAt: time.Now(),
	}
	report.Results = append(report.Results, s.SummarizeFile(ctx, path, destDir))
	return s.finish(ctx, report)
}

func (s *implSummarizer) finish(ctx context.Context, report *BatchReport) *BatchReport {
	report.FinishedAt = time.Now()

	succeeded, skipped, failed := report.Counts()
	s.logger.Info(ctx, "Summary complete: %d success, %d skipped, %d failed", succeeded, skipped, failed)

	if s.recorder != nil {
		// The recorder gets a detached context so a cancelled batch is still stored.
		if err := s.recorder.RecordRun(context.WithoutCancel(ctx), report); err != nil {
			s.logger.Warn(ctx, "Failed to record run %s: %v", report.RunID, err)
		}
	}
	return report
}

// SummarizeFile runs one transcript through load, chunk, partial summaries,
// fusion and persistence. Nothing is written unless fusion succeeds.
func (s *implSummarizer) SummarizeFile(ctx context.Context, path, destDir string) FileResult {
	start := time.Now()
	name := filepath.Base(path)
	res := FileResult{Path: path, Status: StatusPending}

	fail := func(err error) FileResult {
		res.FailedAt = res.Status
		res.Err = err
		res.Duration = time.Since(start)
		if ctx.Err() != nil {
			res.Status = StatusInterrupted
			s.logger.Warn(ctx, "[STOP] %s: interrupted at %s", name, res.FailedAt)
			return res
		}
		res.Status = StatusFailed
		s.logger.Error(ctx, "[FAIL] %s: %v", name, err)
		return res
	}

	doc, err := transcript.Load(path)
	if errors.Is(err, transcript.ErrEmptyInput) {
		res.Status = StatusSkipped
		res.Title = transcript.Title(path)
		res.Duration = time.Since(start)
		s.logger.Info(ctx, "[SKIP] %s: empty transcript", name)
		return res
	}
	if err != nil {
		return fail(fmt.Errorf("load: %w", err))
	}
	res.Status = StatusLoaded
	res.Title = doc.Title

	chunks := s.chunker.Split(doc.Body)
	res.Status = StatusChunked
	res.Chunks = len(chunks)
	s.logger.Debug(ctx, "%s: %d characters in %d chunks", name, len([]rune(doc.Body)), len(chunks))

	partials, err := s.summarizeChunks(ctx, doc, chunks)
	if err != nil {
		return fail(err)
	}
	res.Status = StatusPartialSummarized

	fused, err := s.fuse(ctx, doc, partials)
	if err != nil {
		return fail(err)
	}
	res.Status = StatusFused

	mdPath := filepath.Join(destDir, OutputName(doc.Title)+".md")
	if err := fsutil.WriteFile(mdPath, []byte(fused)); err != nil {
		return fail(fmt.Errorf("write report: %w", err))
	}
	res.Status = StatusPersisted
	res.Output = mdPath

	if s.docx {
		docxPath := strings.TrimSuffix(mdPath, ".md") + ".docx"
		if err := markdownToDocx(doc.Title, fused, docxPath); err != nil {
			s.logger.Warn(ctx, "Failed to render %s: %v", docxPath, err)
		} else {
			res.Docx = docxPath
		}
	}

	res.Duration = time.Since(start)
	s.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
	return res
}

// summarizeChunks produces one labeled partial summary per chunk, in order.
func (s *implSummarizer) summarizeChunks(ctx context.Context, doc *transcript.Document, chunks []chunker.Chunk) ([]string, error) {
	partials := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		instruction, err := prompt.Partial(prompt.PartialParams{
			ChunkIndex:  ch.Index,
			Total:       ch.Total,
			Title:       doc.Title,
			Description: doc.Description,
		})
		if err != nil {
			return nil, err
		}

		out, err := s.generator.Generate(ctx, instruction, ch.Text)
		if err != nil {
			return nil, fmt.Errorf("partial summary %d/%d: %w", ch.Index, ch.Total, err)
		}
		s.logger.Debug(ctx, "partial summary %d/%d done", ch.Index, ch.Total)
		partials = append(partials, PartialLabel(ch.Index, ch.Total)+"\n"+out)
	}
	return partials, nil
}

// fuse merges the labeled partials into the final report.
func (s *implSummarizer) fuse(ctx context.Context, doc *transcript.Document, partials []string) (string, error) {
	instruction, err := prompt.Fusion(prompt.FusionParams{
		Title:       doc.Title,
		Description: doc.Description,
	})
	if err != nil {
		return "", err
	}

	fused, err := s.generator.Generate(ctx, instruction, strings.Join(partials, "\n\n"))
	if err != nil {
		return "", fmt.Errorf("fuse: %w", err)
	}
	return fused, nil
}

// PartialLabel is the heading placed above a partial summary in the fusion input.
func PartialLabel(index, total int) string {
	return fmt.Sprintf("## [부분요약 %d/%d]", index, total)
}
