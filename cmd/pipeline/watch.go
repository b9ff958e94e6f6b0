package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/playlist-digest/internal/summarizer"
	"github.com/nguyentantai21042004/playlist-digest/internal/watcher"
	"github.com/spf13/cobra"
)

func watchCmd(a *app) *cobra.Command {
	var src, dest string
	var existing bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Summarize transcripts as they appear in the subtitles directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src = orDefault(src, a.cfg.Paths.Subtitles)
			dest = orDefault(dest, a.cfg.Paths.Summaries)

			if err := os.MkdirAll(src, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", src, err)
			}

			s, closeStore, err := a.newSummarizer(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if existing {
				if _, err := s.SummarizeAll(ctx, src, dest); err != nil {
					return err
				}
			}

			w, err := watcher.New(src, watchHandler(s, dest), a.log,
				watcher.WithPause(a.cfg.Summary.ThrottleDelay))
			if err != nil {
				return err
			}
			defer w.Stop()

			a.log.Info(ctx, "Watching %s, reports go to %s. Press Ctrl+C to stop", src, dest)
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&src, "src", "", "Transcript directory (default paths.subtitles)")
	cmd.Flags().StringVar(&dest, "dest", "", "Report directory (default paths.summaries)")
	cmd.Flags().BoolVar(&existing, "existing", false, "Summarize files already present before watching")

	return cmd
}

// watchHandler summarizes each settled file as its own recorded run. The
// summarizer already logs failures, so nothing is returned to the watcher.
func watchHandler(s summarizer.Summarizer, dest string) watcher.EventHandler {
	return func(ctx context.Context, path string) error {
		s.SummarizeOne(ctx, path, dest)
		return nil
	}
}
