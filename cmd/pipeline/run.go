package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type stage struct {
	name string
	run  func(ctx context.Context) error
}

func runCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run export, fetch and summarize in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStages(cmd.Context(), []stage{
				{"Export playlist CSV", a.export},
				{"Fetch transcripts", a.fetch},
				{"Summarize subtitles", func(ctx context.Context) error {
					return a.summarize(ctx, a.cfg.Paths.Subtitles, a.cfg.Paths.Summaries)
				}},
			})
		},
	}
}

// runStages runs stages in order and stops at the first failure.
func (a *app) runStages(ctx context.Context, stages []stage) error {
	for _, st := range stages {
		a.log.Info(ctx, "=== [%s] ===", st.name)
		if err := st.run(ctx); err != nil {
			a.log.Error(ctx, "[FAIL] %s: %v", st.name, err)
			return fmt.Errorf("%s: %w", st.name, err)
		}
		a.log.Info(ctx, "[OK] %s", st.name)
	}
	a.log.Info(ctx, "Pipeline complete")
	return nil
}
