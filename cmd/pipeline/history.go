package main

import (
	"errors"

	"github.com/nguyentantai21042004/playlist-digest/internal/history"
	"github.com/spf13/cobra"
)

func historyCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recorded summarize runs, or the files of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Paths.History == "" {
				return errors.New("run history is disabled, set paths.history in the config")
			}

			store, err := history.Open(a.cfg.Paths.History)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			if len(args) == 1 {
				files, err := store.Files(ctx, args[0])
				if err != nil {
					return err
				}
				renderFiles(cmd.OutOrStdout(), files)
				return nil
			}

			runs, err := store.Recent(ctx, limit)
			if err != nil {
				return err
			}
			renderRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show")

	return cmd
}
