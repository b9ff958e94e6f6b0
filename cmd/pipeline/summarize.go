package main

import "github.com/spf13/cobra"

func summarizeCmd(a *app) *cobra.Command {
	var src, dest string

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize every transcript into an 8-section Markdown report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.summarize(cmd.Context(), orDefault(src, a.cfg.Paths.Subtitles), orDefault(dest, a.cfg.Paths.Summaries))
		},
	}

	cmd.Flags().StringVar(&src, "src", "", "Transcript directory (default paths.subtitles)")
	cmd.Flags().StringVar(&dest, "dest", "", "Report directory (default paths.summaries)")

	return cmd
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
