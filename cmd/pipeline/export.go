package main

import "github.com/spf13/cobra"

func exportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the playlist catalog CSV (title, duration, link, videoId, publishedAt)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.export(cmd.Context())
		},
	}
}
