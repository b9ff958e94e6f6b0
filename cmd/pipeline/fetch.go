package main

import "github.com/spf13/cobra"

func fetchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the transcript of every catalog row",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fetch(cmd.Context())
		},
	}
}
