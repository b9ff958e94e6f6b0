package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "playlist-digest",
		Short:         "Export a playlist, fetch its transcripts and summarize them with Gemini",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "config.yaml", "Path to the YAML config file (optional)")
	flags.StringVar(&a.envFile, "env-file", ".env", "Dotenv file loaded before the config (optional)")
	flags.StringVar(&a.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")

	rootCmd.AddCommand(exportCmd(a))
	rootCmd.AddCommand(fetchCmd(a))
	rootCmd.AddCommand(summarizeCmd(a))
	rootCmd.AddCommand(runCmd(a))
	rootCmd.AddCommand(watchCmd(a))
	rootCmd.AddCommand(historyCmd(a))

	return rootCmd
}
