// Package main is the entry point for the linkeval CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/linkeval/pkg/config/env"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "linkeval",
		Short: "Link prediction evaluation for biomedical knowledge graphs",
		Long: `linkeval prepares train/test/valid splits for AnyBURL, drives rule learning
and application, and scores the resulting predictions with ranked metrics
(Hits@K, MRR) and threshold metrics (ROC, PR curve, ROC AUC, PR AUC).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			if os.Getenv("ENV_PATH") == "" {
				return nil
			}
			if err := env.LoadDotEnv(os.Getenv("ENV"), ""); err != nil {
				slog.Warn("Continuing without .env", "error", err)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newExportSplitsCmd(),
		newLearnCmd(),
		newApplyCmd(),
		newEvaluateCmd(),
		newRunCmd(),
	)
	return root
}
