// Copyright © 2026 The kconfedit Authors
// The edit command

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kconfedit/kconfedit/internal/pipeline"
	"github.com/kconfedit/kconfedit/internal/settings"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Fetch the pinned kernel source and edit the baseline config",
	Long: `Fetch the pinned upstream kernel source into a run-scoped workspace,
seed it with the baseline config, open the interactive configurator, and on
a clean editor exit persist the edited config back over the baseline.

The baseline must already exist; first-time setup is out of scope.

Examples:
  kconfedit edit --kernel-version 6.8.9 --config build/kernel.config
  kconfedit edit --kernel-version 6.8.9 --config build/kernel.config --sha256 8d0c...
  kconfedit edit --source git --kernel-version 6.8.9 --config build/kernel.config`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeEdit()
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func executeEdit() error {
	s := settings.FromViper(viper.GetViper())

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Operator interruption cancels in-flight work; the pipeline's
	// deferred release still runs before the process exits
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return pipeline.Run(ctx, s, cwd)
}
