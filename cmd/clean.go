// Copyright © 2026 The kconfedit Authors
// Cleanup of leftover workspaces

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kconfedit/kconfedit/internal/workspace"
)

var (
	cleanAll       bool
	cleanOlderThan time.Duration
)

// cleanCmd removes workspaces left behind by runs that were killed too hard
// for the release guarantee to fire
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove leftover workspace directories",
	Long: `Remove workspace directories left under .kconfedit-tmp by previous
runs. A normal run removes its own workspace; leftovers appear only after a
hard kill or when --keep was used.

Examples:
  kconfedit clean
  kconfedit clean --older-than 1h
  kconfedit clean --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		if cleanAll {
			if err := workspace.CleanupAll(cwd); err != nil {
				return err
			}
			fmt.Println("Removed all workspaces")
			return nil
		}

		cleaned, err := workspace.CleanupStale(cwd, cleanOlderThan)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d stale workspace(s)\n", cleaned)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Remove every workspace, regardless of age")
	cleanCmd.Flags().DurationVar(&cleanOlderThan, "older-than", 24*time.Hour, "Only remove workspaces older than this")
}
