// Copyright © 2026 The kconfedit Authors
// Version command

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kconfedit version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kconfedit %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
