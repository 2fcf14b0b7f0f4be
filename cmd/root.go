// Copyright © 2026 The kconfedit Authors
// Root command and flag wiring

package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kconfedit/kconfedit/internal/settings"
)

var cfgFile string

// rootCmd represents the base command - runs the edit pipeline directly
// when no subcommand is given
var rootCmd = &cobra.Command{
	Use:   "kconfedit",
	Short: "Edit a pinned kernel build configuration interactively",
	Long: `kconfedit keeps a kernel build configuration as a reviewable file
in the project tree. A run fetches the pinned upstream kernel source into a
throwaway workspace, seeds it with the tracked baseline config, opens the
kernel's own interactive configurator (make menuconfig by default), and on
a clean exit writes the result back over the baseline.

The baseline file is only touched after the editor succeeds; the workspace
is removed on every exit path.

Examples:
  kconfedit --kernel-version 6.8.9 --config build/kernel.config
  kconfedit edit --kernel-version 6.8.9 --config build/kernel.config --editor-target nconfig
  kconfedit edit --source git --kernel-version 6.8.9 --config build/kernel.config
  kconfedit clean --older-than 24h`,
	// A stage failure should report the stage, not dump usage text
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return executeEdit()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "Config file (default: $HOME/.kconfedit/config.yaml)")
	rootCmd.PersistentFlags().String("kernel-version", "", "Pinned upstream kernel release, e.g. 6.8.9")
	rootCmd.PersistentFlags().String("config", "", "Path of the tracked baseline config file")
	rootCmd.PersistentFlags().String("mirror", settings.DefaultMirror, "Base URL serving release archives")
	rootCmd.PersistentFlags().String("git-remote", settings.DefaultGitRemote, "Stable tree remote for --source git")
	rootCmd.PersistentFlags().String("source", settings.DefaultSource, "Source type: archive or git")
	rootCmd.PersistentFlags().String("archive-format", settings.DefaultArchiveFormat, "Archive compression: xz or gz")
	rootCmd.PersistentFlags().String("editor-target", settings.DefaultEditorTarget, "Configurator make target: menuconfig, nconfig, xconfig, gconfig, oldconfig")
	rootCmd.PersistentFlags().String("sha256", "", "Expected SHA-256 of the release archive (hex)")
	rootCmd.PersistentFlags().Bool("keep", false, "Keep the workspace directory after the run")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	mustBindPFlag("kernel_version", "kernel-version")
	mustBindPFlag("config", "config")
	mustBindPFlag("mirror", "mirror")
	mustBindPFlag("git_remote", "git-remote")
	mustBindPFlag("source", "source")
	mustBindPFlag("archive_format", "archive-format")
	mustBindPFlag("editor_target", "editor-target")
	mustBindPFlag("sha256", "sha256")
	mustBindPFlag("keep", "keep")
	mustBindPFlag("verbose", "verbose")
}

func mustBindPFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() {
	settings.Init(cfgFile)

	if viper.GetBool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}
