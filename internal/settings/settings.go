// Copyright © 2026 The kconfedit Authors
// Run settings resolution (flags > env > config file > defaults)

package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kconfedit/kconfedit/internal/editor"
)

var log = logrus.StandardLogger().WithField("component", "settings")

// Defaults applied when neither flag, env, nor config file set a value
const (
	DefaultMirror        = "https://cdn.kernel.org/pub/linux/kernel"
	DefaultGitRemote     = "https://git.kernel.org/pub/scm/linux/kernel/git/stable/linux.git"
	DefaultSource        = "archive"
	DefaultArchiveFormat = "xz"
	DefaultEditorTarget  = "menuconfig"

	// EnvPrefix is the prefix for environment overrides,
	// e.g. KCONFEDIT_KERNEL_VERSION, KCONFEDIT_CONFIG.
	EnvPrefix = "KCONFEDIT"

	configDirName = ".kconfedit"
)

// versionPattern matches upstream release identifiers like "6.8" or "6.8.9"
var versionPattern = regexp.MustCompile(`^\d+\.\d+(\.\d+)?$`)

// Settings is the immutable per-run configuration. It is resolved once at
// run start and passed down to each stage; nothing mutates it afterwards.
type Settings struct {
	KernelVersion string // pinned upstream release, e.g. "6.8.9"
	ConfigFile    string // path to the tracked baseline config file
	Mirror        string // base URL for release archives
	GitRemote     string // stable tree remote for the git source
	Source        string // "archive" or "git"
	ArchiveFormat string // "xz" or "gz"
	EditorTarget  string // make target for the interactive configurator
	SHA256        string // optional expected archive digest (hex)
	Keep          bool   // preserve the workspace after the run
	Verbose       bool
}

// Init wires viper defaults, env overrides, and the optional config file.
// cfgFile overrides the default config file location when non-empty.
func Init(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, configDirName))
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("mirror", DefaultMirror)
	viper.SetDefault("git_remote", DefaultGitRemote)
	viper.SetDefault("source", DefaultSource)
	viper.SetDefault("archive_format", DefaultArchiveFormat)
	viper.SetDefault("editor_target", DefaultEditorTarget)

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine; a malformed one deserves a warning
		// even at the default location
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warnf("could not read config file: %s", err)
		}
	} else {
		log.Debugf("using config file %s", viper.ConfigFileUsed())
	}
}

// FromViper builds a Settings value from the given viper instance.
// Pass viper.GetViper() for the process-wide instance.
func FromViper(v *viper.Viper) *Settings {
	return &Settings{
		KernelVersion: v.GetString("kernel_version"),
		ConfigFile:    v.GetString("config"),
		Mirror:        v.GetString("mirror"),
		GitRemote:     v.GetString("git_remote"),
		Source:        v.GetString("source"),
		ArchiveFormat: v.GetString("archive_format"),
		EditorTarget:  v.GetString("editor_target"),
		SHA256:        v.GetString("sha256"),
		Keep:          v.GetBool("keep"),
		Verbose:       v.GetBool("verbose"),
	}
}

// Validate checks that the run has everything it needs before any stage
// touches the filesystem or network.
func (s *Settings) Validate() error {
	if s.KernelVersion == "" {
		return &ValidationError{Field: "kernel_version", Reason: "required setting is not set"}
	}
	if !versionPattern.MatchString(s.KernelVersion) {
		return &ValidationError{Field: "kernel_version", Reason: "must look like MAJOR.MINOR or MAJOR.MINOR.PATCH"}
	}
	if s.ConfigFile == "" {
		return &ValidationError{Field: "config", Reason: "required setting is not set"}
	}
	switch s.Source {
	case "archive", "git":
	default:
		return &ValidationError{Field: "source", Reason: "must be \"archive\" or \"git\""}
	}
	switch s.ArchiveFormat {
	case "xz", "gz":
	default:
		return &ValidationError{Field: "archive_format", Reason: "must be \"xz\" or \"gz\""}
	}
	// Rejecting a mistyped target here keeps it from surfacing only after
	// the source download
	if !editor.Targets[s.EditorTarget] {
		return &ValidationError{Field: "editor_target", Reason: fmt.Sprintf("unknown configurator target %q", s.EditorTarget)}
	}
	return nil
}
