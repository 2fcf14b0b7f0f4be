// Copyright © 2026 The kconfedit Authors
// Settings tests

package settings_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kconfedit/kconfedit/internal/settings"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	v.SetDefault("mirror", settings.DefaultMirror)
	v.SetDefault("git_remote", settings.DefaultGitRemote)
	v.SetDefault("source", settings.DefaultSource)
	v.SetDefault("archive_format", settings.DefaultArchiveFormat)
	v.SetDefault("editor_target", settings.DefaultEditorTarget)
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}

func TestFromViper(t *testing.T) {
	v := newViper(map[string]interface{}{
		"kernel_version": "6.8.9",
		"config":         "build/kernel.config",
		"keep":           true,
	})

	s := settings.FromViper(v)
	assert.Equal(t, "6.8.9", s.KernelVersion)
	assert.Equal(t, "build/kernel.config", s.ConfigFile)
	assert.Equal(t, settings.DefaultMirror, s.Mirror)
	assert.Equal(t, "archive", s.Source)
	assert.Equal(t, "xz", s.ArchiveFormat)
	assert.Equal(t, "menuconfig", s.EditorTarget)
	assert.True(t, s.Keep)
}

func TestValidate_OK(t *testing.T) {
	s := settings.FromViper(newViper(map[string]interface{}{
		"kernel_version": "6.8.9",
		"config":         "build/kernel.config",
	}))
	require.NoError(t, s.Validate())
}

func TestValidate_MissingVersion(t *testing.T) {
	s := settings.FromViper(newViper(map[string]interface{}{
		"config": "build/kernel.config",
	}))

	err := s.Validate()
	require.Error(t, err)

	var verr *settings.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "kernel_version", verr.Field)
}

func TestValidate_MissingConfig(t *testing.T) {
	s := settings.FromViper(newViper(map[string]interface{}{
		"kernel_version": "6.8.9",
	}))

	err := s.Validate()
	require.Error(t, err)

	var verr *settings.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "config", verr.Field)
}

func TestValidate_MalformedVersion(t *testing.T) {
	for _, version := range []string{"v6.8.9", "6", "6.8.9-rc1", "six.eight"} {
		s := settings.FromViper(newViper(map[string]interface{}{
			"kernel_version": version,
			"config":         "build/kernel.config",
		}))

		err := s.Validate()
		require.Error(t, err, "version %q should be rejected", version)

		var verr *settings.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "kernel_version", verr.Field)
	}
}

func TestValidate_TwoComponentVersion(t *testing.T) {
	s := settings.FromViper(newViper(map[string]interface{}{
		"kernel_version": "6.8",
		"config":         "build/kernel.config",
	}))
	require.NoError(t, s.Validate())
}

func TestValidate_BadSource(t *testing.T) {
	s := settings.FromViper(newViper(map[string]interface{}{
		"kernel_version": "6.8.9",
		"config":         "build/kernel.config",
		"source":         "ftp",
	}))

	var verr *settings.ValidationError
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "source", verr.Field)
}

func TestValidate_BadArchiveFormat(t *testing.T) {
	s := settings.FromViper(newViper(map[string]interface{}{
		"kernel_version": "6.8.9",
		"config":         "build/kernel.config",
		"archive_format": "bz2",
	}))

	var verr *settings.ValidationError
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "archive_format", verr.Field)
}

func TestValidate_UnknownEditorTarget(t *testing.T) {
	// A mistyped target must fail validation, not surface after the
	// source download
	s := settings.FromViper(newViper(map[string]interface{}{
		"kernel_version": "6.8.9",
		"config":         "build/kernel.config",
		"editor_target":  "menucofig",
	}))

	var verr *settings.ValidationError
	require.ErrorAs(t, s.Validate(), &verr)
	assert.Equal(t, "editor_target", verr.Field)
}

func TestValidate_AllEditorTargets(t *testing.T) {
	for _, target := range []string{"menuconfig", "nconfig", "xconfig", "gconfig", "oldconfig"} {
		s := settings.FromViper(newViper(map[string]interface{}{
			"kernel_version": "6.8.9",
			"config":         "build/kernel.config",
			"editor_target":  target,
		}))
		assert.NoError(t, s.Validate(), "target %q should validate", target)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("KCONFEDIT_KERNEL_VERSION", "6.9.1")

	v := viper.New()
	v.SetEnvPrefix(settings.EnvPrefix)
	v.AutomaticEnv()

	s := settings.FromViper(v)
	assert.Equal(t, "6.9.1", s.KernelVersion)
}
