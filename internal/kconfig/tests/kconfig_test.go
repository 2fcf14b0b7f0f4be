// Copyright © 2026 The kconfedit Authors
// Seeding and persistence tests

package kconfig_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kconfedit/kconfedit/internal/kconfig"
)

const baselineContent = "CONFIG_64BIT=y\nCONFIG_X86_64=y\n# CONFIG_DEBUG_KERNEL is not set\n"

func newFixture(t *testing.T) (afero.Fs, string, string) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	baseline := "/project/build/kernel.config"
	tree := "/ws/src/linux-6.8.9"
	require.NoError(t, fsys.MkdirAll(tree, 0755))
	require.NoError(t, afero.WriteFile(fsys, baseline, []byte(baselineContent), 0644))
	return fsys, baseline, tree
}

func TestEnsureBaseline(t *testing.T) {
	fsys, baseline, _ := newFixture(t)
	require.NoError(t, kconfig.EnsureBaseline(fsys, baseline))
}

func TestEnsureBaseline_Missing(t *testing.T) {
	fsys := afero.NewMemMapFs()

	err := kconfig.EnsureBaseline(fsys, "/project/build/kernel.config")
	require.Error(t, err)

	var notFound *kconfig.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "/project/build/kernel.config", notFound.Path)
}

func TestSeed(t *testing.T) {
	fsys, baseline, tree := newFixture(t)

	require.NoError(t, kconfig.Seed(fsys, baseline, tree))

	data, err := afero.ReadFile(fsys, kconfig.TreeConfigPath(tree))
	require.NoError(t, err)
	assert.Equal(t, baselineContent, string(data))
}

func TestSeed_MissingBaseline(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/ws/src/linux-6.8.9", 0755))

	err := kconfig.Seed(fsys, "/missing.config", "/ws/src/linux-6.8.9")
	require.Error(t, err)

	var notFound *kconfig.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestPersist(t *testing.T) {
	fsys, baseline, tree := newFixture(t)
	require.NoError(t, kconfig.Seed(fsys, baseline, tree))

	// Simulate the editor rewriting the in-tree config
	edited := baselineContent + "CONFIG_KVM=y\n"
	require.NoError(t, afero.WriteFile(fsys, kconfig.TreeConfigPath(tree), []byte(edited), 0644))

	require.NoError(t, kconfig.Persist(fsys, tree, baseline))

	data, err := afero.ReadFile(fsys, baseline)
	require.NoError(t, err)
	assert.Equal(t, edited, string(data))

	// No temp file left behind
	exists, err := afero.Exists(fsys, baseline+".tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPersist_MissingEditedConfig(t *testing.T) {
	fsys, baseline, tree := newFixture(t)

	// Nothing was ever seeded; persist has nothing to copy back
	err := kconfig.Persist(fsys, tree, baseline)
	require.Error(t, err)

	// Baseline untouched
	data, readErr := afero.ReadFile(fsys, baseline)
	require.NoError(t, readErr)
	assert.Equal(t, baselineContent, string(data))
}

func TestSeedThenPersist_Idempotent(t *testing.T) {
	fsys, baseline, tree := newFixture(t)

	// An editor that makes no changes leaves the baseline byte-identical
	for i := 0; i < 2; i++ {
		require.NoError(t, kconfig.Seed(fsys, baseline, tree))
		require.NoError(t, kconfig.Persist(fsys, tree, baseline))
	}

	data, err := afero.ReadFile(fsys, baseline)
	require.NoError(t, err)
	assert.Equal(t, baselineContent, string(data))
}
