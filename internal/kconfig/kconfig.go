// Copyright © 2026 The kconfedit Authors
// Baseline config seeding and persistence

package kconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var log = logrus.StandardLogger().WithField("component", "kconfig")

// ConfigFileName is the in-tree file the interactive configurator reads and
// rewrites.
const ConfigFileName = ".config"

// TreeConfigPath returns where the configurator expects the config inside a
// source tree.
func TreeConfigPath(treePath string) string {
	return filepath.Join(treePath, ConfigFileName)
}

// EnsureBaseline verifies the tracked baseline exists before the run spends
// time on the network. First-time setup is out of scope: the baseline must
// pre-exist.
func EnsureBaseline(fsys afero.Fs, baseline string) error {
	info, err := fsys.Stat(baseline)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Path: baseline}
		}
		return fmt.Errorf("failed to stat baseline config %s: %w", baseline, err)
	}
	if info.IsDir() {
		return fmt.Errorf("baseline config %s is a directory", baseline)
	}
	return nil
}

// Seed copies the baseline's current bytes into the source tree at the path
// the configurator expects.
func Seed(fsys afero.Fs, baseline, treePath string) error {
	data, err := afero.ReadFile(fsys, baseline)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Path: baseline}
		}
		return fmt.Errorf("failed to read baseline config %s: %w", baseline, err)
	}

	target := TreeConfigPath(treePath)
	if err := afero.WriteFile(fsys, target, data, 0644); err != nil {
		return fmt.Errorf("failed to seed %s: %w", target, err)
	}

	log.Debugf("seeded %s (%d bytes) into %s", baseline, len(data), target)
	return nil
}

// Persist copies the edited in-tree config back over the baseline. This is
// the run's only durable mutation; callers invoke it only after the editor
// reported success. The write is atomic so an interrupted persist leaves the
// previous baseline intact.
func Persist(fsys afero.Fs, treePath, baseline string) error {
	source := TreeConfigPath(treePath)
	data, err := afero.ReadFile(fsys, source)
	if err != nil {
		return fmt.Errorf("failed to read edited config %s: %w", source, err)
	}

	if err := writeFileAtomic(fsys, baseline, data, 0644); err != nil {
		return fmt.Errorf("failed to persist baseline config %s: %w", baseline, err)
	}

	log.Debugf("persisted %s (%d bytes) from %s", baseline, len(data), source)
	return nil
}

// writeFileAtomic writes data via a temp file + rename so readers never see
// a half-written baseline. Bytes are written exactly as given.
func writeFileAtomic(fsys afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := afero.WriteFile(fsys, tmpPath, data, perm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := fsys.Rename(tmpPath, path); err != nil {
		_ = fsys.Remove(tmpPath) // Clean up on failure
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
