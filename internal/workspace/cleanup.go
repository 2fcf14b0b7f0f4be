// Copyright © 2026 The kconfedit Authors
// Release and leftover-workspace cleanup

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Release removes the workspace directory and everything under it.
// Idempotent: an already-removed workspace is a successful release.
// A workspace created with Keep is preserved.
func (w *Workspace) Release() error {
	if w.keep {
		log.Debugf("keeping workspace %s", w.Path)
		return nil
	}

	if !w.Exists() {
		return nil
	}

	if err := os.RemoveAll(w.Path); err != nil {
		return fmt.Errorf("failed to release workspace %s: %w", w.Path, err)
	}
	log.Debugf("released workspace %s", w.Path)

	// Try to remove the parent temp directory if it's empty
	tempDir := filepath.Join(w.BaseDir, TempDirPrefix)
	_ = os.Remove(tempDir) // Ignore error - directory might not be empty

	return nil
}

// CleanupAll removes every leftover workspace under baseDir.
// Use with caution - this removes all of .kconfedit-tmp.
func CleanupAll(baseDir string) error {
	tempDir := filepath.Join(baseDir, TempDirPrefix)

	info, err := os.Stat(tempDir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat temp directory %s: %w", tempDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", tempDir)
	}

	if err := os.RemoveAll(tempDir); err != nil {
		return fmt.Errorf("failed to cleanup all workspaces: %w", err)
	}

	return nil
}

// CleanupStale removes workspaces older than maxAge. Runs interrupted hard
// enough to defeat the release guarantee (power loss, SIGKILL) leave these
// behind. Returns the number removed; removal errors accumulate rather than
// stopping the sweep.
func CleanupStale(baseDir string, maxAge time.Duration) (int, error) {
	tempDir := filepath.Join(baseDir, TempDirPrefix)

	info, err := os.Stat(tempDir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to stat temp directory %s: %w", tempDir, err)
	}
	if !info.IsDir() {
		return 0, nil
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read temp directory: %w", err)
	}

	now := time.Now()
	cleaned := 0
	var errs *multierror.Error

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		entryInfo, err := entry.Info()
		if err != nil {
			continue
		}

		if now.Sub(entryInfo.ModTime()) >= maxAge {
			wsPath := filepath.Join(tempDir, entry.Name())
			if err := os.RemoveAll(wsPath); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("remove %s: %w", wsPath, err))
				continue
			}
			cleaned++
		}
	}

	// Try to remove the parent directory if empty
	_ = os.Remove(tempDir)

	return cleaned, errs.ErrorOrNil()
}
