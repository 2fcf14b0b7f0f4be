// Copyright © 2026 The kconfedit Authors
// The edit pipeline: fetch, seed, editor, persist

package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/kconfedit/kconfedit/internal/editor"
	"github.com/kconfedit/kconfedit/internal/fetcher"
	"github.com/kconfedit/kconfedit/internal/kconfig"
	"github.com/kconfedit/kconfedit/internal/prereq"
	"github.com/kconfedit/kconfedit/internal/settings"
	"github.com/kconfedit/kconfedit/internal/workspace"
)

// Run executes one edit run under baseDir: preflight, workspace, fetch,
// seed, editor, persist. The baseline is only rewritten after the editor
// exits cleanly, and the workspace release is a single deferred call so it
// fires on every return path, error or not.
func Run(ctx context.Context, s *settings.Settings, baseDir string) (err error) {
	if err := s.Validate(); err != nil {
		return err
	}

	// The editor is make-driven; fail before spending network time
	if err := prereq.Require("make"); err != nil {
		return err
	}

	fsys := afero.NewOsFs()
	if err := kconfig.EnsureBaseline(fsys, s.ConfigFile); err != nil {
		return err
	}

	ws, err := workspace.New(&workspace.Config{
		BaseDir: baseDir,
		Keep:    s.Keep,
	})
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	// Ensure cleanup happens on every exit path
	defer func() {
		if releaseErr := ws.Release(); releaseErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: workspace release failed: %v\n", releaseErr)
		}
	}()

	manifest := &workspace.Manifest{
		RunID:         ws.RunID,
		KernelVersion: s.KernelVersion,
		ConfigFile:    s.ConfigFile,
		StartedAt:     time.Now(),
		Outcome:       "started",
	}
	writeManifest(ws, manifest)
	defer func() {
		manifest.FinishedAt = time.Now()
		writeManifest(ws, manifest)
	}()

	fmt.Printf("Run ID: %s\n", ws.RunID)
	fmt.Printf("Kernel version: %s\n", s.KernelVersion)
	fmt.Printf("Baseline config: %s\n", s.ConfigFile)
	if s.Verbose {
		fmt.Printf("Workspace: %s\n", ws.Path)
	}

	// Phase 1: Fetch
	fmt.Println("\n[1/4] Fetch source")
	fetchResult, err := fetcher.Fetch(ctx, &fetcher.FetchConfig{
		Version:     s.KernelVersion,
		Source:      s.Source,
		Mirror:      s.Mirror,
		GitRemote:   s.GitRemote,
		Format:      s.ArchiveFormat,
		SHA256:      s.SHA256,
		Destination: ws.SrcPath(),
		Verbose:     s.Verbose,
		Progress:    os.Stdout,
	})
	if err != nil {
		manifest.Outcome = "fetch-failed"
		return fmt.Errorf("failed to fetch kernel source: %w", err)
	}
	fmt.Printf("  → Source tree ready at %s\n", fetchResult.TreePath)

	// Phase 2: Seed
	fmt.Println("\n[2/4] Seed baseline config")
	if err := kconfig.Seed(fsys, s.ConfigFile, fetchResult.TreePath); err != nil {
		manifest.Outcome = "seed-failed"
		return fmt.Errorf("failed to seed baseline config: %w", err)
	}
	fmt.Printf("  → Seeded %s into source tree\n", s.ConfigFile)

	// Phase 3: Interactive editor
	fmt.Printf("\n[3/4] Editor (make %s)\n", s.EditorTarget)
	if err := editor.Launch(ctx, &editor.Config{
		TreePath: fetchResult.TreePath,
		Target:   s.EditorTarget,
	}); err != nil {
		// Editor failure or abort: the baseline stays untouched
		manifest.Outcome = "editor-failed"
		return fmt.Errorf("editor did not complete: %w", err)
	}

	// Phase 4: Persist
	fmt.Println("\n[4/4] Persist config")
	if err := kconfig.Persist(fsys, fetchResult.TreePath, s.ConfigFile); err != nil {
		manifest.Outcome = "persist-failed"
		return fmt.Errorf("failed to persist baseline config: %w", err)
	}
	manifest.Outcome = "persisted"
	fmt.Printf("  → Saved %s\n", s.ConfigFile)

	if ws.ShouldKeep() {
		fmt.Printf("\nWorkspace preserved: %s\n", ws.Path)
	}

	return nil
}

// writeManifest is best-effort; a manifest problem never fails the run
func writeManifest(ws *workspace.Workspace, m *workspace.Manifest) {
	if !ws.Exists() {
		return
	}
	if err := ws.WriteManifest(m); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not write run manifest: %v\n", err)
	}
}
