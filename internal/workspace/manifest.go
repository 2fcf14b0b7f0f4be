// Copyright © 2026 The kconfedit Authors
// Run manifest written into the workspace for debugging kept workspaces

package workspace

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest records what a run was doing. It lives inside the workspace, so
// it normally disappears with it; it earns its keep when a workspace is
// preserved with Keep or left behind by a hard kill.
type Manifest struct {
	RunID         string    `yaml:"run_id"`
	KernelVersion string    `yaml:"kernel_version"`
	ConfigFile    string    `yaml:"config_file"`
	StartedAt     time.Time `yaml:"started_at"`
	FinishedAt    time.Time `yaml:"finished_at,omitempty"`
	Outcome       string    `yaml:"outcome,omitempty"`
}

// WriteManifest marshals m into the workspace's run.yaml
func (w *Workspace) WriteManifest(m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(w.ManifestPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the run.yaml of this workspace
func (w *Workspace) ReadManifest() (*Manifest, error) {
	data, err := os.ReadFile(w.ManifestPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
