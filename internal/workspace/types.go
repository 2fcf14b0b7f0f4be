// Copyright © 2026 The kconfedit Authors
// Workspace types/constants

package workspace

const (
	TempDirPrefix = ".kconfedit-tmp"
	RunIDPrefix   = "kc"
	SrcSubdir     = "src"
	LogsSubdir    = "logs"
	ManifestFile  = "run.yaml"
)

// Workspace is the isolated directory owned by a single run. It is created
// by New and removed by Release; nothing outside the run may depend on it.
type Workspace struct {
	RunID   string
	Path    string
	BaseDir string
	keep    bool
}

// Config holds options for workspace creation
type Config struct {
	BaseDir string
	Keep    bool
}
