// Copyright © 2026 The kconfedit Authors
// Workspace acquisition and run ID generation

package workspace

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger().WithField("component", "workspace")

var (
	// mutex ensures thread-safe run ID generation
	idMutex sync.Mutex
	// lastTimestamp prevents duplicate IDs in the same minute
	lastTimestamp string
	lastCounter   int
)

// ResetRunIDState resets the global run ID generation state (for testing)
func ResetRunIDState() {
	idMutex.Lock()
	defer idMutex.Unlock()
	lastTimestamp = ""
	lastCounter = 0
}

// GenerateRunID creates a unique run ID with format kc-YYYYMMDD-HHMM-3hexchars,
// or kc-YYYYMMDD-HHMM-NNN (counter format) for rapid successive calls.
// Thread-safe and guaranteed unique even with rapid consecutive calls.
func GenerateRunID() (string, error) {
	idMutex.Lock()
	defer idMutex.Unlock()

	now := time.Now()
	timestamp := now.Format("20060102-1504")

	// Handle potential collisions within the same minute
	if timestamp == lastTimestamp {
		lastCounter++
		return fmt.Sprintf("%s-%s-%03d", RunIDPrefix, timestamp, lastCounter), nil
	}

	randomBytes := make([]byte, 2)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	randomHex := hex.EncodeToString(randomBytes)[:3]

	lastTimestamp = timestamp
	lastCounter = 0

	return fmt.Sprintf("%s-%s-%s", RunIDPrefix, timestamp, randomHex), nil
}

// New acquires a fresh workspace under config.BaseDir. If config is nil the
// current working directory is used as the base. Returns a CreateError when
// the directory tree cannot be created.
func New(config *Config) (*Workspace, error) {
	if config == nil {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current working directory: %w", err)
		}
		config = &Config{BaseDir: cwd}
	}

	runID, err := GenerateRunID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run ID: %w", err)
	}

	workspacePath := filepath.Join(config.BaseDir, TempDirPrefix, runID)

	if err := os.MkdirAll(workspacePath, 0755); err != nil {
		return nil, &CreateError{Path: workspacePath, Err: err}
	}

	ws := &Workspace{
		RunID:   runID,
		Path:    workspacePath,
		BaseDir: config.BaseDir,
		keep:    config.Keep,
	}

	for _, subdir := range []string{SrcSubdir, LogsSubdir} {
		subdirPath := filepath.Join(workspacePath, subdir)
		if err := os.MkdirAll(subdirPath, 0755); err != nil {
			// Cleanup on failure
			_ = os.RemoveAll(workspacePath)
			return nil, &CreateError{Path: subdirPath, Err: err}
		}
	}

	log.Debugf("acquired workspace %s", workspacePath)
	return ws, nil
}

// SrcPath returns the directory the source tree is extracted into
func (w *Workspace) SrcPath() string {
	return filepath.Join(w.Path, SrcSubdir)
}

// LogsPath returns the directory for run logs
func (w *Workspace) LogsPath() string {
	return filepath.Join(w.Path, LogsSubdir)
}

// ManifestPath returns the path of the run manifest file
func (w *Workspace) ManifestPath() string {
	return filepath.Join(w.Path, ManifestFile)
}

// Exists reports whether the workspace directory is still present
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.Path)
	return err == nil && info.IsDir()
}

// ShouldKeep reports whether Release will preserve the directory
func (w *Workspace) ShouldKeep() bool {
	return w.keep
}
