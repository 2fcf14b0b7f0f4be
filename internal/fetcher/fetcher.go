// Copyright © 2026 The kconfedit Authors
// Main fetcher logic

package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

var log = logrus.StandardLogger().WithField("component", "fetcher")

// Fetch retrieves the pinned release into config.Destination and returns the
// extracted tree location. The archive source issues a single GET and streams
// it through decompression; the git source performs a shallow tag clone.
// No retries: any failure aborts the run.
func Fetch(ctx context.Context, config *FetchConfig) (*FetchResult, error) {
	if config == nil {
		return nil, fmt.Errorf("fetch config is nil")
	}

	if config.Version == "" {
		return nil, fmt.Errorf("version is empty")
	}

	if config.Destination == "" {
		return nil, fmt.Errorf("destination is empty")
	}

	// Set default progress writer
	if config.Progress == nil {
		config.Progress = io.Discard
	}

	var (
		result *FetchResult
		err    error
	)
	switch config.Source {
	case SourceArchive, "":
		result, err = fetchArchive(ctx, config)
	case SourceGit:
		result, err = fetchGit(ctx, config)
	default:
		return nil, fmt.Errorf("unknown source type: %s", config.Source)
	}
	if err != nil {
		return nil, err
	}

	if err := verifySourceTree(result.TreePath); err != nil {
		return nil, err
	}

	return result, nil
}

// verifySourceTree checks that the extracted tree has the files the
// interactive configurator needs. A tree missing them means the transfer or
// extraction ended early.
func verifySourceTree(treePath string) error {
	for _, name := range []string{"Makefile", "Kconfig"} {
		if _, err := os.Stat(filepath.Join(treePath, name)); err != nil {
			return &ExtractionError{
				Name: treePath,
				Err:  fmt.Errorf("incomplete source tree, missing %s: %w", name, err),
			}
		}
	}
	return nil
}
