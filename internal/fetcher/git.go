// Copyright © 2026 The kconfedit Authors
// Git tag clone implementation

package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// fetchGit clones the stable tree at the release tag. Shallow, single
// branch: only the pinned release is materialized.
func fetchGit(ctx context.Context, config *FetchConfig) (*FetchResult, error) {
	if config.GitRemote == "" {
		return nil, &FetchError{URL: "", Err: fmt.Errorf("git remote is empty")}
	}

	tag := "v" + config.Version
	treePath := filepath.Join(config.Destination, TreeName(config.Version))

	if config.Verbose {
		fmt.Fprintf(config.Progress, "Cloning %s at tag %s...\n", config.GitRemote, tag)
	}
	log.Debugf("cloning %s tag %s into %s", config.GitRemote, tag, treePath)

	cloneOpts := &git.CloneOptions{
		URL:           config.GitRemote,
		Depth:         1,
		SingleBranch:  true,
		ReferenceName: plumbing.NewTagReferenceName(tag),
	}
	if config.Verbose {
		cloneOpts.Progress = config.Progress
	}

	_, err := git.PlainCloneContext(ctx, treePath, false, cloneOpts)
	if err != nil {
		// Clean up partial clone on failure
		_ = os.RemoveAll(treePath)
		return nil, &FetchError{URL: config.GitRemote, Err: fmt.Errorf("failed to clone tag %s: %w", tag, err)}
	}

	fileCount, byteCount := countFiles(treePath)
	if config.Verbose {
		fmt.Fprintf(config.Progress, "Cloned %d files (%d bytes)\n", fileCount, byteCount)
	}

	return &FetchResult{
		Version:        config.Version,
		Source:         SourceGit,
		URL:            config.GitRemote,
		TreePath:       treePath,
		BytesFetched:   byteCount,
		FilesExtracted: fileCount,
	}, nil
}

// countFiles counts files and total bytes under dir; best effort
func countFiles(dir string) (int, int64) {
	var fileCount int
	var byteCount int64

	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			fileCount++
			byteCount += info.Size()
		}
		return nil
	})

	return fileCount, byteCount
}
