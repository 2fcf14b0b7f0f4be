// Copyright © 2026 The kconfedit Authors
// Fetcher types and constants

package fetcher

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Source type constants
const (
	SourceArchive = "archive"
	SourceGit     = "git"
)

// versionPattern captures the major component needed to build the
// release-series path, e.g. 6.8.9 lives under v6.x/.
var versionPattern = regexp.MustCompile(`^(\d+)\.\d+(?:\.\d+)?$`)

// FetchConfig holds configuration for retrieving a pinned source release
type FetchConfig struct {
	Version     string    // pinned release, e.g. "6.8.9"
	Source      string    // "archive" or "git"
	Mirror      string    // base URL for archive mirrors
	GitRemote   string    // remote URL for the git source
	Format      string    // archive compression: "xz" or "gz"
	SHA256      string    // optional expected digest of the archive (hex)
	Destination string    // directory the tree is placed under (workspace src/)
	Verbose     bool      // enable verbose logging
	Progress    io.Writer // progress output (optional, defaults to io.Discard)
}

// FetchResult contains the result of a fetch operation
type FetchResult struct {
	Version        string
	Source         string
	URL            string // archive URL or git remote actually used
	TreePath       string // extracted source tree root
	BytesFetched   int64
	FilesExtracted int
}

// TreeName returns the deterministic directory name of an extracted release
func TreeName(version string) string {
	return "linux-" + version
}

// ArchiveURL builds the mirror URL for a release archive, e.g.
// https://cdn.kernel.org/pub/linux/kernel/v6.x/linux-6.8.9.tar.xz
func ArchiveURL(mirror, version, format string) (string, error) {
	matches := versionPattern.FindStringSubmatch(version)
	if matches == nil {
		return "", fmt.Errorf("invalid version %q", version)
	}
	var suffix string
	switch format {
	case "xz":
		suffix = ".tar.xz"
	case "gz":
		suffix = ".tar.gz"
	default:
		return "", fmt.Errorf("unsupported archive format %q", format)
	}
	base := strings.TrimSuffix(mirror, "/")
	return fmt.Sprintf("%s/v%s.x/%s%s", base, matches[1], TreeName(version), suffix), nil
}
