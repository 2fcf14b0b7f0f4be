// Copyright © 2026 The kconfedit Authors
// Archive download and extraction

package fetcher

import (
	"archive/tar"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"
)

// fetchArchive GETs the release tarball and extracts it while streaming.
// The archive is never written to disk as-is; it is decompressed and
// unpacked in one pass.
func fetchArchive(ctx context.Context, config *FetchConfig) (*FetchResult, error) {
	url, err := ArchiveURL(config.Mirror, config.Version, config.Format)
	if err != nil {
		return nil, &FetchError{URL: config.Mirror, Err: err}
	}

	treePath := filepath.Join(config.Destination, TreeName(config.Version))

	if config.Verbose {
		fmt.Fprintf(config.Progress, "Downloading %s...\n", url)
	}
	log.Debugf("fetching %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchError{URL: url, Err: fmt.Errorf("no archive published for version %s (HTTP 404)", config.Version)}
	case resp.StatusCode != http.StatusOK:
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	// Hash and count the raw archive bytes as they stream past
	var hasher hash.Hash
	body := io.Reader(resp.Body)
	if config.SHA256 != "" {
		hasher = sha256.New()
		body = io.TeeReader(body, hasher)
	}
	counter := &countingReader{r: body}

	decompressed, err := newDecompressor(config.Format, counter)
	if err != nil {
		return nil, &ExtractionError{Name: url, Err: err}
	}

	fileCount, err := extractTar(ctx, decompressed, config.Destination)
	if err != nil {
		// Remove the partial tree on failure
		_ = os.RemoveAll(treePath)
		// A canceled or dropped transfer is a fetch problem, not a
		// corrupt archive
		if ctx.Err() != nil {
			return nil, &FetchError{URL: url, Err: ctx.Err()}
		}
		return nil, err
	}

	// Drain trailing container bytes the tar reader never asked for, so
	// the digest and byte count cover the whole archive
	if _, err := io.Copy(io.Discard, counter); err != nil {
		_ = os.RemoveAll(treePath)
		return nil, &FetchError{URL: url, Err: err}
	}

	if hasher != nil {
		got := hex.EncodeToString(hasher.Sum(nil))
		want := strings.ToLower(config.SHA256)
		if got != want {
			_ = os.RemoveAll(treePath)
			return nil, &FetchError{URL: url, Err: fmt.Errorf("sha256 mismatch: got %s, want %s", got, want)}
		}
	}

	if config.Verbose {
		fmt.Fprintf(config.Progress, "Extracted %d files (%d bytes fetched) to %s\n", fileCount, counter.n, treePath)
	}

	return &FetchResult{
		Version:        config.Version,
		Source:         SourceArchive,
		URL:            url,
		TreePath:       treePath,
		BytesFetched:   counter.n,
		FilesExtracted: fileCount,
	}, nil
}

// newDecompressor wraps r with the decoder for the configured format
func newDecompressor(format string, r io.Reader) (io.Reader, error) {
	switch format {
	case "xz":
		return xz.NewReader(r)
	case "gz":
		return pgzip.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported archive format %q", format)
	}
}

// extractTar unpacks a tar stream under dest and returns the number of
// regular files written. Entries that would land outside dest are rejected.
func extractTar(ctx context.Context, r io.Reader, dest string) (int, error) {
	tr := tar.NewReader(r)
	fileCount := 0

	for {
		if err := ctx.Err(); err != nil {
			return fileCount, &ExtractionError{Err: err}
		}

		header, err := tr.Next()
		if err == io.EOF {
			return fileCount, nil
		}
		if err != nil {
			return fileCount, &ExtractionError{Err: err}
		}

		target, err := safeJoin(dest, header.Name)
		if err != nil {
			return fileCount, &ExtractionError{Name: header.Name, Err: err}
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, os.FileMode(header.Mode)); err != nil {
				return fileCount, &ExtractionError{Name: header.Name, Err: err}
			}

		case tar.TypeReg:
			if err := writeEntry(target, tr, os.FileMode(header.Mode)); err != nil {
				return fileCount, &ExtractionError{Name: header.Name, Err: err}
			}
			fileCount++

		case tar.TypeSymlink:
			if err := safeLinkname(header.Name, header.Linkname); err != nil {
				return fileCount, &ExtractionError{Name: header.Name, Err: err}
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fileCount, &ExtractionError{Name: header.Name, Err: err}
			}
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fileCount, &ExtractionError{Name: header.Name, Err: err}
			}

		case tar.TypeLink:
			source, err := safeJoin(dest, header.Linkname)
			if err != nil {
				return fileCount, &ExtractionError{Name: header.Name, Err: err}
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fileCount, &ExtractionError{Name: header.Name, Err: err}
			}
			if err := os.Link(source, target); err != nil {
				return fileCount, &ExtractionError{Name: header.Name, Err: err}
			}

		default:
			log.Debugf("skipping tar entry %s (type %d)", header.Name, header.Typeflag)
		}
	}
}

// writeEntry writes one regular file from the tar stream
func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// safeJoin joins name under dest, rejecting entries that would escape it
func safeJoin(dest, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute path in archive")
	}
	target := filepath.Join(dest, name)
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes destination")
	}
	return target, nil
}

// safeLinkname rejects symlink targets that point outside the archive root
func safeLinkname(name, linkname string) error {
	if filepath.IsAbs(linkname) {
		return fmt.Errorf("absolute symlink target")
	}
	resolved := filepath.Join(filepath.Dir(name), linkname)
	if resolved == ".." || strings.HasPrefix(resolved, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("symlink target escapes archive root")
	}
	return nil
}

// countingReader tracks how many raw bytes have been consumed
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
