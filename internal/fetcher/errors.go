// Copyright © 2026 The kconfedit Authors
// Fetcher error types

package fetcher

import "fmt"

// FetchError reports a failure to retrieve the pinned release: network
// failure, a missing remote artifact, or an incomplete transfer.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractionError reports a corrupt archive or an extraction that could not
// complete.
type ExtractionError struct {
	Name string // archive entry or tree path involved, if known
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("failed to extract archive: %v", e.Err)
	}
	return fmt.Sprintf("failed to extract %s: %v", e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
