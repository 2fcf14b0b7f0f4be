// Copyright © 2026 The kconfedit Authors
// Workspace error types

package workspace

import "fmt"

// CreateError reports a workspace directory that could not be created,
// e.g. insufficient permissions or disk space.
type CreateError struct {
	Path string
	Err  error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("failed to create workspace directory %s: %v", e.Path, e.Err)
}

func (e *CreateError) Unwrap() error { return e.Err }
