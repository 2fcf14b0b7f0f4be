// Copyright © 2026 The kconfedit Authors
// Editor failure type

package editor

import "fmt"

// Failure reports an editor subprocess that exited abnormally or was
// aborted. Persistence is skipped when a run ends with one.
type Failure struct {
	Target   string
	ExitCode int // -1 when the editor never ran or died to a signal
	Err      error
}

func (e *Failure) Error() string {
	return fmt.Sprintf("editor %q failed (exit code %d): %v", e.Target, e.ExitCode, e.Err)
}

func (e *Failure) Unwrap() error { return e.Err }
