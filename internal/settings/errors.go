// Copyright © 2026 The kconfedit Authors
// Settings error types

package settings

import "fmt"

// ValidationError reports a missing or malformed run setting.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("setting %q: %s", e.Field, e.Reason)
}
