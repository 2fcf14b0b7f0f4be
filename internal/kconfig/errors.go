// Copyright © 2026 The kconfedit Authors
// Seeding error types

package kconfig

import "fmt"

// NotFoundError reports a baseline config file that does not exist yet.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("baseline config file %s does not exist", e.Path)
}
