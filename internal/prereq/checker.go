// Copyright © 2026 The kconfedit Authors
// Preflight checks for host tools the run depends on

package prereq

import (
	"fmt"
	"os/exec"
	"strings"
)

// CheckResult reports whether one tool was found on PATH
type CheckResult struct {
	Name  string
	Found bool
	Path  string
}

// Check looks up each tool on PATH
func Check(names ...string) []CheckResult {
	results := make([]CheckResult, 0, len(names))
	for _, name := range names {
		result := CheckResult{Name: name}
		if path, err := exec.LookPath(name); err == nil {
			result.Found = true
			result.Path = path
		}
		results = append(results, result)
	}
	return results
}

// Require fails when any of the tools is missing. Checked before the run
// fetches anything so a missing editor toolchain doesn't waste a download.
func Require(names ...string) error {
	var missing []string
	for _, result := range Check(names...) {
		if !result.Found {
			missing = append(missing, result.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required tools not found on PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}
