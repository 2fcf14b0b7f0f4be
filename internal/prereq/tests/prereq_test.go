// Copyright © 2026 The kconfedit Authors
// Preflight check tests

package prereq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kconfedit/kconfedit/internal/prereq"
)

func TestCheck_Found(t *testing.T) {
	results := prereq.Check("sh")
	require.Len(t, results, 1)
	assert.True(t, results[0].Found)
	assert.NotEmpty(t, results[0].Path)
}

func TestCheck_NotFound(t *testing.T) {
	results := prereq.Check("definitely-not-a-real-tool-kc")
	require.Len(t, results, 1)
	assert.False(t, results[0].Found)
}

func TestRequire(t *testing.T) {
	require.NoError(t, prereq.Require("sh"))

	err := prereq.Require("sh", "definitely-not-a-real-tool-kc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-real-tool-kc")
}
