package test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertEqual(t *testing.T, observed interface{}, expected interface{}) {
	t.Helper()
	require.Equal(t, expected, observed)
}

// Unlike "AssertEqual" this keeps going after a mismatch so that a table of
// cases reports every failure at once
func ExpectEqual(t *testing.T, observed interface{}, expected interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()
	return assert.Equal(t, expected, observed, msgAndArgs...)
}
