package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thruflo/sicplings/internal/exercise"
)

// AssertStatus asserts that got equals want, reporting both by name.
func AssertStatus(t *testing.T, want, got exercise.Status, msgAndArgs ...interface{}) bool {
	t.Helper()
	return assert.Equal(t, want.String(), got.String(), msgAndArgs...)
}

// AssertStatuses asserts a sequence of statuses, index by index.
func AssertStatuses(t *testing.T, want, got []exercise.Status) {
	t.Helper()
	if !assert.Len(t, got, len(want), "status count mismatch") {
		return
	}
	for i := range want {
		assert.Equal(t, want[i].String(), got[i].String(), "status[%d] mismatch", i)
	}
}
