package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTestBuffer is subtracted from the test deadline so cleanup still
// runs before the test binary times out.
const DefaultTestBuffer = 5 * time.Second

// ContextWithTestDeadline creates a context that respects the test's
// deadline, minus DefaultTestBuffer. Without a test deadline it falls back
// to the provided duration.
//
// Usage:
//
//	ctx, cancel := testutil.ContextWithTestDeadline(t, 5*time.Second)
//	defer cancel()
func ContextWithTestDeadline(t *testing.T, fallback time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	if deadline, ok := t.Deadline(); ok {
		adjusted := deadline.Add(-DefaultTestBuffer)
		if time.Until(adjusted) > 0 && time.Until(adjusted) < fallback {
			return context.WithDeadline(context.Background(), adjusted)
		}
	}
	return context.WithTimeout(context.Background(), fallback)
}
