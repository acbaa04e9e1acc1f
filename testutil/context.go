package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds contexts used against local listeners and upstream fakes.
const DefaultTimeout = 5 * time.Second

func ContextWithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()

	return ContextWithCustomTimeout(t, DefaultTimeout)
}

// ContextWithCustomTimeout derives from t.Context and is cancelled on cleanup.
func ContextWithCustomTimeout(t *testing.T, timeout time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), timeout)
	t.Cleanup(cancel)

	return ctx, cancel
}
