package testutil

import (
	"testing"
	"time"
)

const pollInterval = 5 * time.Millisecond

// Eventually polls condition until it holds or timeout elapses.
func Eventually(t *testing.T, timeout time.Duration, condition func() bool) {
	t.Helper()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	deadline := time.After(timeout)

	for !condition() {
		select {
		case <-ticker.C:
		case <-deadline:
			t.Fatalf("condition not met within %s", timeout)
		}
	}
}

// SkipIfShort skips tests that bind real listeners.
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping listener test in short mode")
	}
}
