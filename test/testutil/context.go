package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a single test's calls into the stores.
const DefaultTimeout = 10 * time.Second

// Context returns a context that expires after DefaultTimeout and is
// cancelled when the test finishes.
func Context(t *testing.T) context.Context {
	t.Helper()
	return ContextWithTimeout(t, DefaultTimeout)
}

// ContextWithTimeout is Context with a custom deadline.
func ContextWithTimeout(t *testing.T, d time.Duration) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	t.Cleanup(cancel)
	return ctx
}
