// Package testutil provides shared helpers for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/ctxlog/ctx/internal/store"
)

// OpenStore creates a store backed by a fresh temp-dir database and
// closes it when the test finishes.
func OpenStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.Open(StorePath(t))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	return st
}

// StorePath returns a database path inside the test's temp dir.
func StorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "ctx.sqlite")
}

// Float64 returns a pointer to v, for nullable duration fields.
func Float64(v float64) *float64 {
	return &v
}
