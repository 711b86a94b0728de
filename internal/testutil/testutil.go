// Package testutil provides testing utilities for rpcalc tests.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// TempFile creates a temporary file with the given content and extension.
// The file is automatically cleaned up when the test finishes.
func TempFile(t *testing.T, content, ext string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test"+ext)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// TempPath returns a path for a file that does not exist yet inside a
// per-test temporary directory.
func TempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}

// HistoryCSV returns a small history file as written by the exporter.
func HistoryCSV() string {
	return `equation,result
5.0000 + 3.0000,8
(2.0000)^10.0000,1024
"1,234.0000 * 2.0000",2468
SQRT(2.0000),1.4142135623730951`
}

// AssertFloat64Near checks if two float64 values are approximately equal.
func AssertFloat64Near(t *testing.T, expected, actual, tolerance float64) {
	t.Helper()
	if math.IsNaN(actual) || actual < expected-tolerance || actual > expected+tolerance {
		t.Errorf("expected %.6f, got %.6f (tolerance: %.6f)", expected, actual, tolerance)
	}
}

// Feed is implemented by anything that consumes calculator tokens.
type Feed interface {
	Cmd(token string) bool
}

// Press sends each token in order and fails the test if any is rejected.
func Press(t *testing.T, f Feed, tokens ...string) {
	t.Helper()
	for _, tok := range tokens {
		if !f.Cmd(tok) {
			t.Fatalf("token %q was rejected", tok)
		}
	}
}
