package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateDummyFile creates a file with the given content at path, ensuring
// parent directories exist. It uses require assertions for test setup.
func CreateDummyFile(t *testing.T, path string, content string) {
	t.Helper()
	fullPath := filepath.Clean(path)
	dir := filepath.Dir(fullPath)
	err := os.MkdirAll(dir, 0755)
	require.NoError(t, err, "Failed to create directory %s for dummy file", dir)
	err = os.WriteFile(fullPath, []byte(content), 0644)
	require.NoError(t, err, "Failed to write dummy file %s", fullPath)
}

// CreateDummyDir ensures a directory exists at the given path, creating parents if needed.
func CreateDummyDir(t *testing.T, path string) {
	t.Helper()
	fullPath := filepath.Clean(path)
	err := os.MkdirAll(fullPath, 0755)
	require.NoError(t, err, "Failed to create dummy directory %s", fullPath)
}

// ReadFile returns the content of path as a string, failing the test if it cannot be read.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err, "Failed to read %s", path)
	return string(data)
}

// DiscardHandler returns a slog handler that drops every record.
func DiscardHandler() slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1})
}
