package hooks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/stackvity/pagegen/internal/cli/ui"
	"github.com/stackvity/pagegen/pkg/scaffold"
)

// ProgressBar defines the interface needed to interact with the progress bar.
type ProgressBar interface {
	Add(num int) error
	Describe(description string) error
	Close() error
}

// CLIHooks implements the scaffold.Hooks interface, bridging library events
// to the CLI output: status lines, verbose logging, or a progress bar.
type CLIHooks struct {
	logger         *slog.Logger
	out            io.Writer
	root           string
	verboseEnabled bool
	statusLines    bool        // false in JSON mode, where stdout carries the report
	progressBar    ProgressBar // nil unless a bar is drawn
	mu             sync.Mutex  // Serializes writes to out and the progress bar
}

// NewCLIHooks creates a new CLIHooks instance. Status lines are written to out
// with page paths resolved against root. Pass nil for progBar to print one line
// per page instead of drawing a bar.
func NewCLIHooks(logger *slog.Logger, out io.Writer, root string, verboseEnabled, statusLines bool, progBar ProgressBar) *CLIHooks {
	return &CLIHooks{
		logger:         logger,
		out:            out,
		root:           root,
		verboseEnabled: verboseEnabled,
		statusLines:    statusLines,
		progressBar:    progBar,
	}
}

// OnPageDiscovered handles the event when a page entry is about to be processed.
func (h *CLIHooks) OnPageDiscovered(path string) error {
	if h.verboseEnabled {
		h.logger.Debug("Page discovered", "path", path)
	}
	return nil // Library ignores hook errors
}

// OnPageStatusUpdate handles a page reaching its final status.
func (h *CLIHooks) OnPageStatusUpdate(path string, status scaffold.Status, message string, duration time.Duration) error {
	if h.verboseEnabled {
		h.logStatus(path, status, message, duration)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.progressBar != nil {
		if status.IsFinal() {
			_ = h.progressBar.Add(1)
			_ = h.progressBar.Describe(path)
		}
		if status == scaffold.StatusFailed && !h.verboseEnabled {
			h.logger.Error("Page generation failed", "path", path, "error", message)
		}
		return nil
	}

	if h.statusLines {
		_, _ = fmt.Fprintln(h.out, ui.StatusLine(status, h.fullPath(path), message))
		return nil
	}

	// JSON mode: stdout is reserved for the report, so failures go to the log.
	if status == scaffold.StatusFailed && !h.verboseEnabled {
		h.logger.Error("Page generation failed", "path", path, "error", message)
	}
	return nil
}

// OnRunComplete finalizes the progress bar if one was used.
func (h *CLIHooks) OnRunComplete(report scaffold.Report) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.progressBar != nil {
		_ = h.progressBar.Close()
	}
	return nil
}

func (h *CLIHooks) logStatus(path string, status scaffold.Status, message string, duration time.Duration) {
	logLevel := slog.LevelDebug
	logMsg := "Page status updated"
	attrs := []any{
		slog.String("path", path),
		slog.String("status", string(status)),
	}
	if duration > 0 {
		attrs = append(attrs, slog.Duration("duration", duration))
	}
	if message != "" {
		logKey := "message"
		if status == scaffold.StatusFailed {
			logKey = "error"
		}
		attrs = append(attrs, slog.String(logKey, message))
	}

	switch status {
	case scaffold.StatusCreated, scaffold.StatusPlanned, scaffold.StatusSkipped:
		logLevel = slog.LevelInfo
	case scaffold.StatusFailed:
		logLevel = slog.LevelError
		logMsg = "Page generation failed"
	}
	h.logger.Log(context.Background(), logLevel, logMsg, attrs...)
}

func (h *CLIHooks) fullPath(path string) string {
	if h.root == "" {
		return path
	}
	return filepath.Join(h.root, filepath.FromSlash(path))
}
