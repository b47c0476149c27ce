// Package ui renders the human-readable output of a pagegen run: one status
// line per page and a closing summary.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stackvity/pagegen/pkg/scaffold"
)

// StatusLabel returns the text shown in front of a page for status.
func StatusLabel(status scaffold.Status) string {
	switch status {
	case scaffold.StatusCreated:
		return "Created"
	case scaffold.StatusExists:
		return "Already exists"
	case scaffold.StatusPlanned:
		return "Would create"
	case scaffold.StatusSkipped:
		return "Skipped"
	case scaffold.StatusFailed:
		return "Failed"
	default:
		return "Pending"
	}
}

func statusStyle(status scaffold.Status) lipgloss.Style {
	switch status {
	case scaffold.StatusCreated:
		return StatusStyleCreated
	case scaffold.StatusExists:
		return StatusStyleExists
	case scaffold.StatusPlanned:
		return StatusStylePlanned
	case scaffold.StatusSkipped:
		return StatusStyleSkipped
	case scaffold.StatusFailed:
		return StatusStyleFailed
	default:
		return StatusStylePending
	}
}

// StatusLine renders "<Label>: <file>", followed by details for skipped and
// failed pages.
func StatusLine(status scaffold.Status, file, message string) string {
	line := statusStyle(status).Render(StatusLabel(status)+":") + " " + file
	if message != "" && (status == scaffold.StatusFailed || status == scaffold.StatusSkipped) {
		line += " (" + message + ")"
	}
	return line
}

// RenderSummary renders the closing line of a text-mode run.
func RenderSummary(report scaffold.Report) string {
	s := report.Summary
	parts := []string{fmt.Sprintf("%d created", s.CreatedCount), fmt.Sprintf("%d already existed", s.ExistingCount)}
	if s.DryRun {
		parts = append(parts, fmt.Sprintf("%d would be created", s.PlannedCount))
	}
	if s.SkippedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", s.SkippedCount))
	}
	if s.FailedCount > 0 {
		parts = append(parts, StatusStyleFailed.Render(fmt.Sprintf("%d failed", s.FailedCount)))
	}

	var b strings.Builder
	b.WriteString(SummaryStyle.Render("Done!"))
	b.WriteString(" ")
	b.WriteString(strings.Join(parts, ", "))
	if d := FormatDuration(time.Duration(s.DurationSeconds * float64(time.Second))); d != "" {
		b.WriteString(" in " + d)
	}
	if s.DryRun {
		b.WriteString(" (dry run, nothing written)")
	}
	return b.String()
}

// FormatDuration formats duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Millisecond {
		if d <= 0 {
			return ""
		}
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
