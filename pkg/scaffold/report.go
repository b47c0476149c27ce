package scaffold

import "time"

// Report summarizes the result of a single Generate run.
type Report struct {
	Summary ReportSummary `json:"summary"`
	Pages   []PageResult  `json:"pages"`
}

// ReportSummary contains aggregated statistics for a Generate run.
type ReportSummary struct {
	Root               string    `json:"root"`
	ManifestSource     string    `json:"manifestSource,omitempty"`
	ProfileUsed        string    `json:"profileUsed,omitempty"`
	ConfigFilePath     string    `json:"configFilePath,omitempty"`
	DryRun             bool      `json:"dryRun"`
	Encoding           string    `json:"encoding"`
	TotalPages         int       `json:"totalPages"`
	CreatedCount       int       `json:"createdCount"`
	ExistingCount      int       `json:"existingCount"`
	PlannedCount       int       `json:"plannedCount"`
	SkippedCount       int       `json:"skippedCount"`
	FailedCount        int       `json:"failedCount"`
	FatalErrorOccurred bool      `json:"fatalError"`
	DurationSeconds    float64   `json:"durationSeconds"`
	Timestamp          time.Time `json:"timestamp"`
	SchemaVersion      string    `json:"schemaVersion"`
}

// PageResult details the outcome for one entry of the page list, in input order.
type PageResult struct {
	Path       string `json:"path"`
	FullPath   string `json:"fullPath"`
	Status     Status `json:"status"`
	Language   string `json:"language,omitempty"`
	Bytes      int    `json:"bytes,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

// Created returns the relative paths of the pages written during the run.
func (r Report) Created() []string {
	var out []string
	for _, p := range r.Pages {
		if p.Status == StatusCreated {
			out = append(out, p.Path)
		}
	}
	return out
}

// tally recomputes the per-status counters from the page results.
func (s *ReportSummary) tally(pages []PageResult) {
	s.TotalPages = len(pages)
	s.CreatedCount, s.ExistingCount, s.PlannedCount, s.SkippedCount, s.FailedCount = 0, 0, 0, 0, 0
	for _, p := range pages {
		switch p.Status {
		case StatusCreated:
			s.CreatedCount++
		case StatusExists:
			s.ExistingCount++
		case StatusPlanned:
			s.PlannedCount++
		case StatusSkipped:
			s.SkippedCount++
		case StatusFailed:
			s.FailedCount++
		}
	}
}
