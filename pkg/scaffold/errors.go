package scaffold

import (
	"errors"

	"github.com/stackvity/pagegen/pkg/scaffold/manifest"
)

// These errors represent the categories of failures Generate can report.
// Callers can check against them using errors.Is; per-page failures are
// recorded in Report.Pages and only returned directly when OnErrorMode is "stop".
var (
	// ErrConfigValidation indicates that the provided Options failed validation.
	// It is always returned directly as a fatal error by Generate.
	ErrConfigValidation = errors.New("invalid configuration options provided")

	// ErrInvalidPagePath indicates a page entry that is empty, absolute, or
	// escapes the root directory. It is the same error the manifest package
	// reports, so errors.Is works regardless of where the entry was rejected.
	ErrInvalidPagePath = manifest.ErrInvalidPage

	// ErrMkdirFailed indicates a failure to create a page's parent directory.
	ErrMkdirFailed = errors.New("failed to create page directory")

	// ErrStatFailed indicates the existence check of a page failed for a reason
	// other than the file not being there (permissions, broken parent, ...).
	ErrStatFailed = errors.New("failed to check page existence")

	// ErrNotRegularFile indicates something other than a regular file already
	// occupies a page path, typically a directory.
	ErrNotRegularFile = errors.New("page path is occupied by a non-regular file")

	// ErrTemplateExecution indicates rendering the placeholder template failed.
	ErrTemplateExecution = errors.New("template execution failed")

	// ErrEncodeFailed indicates the rendered placeholder could not be represented
	// in the configured output encoding.
	ErrEncodeFailed = errors.New("failed to encode placeholder")

	// ErrWriteFailed indicates a failure to write the placeholder file.
	ErrWriteFailed = errors.New("failed to write page file")
)
