package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/stackvity/pagegen/internal/cli/git"
	"github.com/stackvity/pagegen/internal/cli/hooks"
	"github.com/stackvity/pagegen/internal/cli/lock"
	"github.com/stackvity/pagegen/internal/cli/ui"
	"github.com/stackvity/pagegen/pkg/scaffold"
)

// ErrPagesFailed is returned by Run when at least one page could not be generated.
var ErrPagesFailed = errors.New("some pages could not be generated")

// Run orchestrates a generation run after configuration loading: it guards the
// root with a lock, wires the CLI hooks, calls the library, prints the final
// summary or JSON report to stdout and optionally stages the created pages.
func Run(ctx context.Context, opts scaffold.Options, logger *slog.Logger, stdout io.Writer) error {
	logger = logger.With(slog.String("component", "cli"))

	if opts.LockEnabled && !opts.DryRun {
		l := lock.New(opts.Root)
		if err := l.Acquire(); err != nil {
			logger.Error("Cannot start run", slog.Any("error", err))
			return err
		}
		defer func() {
			if err := l.Unlock(); err != nil {
				logger.Warn("Failed to release run lock", slog.String("path", l.Path()), slog.Any("error", err))
			}
		}()
		logger.Debug("Acquired run lock", slog.String("path", l.Path()))
	}

	textOutput := opts.OutputFormat != scaffold.OutputFormatJSON
	var bar hooks.ProgressBar
	if opts.Progress && textOutput && !opts.Verbose && isTerminal(os.Stderr) {
		bar = hooks.NewProgressBar(os.Stderr, len(opts.Pages))
	}
	opts.EventHooks = hooks.NewCLIHooks(logger, stdout, opts.Root, opts.Verbose, textOutput, bar)

	report, runErr := scaffold.Generate(ctx, opts)
	if errors.Is(runErr, scaffold.ErrConfigValidation) {
		return runErr
	}

	if textOutput {
		_, _ = fmt.Fprintln(stdout, ui.RenderSummary(report))
	} else {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			logger.Error("Failed to write JSON report", slog.Any("error", err))
			if runErr == nil {
				runErr = fmt.Errorf("failed to write JSON report: %w", err)
			}
		}
	}

	if opts.GitAdd && !opts.DryRun {
		if err := stageCreated(opts, report, logger); err != nil && runErr == nil {
			runErr = err
		}
	}

	if runErr != nil {
		return runErr
	}
	if report.Summary.FailedCount > 0 {
		return fmt.Errorf("%w: %d of %d failed", ErrPagesFailed, report.Summary.FailedCount, report.Summary.TotalPages)
	}
	return nil
}

func stageCreated(opts scaffold.Options, report scaffold.Report, logger *slog.Logger) error {
	created := report.Created()
	if len(created) == 0 {
		return nil
	}
	files := make([]string, 0, len(created))
	for _, rel := range created {
		files = append(files, filepath.Join(opts.Root, filepath.FromSlash(rel)))
	}
	n, err := git.NewStager(opts.Logger).Stage(opts.Root, files)
	if errors.Is(err, git.ErrNotRepository) {
		logger.Warn("Skipping git add", slog.Any("reason", err))
		return nil
	}
	if err != nil {
		logger.Error("Failed to stage created pages", slog.Any("error", err))
		return err
	}
	logger.Info("Staged created pages", slog.Int("count", n))
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
