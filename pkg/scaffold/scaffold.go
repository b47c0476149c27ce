// Package scaffold generates placeholder page files for a front-end
// application: for every relative page path it makes sure the parent
// directory exists and writes a stub file, never touching files that are
// already there.
package scaffold

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/stackvity/pagegen/pkg/scaffold/encoding"
	"github.com/stackvity/pagegen/pkg/scaffold/language"
	"github.com/stackvity/pagegen/pkg/scaffold/manifest"
	tpl "github.com/stackvity/pagegen/pkg/scaffold/template"
)

// Generate is the main entry point of the library. It processes opts.Pages in
// order and returns a report with one entry per page.
//
// Per-page failures are recorded in the report. The returned error is non-nil
// only for invalid options, cancellation, or the first failure when
// opts.OnErrorMode is OnErrorStop; the partial report is returned alongside.
func Generate(ctx context.Context, opts Options) (Report, error) {
	if err := ValidateOptions(&opts); err != nil {
		return Report{}, err
	}
	logger := slog.New(opts.Logger).With(slog.String("component", "scaffold"))
	return newGenerator(&opts, logger).run(ctx)
}

// ValidateOptions checks opts and fills in defaults for every optional
// dependency. Errors wrap ErrConfigValidation.
func ValidateOptions(opts *Options) error {
	if opts.Logger == nil {
		return fmt.Errorf("%w: Logger implementation cannot be nil", ErrConfigValidation)
	}
	logger := slog.New(opts.Logger).With(slog.String("component", "scaffold"))

	if opts.Root == "" {
		err := fmt.Errorf("%w: root directory cannot be empty", ErrConfigValidation)
		logger.Error(err.Error())
		return err
	}
	if info, err := os.Stat(opts.Root); err == nil && !info.IsDir() {
		err := fmt.Errorf("%w: root '%s' exists but is not a directory", ErrConfigValidation, opts.Root)
		logger.Error(err.Error())
		return err
	}

	switch opts.OnErrorMode {
	case "":
		opts.OnErrorMode = DefaultOnErrorMode
	case OnErrorContinue, OnErrorStop:
	default:
		err := fmt.Errorf("%w: invalid onError mode '%s'", ErrConfigValidation, opts.OnErrorMode)
		logger.Error(err.Error())
		return err
	}

	if len(opts.Pages) == 0 {
		err := fmt.Errorf("%w: no pages to generate", ErrConfigValidation)
		logger.Error(err.Error())
		return err
	}
	pages, duplicates, err := manifest.Normalize(opts.Pages)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrConfigValidation, err)
		logger.Error(err.Error())
		return err
	}
	if len(duplicates) > 0 {
		logger.Warn("Duplicate page entries dropped", slog.Any("pages", duplicates))
	}
	opts.Pages = pages

	if opts.Message == "" {
		opts.Message = DefaultMessage
	}
	if opts.DirPerm == 0 {
		opts.DirPerm = DefaultDirPerm
	}
	if opts.FilePerm == 0 {
		opts.FilePerm = DefaultFilePerm
	}

	// --- Inject default dependencies ---
	if opts.EventHooks == nil {
		opts.EventHooks = &NoOpHooks{}
	}
	if opts.Templates == nil {
		set, err := tpl.LoadDefaultSet()
		if err != nil {
			return fmt.Errorf("critical internal error: failed to load default templates: %w", err)
		}
		opts.Templates = set
	}
	if opts.TemplateExecutor == nil {
		opts.TemplateExecutor = tpl.NewGoTemplateExecutor()
	}
	if opts.LanguageDetector == nil {
		opts.LanguageDetector = language.NewGoEnryDetector(opts.Templates.Languages(), opts.LanguageMap)
	}
	if opts.Encoder == nil {
		enc, err := encoding.NewEncoder(opts.Encoding)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrConfigValidation, err)
			logger.Error(err.Error(), slog.String("key", "encoding"))
			return err
		}
		opts.Encoder = enc
	}
	opts.Encoding = opts.Encoder.Name()
	return nil
}

// generator carries the state of a single Generate run.
type generator struct {
	opts   *Options
	logger *slog.Logger
	hooks  Hooks
}

func newGenerator(opts *Options, logger *slog.Logger) *generator {
	return &generator{opts: opts, logger: logger, hooks: opts.EventHooks}
}

func (g *generator) run(ctx context.Context) (Report, error) {
	startTime := time.Now()
	g.logger.Info("Starting page generation",
		slog.String("root", g.opts.Root),
		slog.Int("pages", len(g.opts.Pages)),
		slog.Bool("dryRun", g.opts.DryRun),
	)

	report := Report{
		Summary: ReportSummary{
			Root:           g.opts.Root,
			ManifestSource: g.opts.ManifestSource,
			ProfileUsed:    g.opts.ProfileName,
			ConfigFilePath: g.opts.ConfigFilePath,
			DryRun:         g.opts.DryRun,
			Encoding:       g.opts.Encoding,
			SchemaVersion:  ReportSchemaVersion,
		},
		Pages: make([]PageResult, 0, len(g.opts.Pages)),
	}

	var fatalErr error
	for _, rel := range g.opts.Pages {
		if err := ctx.Err(); err != nil {
			g.logger.Info("Page generation cancelled", slog.String("reason", err.Error()))
			fatalErr = err
			break
		}
		result, err := g.processPage(rel)
		report.Pages = append(report.Pages, result)
		if err != nil && g.opts.OnErrorMode == OnErrorStop {
			fatalErr = fmt.Errorf("page '%s': %w", rel, err)
			g.logger.Error("Stopping after page failure (onError=stop)", slog.String("path", rel), slog.Any("error", err))
			break
		}
	}

	report.Summary.tally(report.Pages)
	report.Summary.FatalErrorOccurred = fatalErr != nil
	report.Summary.Timestamp = time.Now()
	report.Summary.DurationSeconds = time.Since(startTime).Seconds()

	if hookErr := g.hooks.OnRunComplete(report); hookErr != nil {
		g.logger.Warn("Error reported by OnRunComplete hook", slog.String("hookError", hookErr.Error()))
	}
	g.logger.Info("Page generation finished",
		slog.Int("created", report.Summary.CreatedCount),
		slog.Int("existing", report.Summary.ExistingCount),
		slog.Int("failed", report.Summary.FailedCount),
	)
	return report, fatalErr
}

// fullPath resolves a relative page path against the root.
func (g *generator) fullPath(rel string) string {
	return filepath.Join(g.opts.Root, filepath.FromSlash(rel))
}
