package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tpl "github.com/stackvity/pagegen/pkg/scaffold/template"
	"github.com/stackvity/pagegen/pkg/util"
)

// processPage handles a single page entry. The returned error is non-nil only
// when the page failed; the result always carries the final status.
func (g *generator) processPage(rel string) (PageResult, error) {
	started := time.Now()
	result := PageResult{Path: rel, FullPath: g.fullPath(rel), Status: StatusPending}
	logger := g.logger.With(slog.String("path", rel))

	if hookErr := g.hooks.OnPageDiscovered(rel); hookErr != nil {
		logger.Warn("Error reported by OnPageDiscovered hook", slog.String("hookError", hookErr.Error()))
	}

	finish := func(status Status, message string, err error) (PageResult, error) {
		result.Status = status
		result.DurationMs = time.Since(started).Milliseconds()
		if err != nil {
			result.Error = err.Error()
			message = err.Error()
			logger.Error("Page generation failed", slog.Any("error", err))
		} else {
			logger.Debug("Page processed", slog.String("status", string(status)))
		}
		if hookErr := g.hooks.OnPageStatusUpdate(rel, status, message, time.Since(started)); hookErr != nil {
			logger.Warn("Error reported by OnPageStatusUpdate hook", slog.String("hookError", hookErr.Error()))
		}
		return result, err
	}

	if pattern, ignored := util.MatchesAny(g.opts.IgnorePatterns, rel); ignored {
		result.Reason = SkipReasonIgnored
		return finish(StatusSkipped, fmt.Sprintf("matched pattern %s", pattern), nil)
	}

	// Stat follows symlinks: a link to an existing file counts as existing.
	info, err := os.Stat(result.FullPath)
	switch {
	case err == nil && info.Mode().IsRegular():
		return finish(StatusExists, "", nil)
	case err == nil:
		return finish(StatusFailed, "", fmt.Errorf("%w: '%s' is a %s", ErrNotRegularFile, result.FullPath, describeMode(info.Mode())))
	case !errors.Is(err, fs.ErrNotExist):
		return finish(StatusFailed, "", fmt.Errorf("%w: %w", ErrStatFailed, err))
	}

	result.Language = g.opts.LanguageDetector.Detect(rel)
	content, err := g.render(rel, result.Language)
	if err != nil {
		return finish(StatusFailed, "", err)
	}
	result.Bytes = len(content)

	if g.opts.DryRun {
		return finish(StatusPlanned, "", nil)
	}

	if err := os.MkdirAll(filepath.Dir(result.FullPath), g.opts.DirPerm); err != nil {
		return finish(StatusFailed, "", fmt.Errorf("%w: %w", ErrMkdirFailed, err))
	}

	created, err := writeExclusive(result.FullPath, content, g.opts.FilePerm)
	if err != nil {
		return finish(StatusFailed, "", err)
	}
	if !created {
		// Someone else created the file between the existence check and the write.
		result.Bytes = 0
		return finish(StatusExists, "", nil)
	}
	return finish(StatusCreated, "", nil)
}

// render executes the page's template and encodes the result.
func (g *generator) render(rel, lang string) ([]byte, error) {
	var buf bytes.Buffer
	data := tpl.NewPageData(rel, lang, g.opts.Message)
	if err := g.opts.TemplateExecutor.Execute(&buf, g.opts.Templates.Lookup(lang), data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateExecution, err)
	}
	encoded, err := g.opts.Encoder.Encode(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	return encoded, nil
}

// writeExclusive creates filePath with content, failing if it already exists.
// It reports created=false without an error when the file already exists.
func writeExclusive(filePath string, content []byte, perm os.FileMode) (created bool, err error) {
	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(filePath) // the file is ours; don't leave a truncated stub behind
		return false, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(filePath)
		return false, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return true, nil
}

func describeMode(m fs.FileMode) string {
	switch {
	case m.IsDir():
		return "directory"
	case m&fs.ModeNamedPipe != 0:
		return "named pipe"
	case m&fs.ModeSocket != 0:
		return "socket"
	case m&fs.ModeDevice != 0:
		return "device"
	default:
		return "non-regular file"
	}
}
