// Package git stages generated pages in the Git repository enclosing the
// pages root, using go-git so no git binary is required.
package git

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository indicates the pages root is not inside a Git working tree.
var ErrNotRepository = errors.New("not inside a git repository")

// Stager adds files to the index of the repository enclosing a directory.
type Stager struct {
	logger *slog.Logger
}

// NewStager creates a new Stager.
func NewStager(loggerHandler slog.Handler) *Stager {
	if loggerHandler == nil {
		loggerHandler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(loggerHandler).With(slog.String("component", "gitStager"), slog.String("backend", "go-git"))
	return &Stager{logger: logger}
}

// Stage adds files (absolute paths) to the index of the repository found at
// or above dir. It returns the number of files staged.
func (s *Stager) Stage(dir string, files []string) (int, error) {
	if len(files) == 0 {
		return 0, nil
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to get absolute path for '%s': %w", dir, err)
	}

	repo, err := git.PlainOpenWithOptions(absDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return 0, fmt.Errorf("%w: '%s'", ErrNotRepository, absDir)
		}
		return 0, fmt.Errorf("failed to open repository at '%s': %w", absDir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return 0, fmt.Errorf("failed to open worktree: %w", err)
	}
	base := resolve(wt.Filesystem.Root())

	staged := 0
	for _, f := range files {
		rel, err := filepath.Rel(base, resolve(f))
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			s.logger.Warn("File is outside the repository, not staging", slog.String("path", f))
			continue
		}
		if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
			return staged, fmt.Errorf("failed to stage '%s': %w", rel, err)
		}
		staged++
		s.logger.Debug("Staged page", slog.String("path", rel))
	}
	return staged, nil
}

// resolve follows symlinks in the directory part of p so paths under a
// symlinked temp dir compare equal to the worktree root.
func resolve(p string) string {
	dir, file := filepath.Split(p)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return filepath.Join(resolved, file)
	}
	return filepath.Clean(p)
}
