package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackvity/pagegen/internal/cli/lock"
	"github.com/stackvity/pagegen/internal/testutil"
	"github.com/stackvity/pagegen/pkg/scaffold"
)

func newRunOptions(root string, pages ...string) scaffold.Options {
	return scaffold.Options{
		Root:         root,
		Pages:        pages,
		OutputFormat: scaffold.OutputFormatText,
		LockEnabled:  true,
		Logger:       testutil.DiscardHandler(),
	}
}

func discardLogger() *slog.Logger { return slog.New(testutil.DiscardHandler()) }

func TestRun_TextOutputAndIdempotence(t *testing.T) {
	root := filepath.Join(t.TempDir(), "pages")
	opts := newRunOptions(root, "dashboard/index.vue", "integrations/allegro/account.vue")

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), opts, discardLogger(), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Created: "+filepath.Join(root, "dashboard", "index.vue"))
	assert.Contains(t, lines[1], "Created: "+filepath.Join(root, "integrations", "allegro", "account.vue"))
	assert.Contains(t, lines[2], "Done!")
	assert.Contains(t, lines[2], "2 created, 0 already existed")
	assert.FileExists(t, filepath.Join(root, "integrations", "allegro", "account.vue"))

	out.Reset()
	require.NoError(t, Run(context.Background(), opts, discardLogger(), &out))
	lines = strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Already exists: ")
	assert.Contains(t, lines[1], "Already exists: ")
	assert.Contains(t, lines[2], "0 created, 2 already existed")
}

func TestRun_JSONOutput(t *testing.T) {
	root := filepath.Join(t.TempDir(), "pages")
	opts := newRunOptions(root, "a.vue", "b/c.md")
	opts.OutputFormat = scaffold.OutputFormatJSON

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), opts, discardLogger(), &out))

	var report scaffold.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report), out.String())
	assert.Equal(t, 2, report.Summary.CreatedCount)
	assert.Equal(t, scaffold.ReportSchemaVersion, report.Summary.SchemaVersion)
	require.Len(t, report.Pages, 2)
	assert.Equal(t, "b/c.md", report.Pages[1].Path)
	assert.Equal(t, scaffold.StatusCreated, report.Pages[1].Status)
}

func TestRun_FailedPagesReturnError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "pages")
	testutil.CreateDummyDir(t, filepath.Join(root, "logs", "system.vue"))
	opts := newRunOptions(root, "logs/system.vue", "logs/user-activity.vue")

	var out bytes.Buffer
	err := Run(context.Background(), opts, discardLogger(), &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPagesFailed)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out.String(), "Failed: ")
	assert.Contains(t, out.String(), "1 failed")
	assert.FileExists(t, filepath.Join(root, "logs", "user-activity.vue"))
}

func TestRun_InvalidOptions(t *testing.T) {
	opts := newRunOptions(filepath.Join(t.TempDir(), "pages"))
	opts.LockEnabled = false

	var out bytes.Buffer
	err := Run(context.Background(), opts, discardLogger(), &out)
	assert.ErrorIs(t, err, scaffold.ErrConfigValidation)
	assert.Empty(t, out.String())
}

func TestRun_LockHeld(t *testing.T) {
	root := filepath.Join(t.TempDir(), "pages")
	held := lock.New(root)
	require.NoError(t, held.Acquire())
	defer func() { _ = held.Unlock() }()

	var out bytes.Buffer
	err := Run(context.Background(), newRunOptions(root, "a.vue"), discardLogger(), &out)
	assert.ErrorIs(t, err, lock.ErrLocked)
	assert.NoFileExists(t, filepath.Join(root, "a.vue"))

	// Dry runs write nothing and do not need the lock.
	opts := newRunOptions(root, "a.vue")
	opts.DryRun = true
	out.Reset()
	require.NoError(t, Run(context.Background(), opts, discardLogger(), &out))
	assert.Contains(t, out.String(), "Would create: ")
}

func TestRun_GitAdd(t *testing.T) {
	repoDir := t.TempDir()
	repo, err := gogit.PlainInit(repoDir, false)
	require.NoError(t, err)

	root := filepath.Join(repoDir, "resources", "ts", "pages")
	testutil.CreateDummyFile(t, filepath.Join(root, "existing.vue"), "keep")
	opts := newRunOptions(root, "existing.vue", "orders/index.vue")
	opts.GitAdd = true

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), opts, discardLogger(), &out))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	status, err := wt.Status()
	require.NoError(t, err)
	assert.Equal(t, gogit.Added, status.File("resources/ts/pages/orders/index.vue").Staging)
	assert.Equal(t, gogit.Untracked, status.File("resources/ts/pages/existing.vue").Staging)
}

func TestRun_GitAddOutsideRepository(t *testing.T) {
	opts := newRunOptions(filepath.Join(t.TempDir(), "pages"), "a.vue")
	opts.GitAdd = true

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), opts, discardLogger(), &out))
}
