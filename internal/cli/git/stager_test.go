package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("<template></template>\n"), 0o644))
}

func TestStager_Stage(t *testing.T) {
	repoDir := t.TempDir()
	repo, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)

	root := filepath.Join(repoDir, "resources", "ts", "pages")
	created := []string{
		filepath.Join(root, "dashboard", "index.vue"),
		filepath.Join(root, "integrations", "allegro", "account.vue"),
	}
	for _, p := range created {
		writePage(t, p)
	}
	writePage(t, filepath.Join(root, "untouched.vue"))

	n, err := NewStager(nil).Stage(root, created)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	status, err := wt.Status()
	require.NoError(t, err)

	assert.Equal(t, git.Added, status.File("resources/ts/pages/dashboard/index.vue").Staging)
	assert.Equal(t, git.Added, status.File("resources/ts/pages/integrations/allegro/account.vue").Staging)
	assert.Equal(t, git.Untracked, status.File("resources/ts/pages/untouched.vue").Staging)
}

func TestStager_NotRepository(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "a.vue")
	writePage(t, page)

	_, err := NewStager(nil).Stage(dir, []string{page})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestStager_NothingToStage(t *testing.T) {
	n, err := NewStager(nil).Stage(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStager_OutsideRepositorySkipped(t *testing.T) {
	repoDir := t.TempDir()
	_, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)

	outside := filepath.Join(t.TempDir(), "elsewhere.vue")
	writePage(t, outside)

	n, err := NewStager(nil).Stage(repoDir, []string{outside})
	require.NoError(t, err)
	assert.Zero(t, n)
}
