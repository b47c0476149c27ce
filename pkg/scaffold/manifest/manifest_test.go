package manifest_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackvity/pagegen/pkg/scaffold/manifest"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	m, err := manifest.Default()
	require.NoError(t, err)

	assert.Equal(t, manifest.SourceDefault, m.Source)
	assert.Equal(t, 1, m.Version)
	assert.Len(t, m.Pages, 91)
	assert.Equal(t, "dashboard/index.vue", m.Pages[0])
	assert.Contains(t, m.Pages, "integrations/allegro/account.vue")
	assert.Contains(t, m.Pages, "integrations/baselinker/status-sync.vue")
	assert.Equal(t, "help/contact.vue", m.Pages[len(m.Pages)-1])

	normalized, dups, err := manifest.Normalize(m.Pages)
	require.NoError(t, err)
	assert.Empty(t, dups)
	assert.Equal(t, m.Pages, normalized)
}

func TestLoadFile_Formats(t *testing.T) {
	dir := t.TempDir()
	want := []string{"orders/index.vue", "orders/view.vue"}

	tests := []struct {
		name    string
		content string
	}{
		{"pages.yaml", "version: 1\npages:\n  - orders/index.vue\n  - orders/view.vue\n"},
		{"pages.yml", "pages: [orders/index.vue, orders/view.vue]\n"},
		{"pages.toml", "version = 1\npages = [\"orders/index.vue\", \"orders/view.vue\"]\n"},
		{"pages.json", `{"version": 1, "description": "orders", "pages": ["orders/index.vue", "orders/view.vue"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, dir, tt.name, tt.content)
			m, err := manifest.LoadFile(p)
			require.NoError(t, err)
			assert.Equal(t, want, m.Pages)
			assert.Equal(t, p, m.Source)
		})
	}
}

func TestLoadFile_SchemaViolations(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		errText string
	}{
		{"missing pages", "a.yaml", "version: 1\n", "pages"},
		{"empty pages", "b.yaml", "pages: []\n", "pages"},
		{"wrong version", "c.json", `{"version": 2, "pages": ["a.vue"]}`, "version"},
		{"unknown key", "d.toml", "pagez = [\"a.vue\"]\npages = [\"a.vue\"]\n", "pagez"},
		{"non-string page", "e.yaml", "pages:\n  - 12\n", "pages.0"},
		{"empty document", "f.yaml", "", "object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, dir, tt.file, tt.content)
			_, err := manifest.LoadFile(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, manifest.ErrInvalidManifest)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := manifest.LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	p := writeFile(t, dir, "pages.txt", "a.vue\n")
	_, err = manifest.LoadFile(p)
	assert.ErrorIs(t, err, manifest.ErrUnsupportedFormat)

	p = writeFile(t, dir, "broken.yaml", "pages: [a.vue\n")
	_, err = manifest.LoadFile(p)
	assert.ErrorIs(t, err, manifest.ErrInvalidManifest)

	p = writeFile(t, dir, "broken.toml", "pages = [\n")
	_, err = manifest.LoadFile(p)
	assert.ErrorIs(t, err, manifest.ErrInvalidManifest)
}

func TestRouteToPage(t *testing.T) {
	tests := []struct {
		route string
		want  string
		ok    bool
	}{
		{"/dashboard", "dashboard/index.vue", true},
		{"/dashboard/stock-summary", "dashboard/stock-summary.vue", true},
		{"/documents/add/", "documents/add.vue", true},
		{"/products/edit/:id", "products/edit.vue", true},
		{"/integrations/allegro/account", "integrations/allegro/account.vue", true},
		{"/", "", false},
		{"/:id", "", false},
	}
	for _, tt := range tests {
		got, ok := manifest.RouteToPage(tt.route, ".vue")
		assert.Equal(t, tt.ok, ok, tt.route)
		assert.Equal(t, tt.want, got, tt.route)
	}
}

const navSource = `import type { VerticalNavItems } from '@/@layouts/types'

const verticalNavItems: VerticalNavItems = [
  { heading: 'Dashboard', action: 'view', subject: 'dashboard' },
  {
    title: 'Pulpit',
    to: { path: '/dashboard' },
    children: [
      { title: 'Statystyki', to: { path: '/dashboard/stats' } },
    ],
  },
  {
    title: 'Produkty',
    to: { path: "/products" },
    children: [
      { title: 'Lista produktów', to: { path: '/products' } },
      { title: 'Edycja produktu', to: { path: '/products/edit/:id' } },
    ],
  },
]

export default verticalNavItems
`

func TestFromNavigation(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "index.ts", navSource)

	m, err := manifest.FromNavigation(p, "")
	require.NoError(t, err)
	assert.Equal(t, p, m.Source)
	assert.Equal(t, []string{
		"dashboard/index.vue",
		"dashboard/stats.vue",
		"products/index.vue",
		"products/index.vue",
		"products/edit.vue",
	}, m.Pages)

	normalized, dups, err := manifest.Normalize(m.Pages)
	require.NoError(t, err)
	assert.Equal(t, []string{"products/index.vue"}, dups)
	assert.Len(t, normalized, 4)

	m, err = manifest.FromNavigation(p, "tsx")
	require.NoError(t, err)
	assert.Equal(t, "dashboard/index.tsx", m.Pages[0])
}

func TestFromNavigation_NoRoutes(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "empty.ts", "export default []\n")

	_, err := manifest.FromNavigation(p, "")
	assert.ErrorIs(t, err, manifest.ErrInvalidManifest)

	_, err = manifest.FromNavigation(filepath.Join(dir, "missing.ts"), "")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalize(t *testing.T) {
	got, dups, err := manifest.Normalize([]string{
		" users/index.vue ",
		`settings\backup.vue`,
		"logs/./system.vue",
		"users/index.vue",
		"a/b/../c.vue",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"users/index.vue", "settings/backup.vue", "logs/system.vue", "a/c.vue"}, got)
	assert.Equal(t, []string{"users/index.vue"}, dups)
}

func TestNormalize_Rejects(t *testing.T) {
	rejected := []string{"", "   ", "/etc/passwd", "../outside.vue", "a/../../b.vue", "..", ".", "dashboard/"}
	if runtime.GOOS == "windows" {
		rejected = append(rejected, `C:\pages\a.vue`, "c:notes.vue")
	}
	for _, bad := range rejected {
		_, _, err := manifest.Normalize([]string{"ok.vue", bad})
		require.Error(t, err, "entry %q should be rejected", bad)
		assert.ErrorIs(t, err, manifest.ErrInvalidPage)
		assert.Contains(t, err.Error(), "entry 2")
	}
}

func TestNormalize_ColonInName(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("drive letters are volume names on windows")
	}
	got, _, err := manifest.Normalize([]string{"c:notes.vue", "help/a:b.vue"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c:notes.vue", "help/a:b.vue"}, got)
}
