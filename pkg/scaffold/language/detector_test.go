package language_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackvity/pagegen/pkg/scaffold/language"
)

var templated = []string{"vue", "typescript", "tsx", "javascript", "markdown", "plaintext"}

func TestGoEnryDetector_Detect(t *testing.T) {
	detector := language.NewGoEnryDetector(templated, nil)
	require.NotNil(t, detector)

	tests := []struct {
		path string
		want string
	}{
		{"dashboard/index.vue", "vue"},
		{"integrations/allegro/account.vue", "vue"},
		{"stores/productStore.ts", "typescript"},
		{"plugins/axios.js", "javascript"},
		{"docs/README.md", "markdown"},
		{"Makefile", "makefile"},
		{"docker/Dockerfile", "dockerfile"},
		{"notes/todo.txt", language.Plaintext},
		{"static/legacy.html", language.Plaintext},
		{"noext", language.Plaintext},
		{"weird.zzzunknown", language.Plaintext},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.Detect(tt.path))
		})
	}
}

func TestGoEnryDetector_Overrides(t *testing.T) {
	overrides := map[string]string{
		"VUE":    "Markdown", // missing dot and upper case, value lowercased
		".page":  "vue",
		"":       "ignored",
		".empty": "",
		".":      "dotonly",
		" .tsx ": "typescript",
	}
	detector := language.NewGoEnryDetector(templated, overrides)

	assert.Equal(t, "markdown", detector.Detect("help/faq.vue"))
	assert.Equal(t, "vue", detector.Detect("orders/view.page"))
	assert.Equal(t, "typescript", detector.Detect("components/Widget.tsx"))
	assert.Equal(t, language.Plaintext, detector.Detect("x.empty"))
}

func TestGoEnryDetector_NilPreferred(t *testing.T) {
	detector := language.NewGoEnryDetector(nil, nil)
	// Without preferences go-enry's own ordering decides; .vue is unambiguous.
	assert.Equal(t, "vue", detector.Detect("a/b.vue"))
}
