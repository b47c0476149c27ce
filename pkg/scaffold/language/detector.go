package language

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Plaintext is returned when no language can be associated with a page path.
const Plaintext = "plaintext"

// Detector determines the language of a page from its path. The result selects
// which placeholder template is rendered, so it is always a lowercase key.
type Detector interface {
	Detect(pagePath string) string
}

// goEnryDetector implements Detector using go-enry's extension tables.
// Ambiguous extensions (".ts" is both TypeScript and XML, ".md" is both Markdown
// and GCC Machine Description) are resolved by preferring a candidate that has
// a template.
type goEnryDetector struct {
	preferred map[string]struct{}
	overrides map[string]string // Map[extension] -> language key
}

// NewGoEnryDetector creates a detector. preferred lists the language keys that
// have templates; overrides maps extensions to language keys and always wins.
// Override keys are normalized to a lowercase extension with a leading dot.
func NewGoEnryDetector(preferred []string, overrides map[string]string) Detector {
	pref := make(map[string]struct{}, len(preferred))
	for _, p := range preferred {
		pref[strings.ToLower(p)] = struct{}{}
	}

	normalized := make(map[string]string, len(overrides))
	for ext, lang := range overrides {
		ext = strings.ToLower(strings.TrimSpace(ext))
		lang = strings.ToLower(strings.TrimSpace(lang))
		if ext == "" || ext == "." || lang == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[ext] = lang
	}

	return &goEnryDetector{preferred: pref, overrides: normalized}
}

// Detect implements Detector.
func (d *goEnryDetector) Detect(pagePath string) string {
	ext := strings.ToLower(filepath.Ext(pagePath))
	base := filepath.Base(pagePath)

	// 1. User overrides
	if lang, ok := d.overrides[ext]; ok && ext != "" {
		return lang
	}

	// 2. Extension candidates, preferring those with a template
	for _, c := range enry.GetLanguagesByExtension(base, nil, nil) {
		key := strings.ToLower(c)
		if _, ok := d.preferred[key]; ok {
			return key
		}
	}

	// 3. Unambiguous extension
	if lang, safe := enry.GetLanguageByExtension(base); safe && lang != "" && lang != "Text" {
		return strings.ToLower(lang)
	}

	// 4. Well-known file names (Makefile, Dockerfile, ...)
	if lang, safe := enry.GetLanguageByFilename(base); safe && lang != "" && lang != "Text" {
		return strings.ToLower(lang)
	}
	return Plaintext
}
