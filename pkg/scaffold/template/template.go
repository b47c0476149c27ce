package template

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
)

//go:embed defaults/*.tmpl
var defaultTemplates embed.FS

// FallbackLanguage names the template used when no language-specific one exists.
const FallbackLanguage = "plaintext"

// PageData holds the data passed to a placeholder template.
// Every built-in template renders Path verbatim so a generated file can always
// be traced back to its manifest entry.
type PageData struct {
	Path     string // Relative page path in slash form, e.g. "integrations/allegro/account.vue"
	Name     string // Base name without extension, e.g. "account"
	Title    string // Name in title case, e.g. "Reset Password"
	Language string // Detected language key, e.g. "vue"
	Message  string // Configured placeholder message
}

// NewPageData derives the template data for a relative page path.
func NewPageData(relPath, language, message string) *PageData {
	name := TrimExt(path.Base(relPath))
	return &PageData{
		Path:     relPath,
		Name:     name,
		Title:    Title(name),
		Language: language,
		Message:  message,
	}
}

// Executor defines the interface for executing a placeholder template.
type Executor interface {
	// Execute renders tmpl with data into w. Implementations must handle a nil
	// tmpl by falling back to the built-in plaintext placeholder.
	Execute(w io.Writer, tmpl *template.Template, data *PageData) error
}

// GoTemplateExecutor implements Executor using text/template.
type GoTemplateExecutor struct{}

// NewGoTemplateExecutor creates a new GoTemplateExecutor.
func NewGoTemplateExecutor() *GoTemplateExecutor {
	return &GoTemplateExecutor{}
}

// Execute runs the template, using the fallback placeholder if tmpl is nil.
func (e *GoTemplateExecutor) Execute(w io.Writer, tmpl *template.Template, data *PageData) error {
	if tmpl == nil {
		fallback, err := parseDefault(FallbackLanguage)
		if err != nil {
			return err
		}
		tmpl = fallback
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("template execution failed for %q: %w", tmpl.Name(), err)
	}
	return nil
}

// Funcs are the helper functions available inside placeholder templates.
var Funcs = template.FuncMap{
	"title":   Title,
	"pascal":  Pascal,
	"trimExt": TrimExt,
	"upper":   strings.ToUpper,
	"lower":   strings.ToLower,
}

// Set maps language keys to parsed placeholder templates.
type Set struct {
	templates map[string]*template.Template
}

// LoadDefaultSet parses every embedded placeholder template.
func LoadDefaultSet() (*Set, error) {
	entries, err := defaultTemplates.ReadDir("defaults")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	s := &Set{templates: make(map[string]*template.Template, len(entries))}
	for _, e := range entries {
		lang := strings.TrimSuffix(e.Name(), ".tmpl")
		tmpl, err := parseDefault(lang)
		if err != nil {
			return nil, err
		}
		s.templates[lang] = tmpl
	}
	if _, ok := s.templates[FallbackLanguage]; !ok {
		return nil, fmt.Errorf("embedded templates are missing the %q fallback", FallbackLanguage)
	}
	return s, nil
}

// Languages returns the language keys that have a template.
func (s *Set) Languages() []string {
	langs := make([]string, 0, len(s.templates))
	for lang := range s.templates {
		langs = append(langs, lang)
	}
	return langs
}

// Has reports whether a template is registered for lang.
func (s *Set) Has(lang string) bool {
	_, ok := s.templates[strings.ToLower(lang)]
	return ok
}

// Lookup returns the template for lang, falling back to plaintext.
func (s *Set) Lookup(lang string) *template.Template {
	if tmpl, ok := s.templates[strings.ToLower(lang)]; ok {
		return tmpl
	}
	return s.templates[FallbackLanguage]
}

// Override registers tmpl for lang, replacing any default.
func (s *Set) Override(lang string, tmpl *template.Template) {
	s.templates[strings.ToLower(strings.TrimSpace(lang))] = tmpl
}

// OverrideAll registers tmpl for every known language.
func (s *Set) OverrideAll(tmpl *template.Template) {
	for lang := range s.templates {
		s.templates[lang] = tmpl
	}
}

// ParseFile reads and parses a custom placeholder template with Funcs registered.
func ParseFile(filePath string) (*template.Template, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file '%s': %w", filePath, err)
	}
	tmpl, err := template.New(filepath.Base(filePath)).Funcs(Funcs).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template file '%s': %w", filePath, err)
	}
	return tmpl, nil
}

func parseDefault(lang string) (*template.Template, error) {
	content, err := defaultTemplates.ReadFile("defaults/" + lang + ".tmpl")
	if err != nil {
		return nil, fmt.Errorf("embedded template for %q not found: %w", lang, err)
	}
	tmpl, err := template.New(lang).Funcs(Funcs).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template %q: %w", lang, err)
	}
	return tmpl, nil
}

// TrimExt strips the final extension from name.
func TrimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// Title turns "reset-password" into "Reset Password".
func Title(name string) string {
	words := splitWords(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// Pascal turns "reset-password" into "ResetPassword".
func Pascal(name string) string {
	words := splitWords(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, "")
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func capitalize(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
