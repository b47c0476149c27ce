// Package manifest resolves the list of page paths a run generates: the
// embedded default list, a manifest file (YAML, TOML or JSON), or the route
// targets of a navigation source file.
package manifest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultManifest []byte

//go:embed schema.json
var schemaJSON []byte

// SourceDefault is reported as the manifest source when the embedded list is used.
const SourceDefault = "embedded"

// DefaultPageExt is appended to routes derived from a navigation file.
const DefaultPageExt = ".vue"

var (
	// ErrInvalidManifest indicates a manifest file that could not be decoded or
	// does not conform to the manifest schema.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrUnsupportedFormat indicates a manifest file extension pagegen cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported manifest format")

	// ErrInvalidPage indicates a page entry that is empty, absolute, names a
	// directory, or escapes the root.
	ErrInvalidPage = errors.New("invalid page entry")
)

// Manifest is a list of page paths relative to the pages root.
type Manifest struct {
	Version     int      `json:"version" yaml:"version" toml:"version"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Pages       []string `json:"pages" yaml:"pages" toml:"pages"`

	// Source describes where the manifest came from (file path, nav path or SourceDefault).
	Source string `json:"-" yaml:"-" toml:"-"`
}

// Default returns the embedded page list.
func Default() (Manifest, error) {
	m, err := decode(defaultManifest, ".yaml")
	if err != nil {
		return Manifest{}, fmt.Errorf("embedded manifest is broken: %w", err)
	}
	m.Source = SourceDefault
	return m, nil
}

// LoadFile reads a manifest from disk. The format is chosen by extension:
// .yaml/.yml, .toml or .json. The document is checked against the manifest
// schema before it is used.
func LoadFile(filePath string) (Manifest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest '%s': %w", filePath, err)
	}
	m, err := decode(data, strings.ToLower(filepath.Ext(filePath)))
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest '%s': %w", filePath, err)
	}
	m.Source = filePath
	return m, nil
}

func decode(data []byte, ext string) (Manifest, error) {
	var (
		m      Manifest
		doc    map[string]interface{}
		loader gojsonschema.JSONLoader
	)

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return m, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}
		loader = gojsonschema.NewGoLoader(doc)
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return m, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}
		loader = gojsonschema.NewGoLoader(doc)
	case ".json":
		loader = gojsonschema.NewBytesLoader(data)
	default:
		return m, fmt.Errorf("%w: %q (use .yaml, .yml, .toml or .json)", ErrUnsupportedFormat, ext)
	}

	if err := validate(loader); err != nil {
		return m, err
	}

	var err error
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	case ".json":
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return m, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return m, nil
}

func validate(doc gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		msgs = append(msgs, re.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidManifest, strings.Join(msgs, "; "))
}

// routePattern matches route targets such as `to: { path: '/dashboard/stats' }`.
var routePattern = regexp.MustCompile(`\bpath\s*:\s*['"](/[^'"]*)['"]`)

// FromNavigation derives page paths from the route targets of a navigation
// source file. "/orders" becomes "orders/index<ext>", "/orders/view" becomes
// "orders/view<ext>". Parameter segments (":id") and the root route are dropped.
func FromNavigation(navPath, ext string) (Manifest, error) {
	data, err := os.ReadFile(navPath)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read navigation file '%s': %w", navPath, err)
	}
	if ext == "" {
		ext = DefaultPageExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	var pages []string
	for _, match := range routePattern.FindAllSubmatch(data, -1) {
		if page, ok := RouteToPage(string(match[1]), ext); ok {
			pages = append(pages, page)
		}
	}
	if len(pages) == 0 {
		return Manifest{}, fmt.Errorf("%w: no routes found in navigation file '%s'", ErrInvalidManifest, navPath)
	}
	return Manifest{Version: 1, Pages: pages, Source: navPath}, nil
}

// RouteToPage maps a route path to a page file path.
func RouteToPage(route, ext string) (string, bool) {
	var segments []string
	for _, seg := range strings.Split(route, "/") {
		if seg == "" || strings.HasPrefix(seg, ":") {
			continue
		}
		segments = append(segments, seg)
	}
	switch len(segments) {
	case 0:
		return "", false
	case 1:
		return segments[0] + "/index" + ext, true
	default:
		return strings.Join(segments, "/") + ext, true
	}
}

// Normalize converts entries to clean slash form and validates them. Duplicate
// entries are dropped, keeping the first occurrence, and returned separately so
// the caller can report them.
func Normalize(pages []string) (normalized []string, duplicates []string, err error) {
	seen := make(map[string]struct{}, len(pages))
	normalized = make([]string, 0, len(pages))
	for i, raw := range pages {
		p, err := normalizeOne(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: entry %d (%q): %s", ErrInvalidPage, i+1, raw, err.Error())
		}
		if _, dup := seen[p]; dup {
			duplicates = append(duplicates, p)
			continue
		}
		seen[p] = struct{}{}
		normalized = append(normalized, p)
	}
	return normalized, duplicates, nil
}

func normalizeOne(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return "", errors.New("path is empty")
	}
	p = strings.ReplaceAll(p, `\`, "/")
	if strings.HasSuffix(p, "/") {
		return "", errors.New("path names a directory")
	}
	if path.IsAbs(p) || filepath.VolumeName(p) != "" {
		return "", errors.New("path must be relative to the pages root")
	}
	p = path.Clean(p)
	if p == "." || p == ".." || strings.HasPrefix(p, "../") {
		return "", errors.New("path escapes the pages root")
	}
	return p, nil
}
