package scaffold

import (
	"log/slog"
	"os"
	"time"

	"github.com/stackvity/pagegen/pkg/scaffold/encoding"
	"github.com/stackvity/pagegen/pkg/scaffold/language"
	tpl "github.com/stackvity/pagegen/pkg/scaffold/template"
)

// Hooks defines callbacks for status updates during a run.
// Generate processes pages sequentially, but implementations should still be
// safe for concurrent use since they are shared with the CLI renderer.
type Hooks interface {
	OnPageDiscovered(path string) error
	OnPageStatusUpdate(path string, status Status, message string, duration time.Duration) error
	OnRunComplete(report Report) error
}

// NoOpHooks provides a default, do-nothing implementation of the Hooks interface.
type NoOpHooks struct{}

// OnPageDiscovered implements the Hooks interface. It performs no action.
func (h *NoOpHooks) OnPageDiscovered(path string) error { return nil }

// OnPageStatusUpdate implements the Hooks interface. It performs no action.
func (h *NoOpHooks) OnPageStatusUpdate(path string, status Status, message string, duration time.Duration) error {
	return nil
}

// OnRunComplete implements the Hooks interface. It performs no action.
func (h *NoOpHooks) OnRunComplete(report Report) error { return nil }

// Options holds all configuration for a Generate run.
type Options struct {
	// --- Core ---
	Root           string   `mapstructure:"root"`  // Pages directory; made absolute by the config layer
	Pages          []string `mapstructure:"pages"` // Relative page paths in slash form, in generation order
	ManifestSource string   `mapstructure:"-"`     // Where Pages came from (for reporting)
	ManifestPath   string   `mapstructure:"manifest"`
	NavPath        string   `mapstructure:"nav"`
	NavExt         string   `mapstructure:"navExt"`

	// --- Application Info ---
	AppVersion string `mapstructure:"-"`

	// --- Behavior & Control ---
	ConfigFilePath string       `mapstructure:"-"`
	ProfileName    string       `mapstructure:"-"`
	Verbose        bool         `mapstructure:"verbose"`
	DryRun         bool         `mapstructure:"dryRun"`
	OnErrorMode    OnErrorMode  `mapstructure:"onError"`
	OutputFormat   OutputFormat `mapstructure:"outputFormat"`
	Progress       bool         `mapstructure:"progress"` // Hint for the CLI to draw a progress bar on a TTY
	GitAdd         bool         `mapstructure:"gitAdd"`   // Stage created pages in the enclosing Git repository
	LockEnabled    bool         `mapstructure:"lock"`     // Hold an exclusive lock on Root for the run
	IgnorePatterns []string     `mapstructure:"ignore"`   // Gitignore-style patterns excluding pages
	DirPerm        os.FileMode  `mapstructure:"-"`        // Defaults to DefaultDirPerm
	FilePerm       os.FileMode  `mapstructure:"-"`        // Defaults to DefaultFilePerm

	// --- Placeholder Content ---
	Message           string            `mapstructure:"message"`
	Encoding          string            `mapstructure:"encoding"`         // Output charset label
	TemplatePath      string            `mapstructure:"template"`         // Single template applied to every page
	TemplateOverrides map[string]string `mapstructure:"templates"`        // Language key -> template file
	LanguageMap       map[string]string `mapstructure:"languageMappings"` // Extension -> language key

	// --- Injected Dependencies ---
	EventHooks       Hooks             `mapstructure:"-"` // Optional: defaults to NoOpHooks
	Logger           slog.Handler      `mapstructure:"-"` // Required: Logging backend
	Templates        *tpl.Set          `mapstructure:"-"` // Optional: defaults to the embedded set
	TemplateExecutor tpl.Executor      `mapstructure:"-"` // Optional: defaults to GoTemplateExecutor
	LanguageDetector language.Detector `mapstructure:"-"` // Optional: defaults to the go-enry detector
	Encoder          encoding.Encoder  `mapstructure:"-"` // Optional: derived from Encoding
}
