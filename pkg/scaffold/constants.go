package scaffold

import "os"

// Constants defining default values for configuration options.
// These are used when setting up Viper defaults in internal/cli/config.
const (
	// DefaultRoot is the pages directory of the front-end, relative to the working directory.
	DefaultRoot = "resources/ts/pages"
	// DefaultMessage is the text rendered into every placeholder next to its path.
	DefaultMessage = "Strona w budowie"
	// DefaultEncoding is the character encoding placeholders are written in.
	DefaultEncoding = "utf-8"
	// DefaultOnErrorMode keeps going after a page fails.
	DefaultOnErrorMode = OnErrorContinue
	// DefaultOutputFormat is the default format for the final report.
	DefaultOutputFormat = OutputFormatText
	// DefaultDryRun is the default state for dry-run mode.
	DefaultDryRun = false
	// DefaultProgress is the default state for the progress bar.
	DefaultProgress = false
	// DefaultGitAdd is the default state for staging created pages.
	DefaultGitAdd = false
	// DefaultLockEnabled guards the root against concurrent runs.
	DefaultLockEnabled = true
	// DefaultVerbose is the default state for verbose logging.
	DefaultVerbose = false
)

// Permissions used for created directories and placeholder files.
const (
	DefaultDirPerm  os.FileMode = 0o755
	DefaultFilePerm os.FileMode = 0o644
)

// ReportSchemaVersion indicates the version of the JSON report structure.
const ReportSchemaVersion = "1.0"

// Skip reasons used in the Report.
const (
	SkipReasonIgnored = "ignored_pattern"
)
