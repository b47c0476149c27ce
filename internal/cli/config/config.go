package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stackvity/pagegen/pkg/scaffold"
	"github.com/stackvity/pagegen/pkg/scaffold/encoding"
	"github.com/stackvity/pagegen/pkg/scaffold/manifest"
	tpl "github.com/stackvity/pagegen/pkg/scaffold/template"
	"github.com/stackvity/pagegen/pkg/util"
)

const (
	EnvPrefix         = "PAGEGEN"
	DefaultConfigName = "pagegen"

	keyDelimiter = "::"

	// ManifestSourceConfig is reported when pages come from the "pages" config key.
	ManifestSourceConfig = "config"
)

// flagKeys maps command-line flag names to the config keys they override.
var flagKeys = map[string]string{
	"root":          "root",
	"manifest":      "manifest",
	"nav":           "nav",
	"nav-ext":       "navExt",
	"template":      "template",
	"ignore":        "ignore",
	"encoding":      "encoding",
	"message":       "message",
	"onError":       "onError",
	"dry-run":       "dryRun",
	"output-format": "outputFormat",
	"progress":      "progress",
	"git-add":       "gitAdd",
	"verbose":       "verbose",
}

// LoadAndValidate loads configuration from all sources (defaults, file,
// profile, env, flags), validates the merged configuration, resolves the page
// list and templates, and sets up the logger.
func LoadAndValidate(cfgFile, profileName, appVersion string, flags *pflag.FlagSet) (scaffold.Options, *slog.Logger, error) {
	var opts scaffold.Options
	// "::" keeps extension keys such as ".vue" in languageMappings intact.
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))

	// Basic logger for errors raised before the final level is known
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	setDefaults(v)

	// --- Load Config File ---
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			tempLogger.Error("Failed to get user home directory", slog.Any("error", err))
			return opts, tempLogger, fmt.Errorf("failed to get user home directory: %w", err)
		}
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		v.AddConfigPath(filepath.Join(home, "."+DefaultConfigName))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) && cfgFile == "" {
			tempLogger.Debug("No configuration file found, using defaults/env/flags.")
		} else {
			configFileUsed := cfgFile
			if configFileUsed == "" {
				configFileUsed = fmt.Sprintf("searched locations for %s.yaml", DefaultConfigName)
			}
			tempLogger.Error("Error reading configuration file", slog.String("path", configFileUsed), slog.Any("error", err))
			return opts, tempLogger, fmt.Errorf("error reading config file '%s': %w", configFileUsed, err)
		}
	} else {
		opts.ConfigFilePath = v.ConfigFileUsed()
	}

	// --- Apply Profile ---
	opts.ProfileName = profileName
	if profileName != "" {
		profileKey := "profiles" + keyDelimiter + profileName
		if !v.IsSet(profileKey) {
			configPath := v.ConfigFileUsed()
			if configPath == "" {
				configPath = "(no config file found)"
			}
			err := fmt.Errorf("profile '%s' not found in config file '%s'", profileName, configPath)
			tempLogger.Error(err.Error())
			return opts, tempLogger, err
		}
		// Sub would rebuild the profile with the default "." delimiter and split
		// extension keys, so the raw map is merged instead.
		profileSettings := cast.ToStringMap(v.Get(profileKey))
		if len(profileSettings) == 0 {
			err := fmt.Errorf("failed to load profile '%s' settings from config file '%s'", profileName, v.ConfigFileUsed())
			tempLogger.Error(err.Error())
			return opts, tempLogger, err
		}
		if err := v.MergeConfigMap(profileSettings); err != nil {
			tempLogger.Error("Error merging profile", slog.String("profile", profileName), slog.Any("error", err))
			return opts, tempLogger, fmt.Errorf("error merging profile '%s': %w", profileName, err)
		}
	}

	// --- Bind Environment Variables ---
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// --- Bind Flags (Highest Priority) ---
	if flags != nil {
		for flagName, key := range flagKeys {
			flag := flags.Lookup(flagName)
			if flag == nil {
				tempLogger.Debug("Flag lookup failed during binding", slog.String("flag", flagName))
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				tempLogger.Error("Error binding flag", slog.String("flag", flagName), slog.Any("error", err))
				return opts, tempLogger, fmt.Errorf("error binding flag '--%s': %w", flagName, err)
			}
		}
	}

	opts.AppVersion = appVersion
	if err := v.Unmarshal(&opts); err != nil {
		tempLogger.Error("Error unmarshalling configuration", slog.Any("error", err))
		return opts, tempLogger, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Explicit flags always win for booleans.
	if flags != nil {
		if flags.Changed("verbose") {
			opts.Verbose, _ = flags.GetBool("verbose")
		}
		if flags.Changed("dry-run") {
			opts.DryRun, _ = flags.GetBool("dry-run")
		}
		if flags.Changed("git-add") {
			opts.GitAdd, _ = flags.GetBool("git-add")
		}
		if flags.Changed("no-lock") {
			if noLock, _ := flags.GetBool("no-lock"); noLock {
				opts.LockEnabled = false
			}
		}
	}

	// --- Setup Final Logger ---
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(logHandler)
	opts.Logger = logHandler

	if err := validateAndDeriveOptions(&opts, logger); err != nil {
		return opts, logger, err
	}

	logger.Debug("Configuration loading and validation complete",
		slog.String("configFile", opts.ConfigFilePath),
		slog.String("profile", opts.ProfileName),
		slog.String("root", opts.Root),
		slog.String("manifestSource", opts.ManifestSource),
		slog.Int("pages", len(opts.Pages)),
		slog.String("logLevel", logLevel.String()),
	)
	return opts, logger, nil
}

// setDefaults establishes the default values for configuration options in Viper.
func setDefaults(v *viper.Viper) {
	// --- Core ---
	v.SetDefault("root", scaffold.DefaultRoot)
	v.SetDefault("pages", []string{})
	v.SetDefault("manifest", "")
	v.SetDefault("nav", "")
	v.SetDefault("navExt", manifest.DefaultPageExt)

	// --- Behavior & Control ---
	v.SetDefault("verbose", scaffold.DefaultVerbose)
	v.SetDefault("dryRun", scaffold.DefaultDryRun)
	v.SetDefault("onError", string(scaffold.DefaultOnErrorMode))
	v.SetDefault("outputFormat", string(scaffold.DefaultOutputFormat))
	v.SetDefault("progress", scaffold.DefaultProgress)
	v.SetDefault("gitAdd", scaffold.DefaultGitAdd)
	v.SetDefault("lock", scaffold.DefaultLockEnabled)
	v.SetDefault("ignore", []string{})

	// --- Placeholder Content ---
	v.SetDefault("message", scaffold.DefaultMessage)
	v.SetDefault("encoding", scaffold.DefaultEncoding)
	v.SetDefault("template", "")
	v.SetDefault("templates", map[string]string{})
	v.SetDefault("languageMappings", map[string]string{})
}

// isValidEnumValue checks if a given string value is present in a slice of allowed enum values.
func isValidEnumValue[T ~string](value T, allowedValues []T) bool {
	return slices.Contains(allowedValues, value)
}

// validateAndDeriveOptions performs semantic validation on the populated
// Options, resolves paths, pages and templates. Errors wrap
// scaffold.ErrConfigValidation.
func validateAndDeriveOptions(opts *scaffold.Options, logger *slog.Logger) error {
	// === Root ===
	if strings.TrimSpace(opts.Root) == "" {
		err := fmt.Errorf("%w: root directory is required (-r, --root)", scaffold.ErrConfigValidation)
		logger.Error(err.Error(), slog.String("key", "root"))
		return err
	}
	absRoot, err := filepath.Abs(opts.Root)
	if err != nil {
		err = fmt.Errorf("%w: cannot resolve absolute root path '%s': %w", scaffold.ErrConfigValidation, opts.Root, err)
		logger.Error(err.Error(), slog.String("key", "root"), slog.String("value", opts.Root))
		return err
	}
	opts.Root = absRoot
	if info, statErr := os.Stat(opts.Root); statErr == nil && !info.IsDir() {
		err = fmt.Errorf("%w: root '%s' is not a directory", scaffold.ErrConfigValidation, opts.Root)
		logger.Error(err.Error(), slog.String("key", "root"), slog.String("value", opts.Root))
		return err
	}

	// === Ignore File ===
	ignorePath := filepath.Join(opts.Root, util.IgnoreFileName)
	filePatterns, err := util.LoadPatternsFile(ignorePath)
	if err != nil {
		err = fmt.Errorf("%w: %w", scaffold.ErrConfigValidation, err)
		logger.Error(err.Error(), slog.String("path", ignorePath))
		return err
	}
	if len(filePatterns) > 0 {
		logger.Debug("Loaded ignore file", slog.String("path", ignorePath), slog.Int("patterns", len(filePatterns)))
		opts.IgnorePatterns = append(opts.IgnorePatterns, filePatterns...)
	}

	// === Enum String Validations ===
	allowedOnError := []scaffold.OnErrorMode{scaffold.OnErrorContinue, scaffold.OnErrorStop}
	if !isValidEnumValue(opts.OnErrorMode, allowedOnError) {
		err := fmt.Errorf("%w: invalid value '%s' for key 'onError' (flag --onError). Allowed: %v", scaffold.ErrConfigValidation, opts.OnErrorMode, allowedOnError)
		logger.Error(err.Error(), slog.String("key", "onError"), slog.String("value", string(opts.OnErrorMode)))
		return err
	}
	allowedOutputFormat := []scaffold.OutputFormat{scaffold.OutputFormatText, scaffold.OutputFormatJSON}
	if !isValidEnumValue(opts.OutputFormat, allowedOutputFormat) {
		err := fmt.Errorf("%w: invalid value '%s' for key 'outputFormat' (flag --output-format). Allowed: %v", scaffold.ErrConfigValidation, opts.OutputFormat, allowedOutputFormat)
		logger.Error(err.Error(), slog.String("key", "outputFormat"), slog.String("value", string(opts.OutputFormat)))
		return err
	}

	// === Encoding ===
	enc, err := encoding.NewEncoder(opts.Encoding)
	if err != nil {
		err = fmt.Errorf("%w: invalid value '%s' for key 'encoding' (flag --encoding): %w", scaffold.ErrConfigValidation, opts.Encoding, err)
		logger.Error(err.Error(), slog.String("key", "encoding"), slog.String("value", opts.Encoding))
		return err
	}
	opts.Encoder = enc
	opts.Encoding = enc.Name()

	if err := resolvePages(opts, logger); err != nil {
		return err
	}
	return loadTemplates(opts, logger)
}

// resolvePages fills opts.Pages from the highest-priority page source:
// navigation file, manifest file, inline "pages" key, embedded default.
func resolvePages(opts *scaffold.Options, logger *slog.Logger) error {
	var (
		m   manifest.Manifest
		err error
	)
	switch {
	case opts.NavPath != "":
		if len(opts.Pages) > 0 || opts.ManifestPath != "" {
			logger.Warn("Navigation file takes precedence over other page sources", slog.String("nav", opts.NavPath))
		}
		m, err = manifest.FromNavigation(opts.NavPath, opts.NavExt)
		if err != nil {
			err = fmt.Errorf("%w: %w", scaffold.ErrConfigValidation, err)
			logger.Error(err.Error(), slog.String("key", "nav"), slog.String("value", opts.NavPath))
			return err
		}
	case opts.ManifestPath != "":
		if len(opts.Pages) > 0 {
			logger.Warn("Manifest file takes precedence over inline pages", slog.String("manifest", opts.ManifestPath))
		}
		m, err = manifest.LoadFile(opts.ManifestPath)
		if err != nil {
			err = fmt.Errorf("%w: %w", scaffold.ErrConfigValidation, err)
			logger.Error(err.Error(), slog.String("key", "manifest"), slog.String("value", opts.ManifestPath))
			return err
		}
	case len(opts.Pages) > 0:
		m = manifest.Manifest{Version: 1, Pages: opts.Pages, Source: ManifestSourceConfig}
	default:
		m, err = manifest.Default()
		if err != nil {
			logger.Error("Critical: Failed to load embedded page list", slog.String("error", err.Error()))
			return fmt.Errorf("critical internal error: %w", err)
		}
	}

	pages, duplicates, err := manifest.Normalize(m.Pages)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", scaffold.ErrConfigValidation, m.Source, err)
		logger.Error(err.Error(), slog.String("key", "pages"))
		return err
	}
	if len(duplicates) > 0 {
		logger.Warn("Duplicate page entries dropped", slog.String("source", m.Source), slog.Any("pages", duplicates))
	}
	opts.Pages = pages
	opts.ManifestSource = m.Source
	logger.Debug("Resolved page list", slog.String("source", m.Source), slog.Int("pages", len(pages)))
	return nil
}

// loadTemplates builds the template set: embedded defaults, replaced by the
// single --template file if given, then by per-language overrides.
func loadTemplates(opts *scaffold.Options, logger *slog.Logger) error {
	set, err := tpl.LoadDefaultSet()
	if err != nil {
		logger.Error("Critical: Failed to load embedded templates", slog.String("error", err.Error()))
		return fmt.Errorf("critical internal error: failed to load default templates: %w", err)
	}

	if opts.TemplatePath != "" {
		tmpl, err := parseTemplate(opts.TemplatePath, "template", logger)
		if err != nil {
			return err
		}
		set.OverrideAll(tmpl)
		logger.Debug("Loaded custom template", slog.String("path", opts.TemplatePath))
	}

	langs := make([]string, 0, len(opts.TemplateOverrides))
	for lang := range opts.TemplateOverrides {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	for _, lang := range langs {
		tmpl, err := parseTemplate(opts.TemplateOverrides[lang], "templates."+lang, logger)
		if err != nil {
			return err
		}
		set.Override(lang, tmpl)
		logger.Debug("Loaded language template", slog.String("language", lang), slog.String("path", opts.TemplateOverrides[lang]))
	}

	opts.Templates = set
	return nil
}

func parseTemplate(path, key string, logger *slog.Logger) (*template.Template, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		err = fmt.Errorf("%w: cannot resolve absolute template path '%s': %w", scaffold.ErrConfigValidation, path, err)
		logger.Error(err.Error(), slog.String("key", key), slog.String("value", path))
		return nil, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		err = fmt.Errorf("%w: template file '%s' does not exist or cannot be accessed: %w", scaffold.ErrConfigValidation, absPath, err)
		logger.Error(err.Error(), slog.String("key", key), slog.String("value", path))
		return nil, err
	}
	if info.IsDir() {
		err = fmt.Errorf("%w: template path '%s' is a directory, not a file", scaffold.ErrConfigValidation, absPath)
		logger.Error(err.Error(), slog.String("key", key), slog.String("value", path))
		return nil, err
	}
	tmpl, err := tpl.ParseFile(absPath)
	if err != nil {
		err = fmt.Errorf("%w: %w", scaffold.ErrConfigValidation, err)
		logger.Error(err.Error(), slog.String("key", key), slog.String("value", path))
		return nil, err
	}
	return tmpl, nil
}
