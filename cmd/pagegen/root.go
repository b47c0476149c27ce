package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stackvity/pagegen/internal/cli"
	"github.com/stackvity/pagegen/internal/cli/config"
	"github.com/stackvity/pagegen/pkg/scaffold"
	"github.com/stackvity/pagegen/pkg/scaffold/manifest"
)

var (
	// These are set during build time using -ldflags
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// newRootCmd builds the pagegen command with all flags registered.
func newRootCmd() *cobra.Command {
	var (
		cfgFile     string
		profileName string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "pagegen [-r <pagesDir>]",
		Short: "Creates placeholder page files for a front-end application.",
		Long: `pagegen walks a list of relative page paths and, for every entry, creates the
missing parent directories and writes a small placeholder file that names the
page. Files that already exist are never touched, so running it again only
reports what is already there.

The page list comes from, in order of precedence:
  - a navigation source file (--nav), whose route targets become pages
  - a manifest file in YAML, TOML or JSON (--manifest)
  - the "pages" key of the configuration file
  - the built-in list of admin panel pages`,
		Version:       versionString(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			opts, logger, err := config.LoadAndValidate(cfgFile, profileName, version, cmd.Flags())
			if err != nil {
				return err
			}
			return cli.Run(ctx, opts, logger, cmd.OutOrStdout())
		},
	}
	cmd.SetVersionTemplate(`{{.Name}} version {{.Version}}` + "\n")

	// Persistent flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default is search standard locations like ., $HOME/.config/pagegen/)")
	cmd.PersistentFlags().StringVar(&profileName, "profile", "", "Name of configuration profile to use")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging output")

	// Page source flags
	cmd.Flags().StringP("root", "r", scaffold.DefaultRoot, "Pages directory the page paths are relative to")
	cmd.Flags().StringP("manifest", "m", "", "Manifest file listing the pages (.yaml, .yml, .toml or .json)")
	cmd.Flags().String("nav", "", "Navigation source file to derive pages from its route targets")
	cmd.Flags().String("nav-ext", manifest.DefaultPageExt, "File extension for pages derived from --nav")
	cmd.Flags().StringArray("ignore", []string{}, "Glob patterns for pages to skip (can be specified multiple times; a .pagegenignore file in the root adds more)")

	// Content flags
	cmd.Flags().String("template", "", "Path to a Go template used for every placeholder")
	cmd.Flags().String("message", scaffold.DefaultMessage, "Text rendered into every placeholder next to its path")
	cmd.Flags().String("encoding", scaffold.DefaultEncoding, "Character encoding of written placeholders (e.g. utf-8, windows-1250)")

	// Behavior flags
	cmd.Flags().String("onError", string(scaffold.DefaultOnErrorMode), `Behavior when a page cannot be created ("continue" or "stop")`)
	cmd.Flags().Bool("dry-run", scaffold.DefaultDryRun, "Report what would be created without writing anything")
	cmd.Flags().String("output-format", string(scaffold.DefaultOutputFormat), `Final report format ("text", "json")`)
	cmd.Flags().Bool("progress", scaffold.DefaultProgress, "Draw a progress bar instead of status lines when stderr is a terminal")
	cmd.Flags().Bool("git-add", scaffold.DefaultGitAdd, "Stage created pages in the enclosing Git repository")
	cmd.Flags().Bool("no-lock", false, "Do not guard the pages directory against concurrent runs")

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
