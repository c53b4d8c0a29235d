package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	igerrors "igfollowcheck/pkg/errors"
	"igfollowcheck/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// options holds the values bound to the command line flags
type options struct {
	configFile string
	dataDir    string
	outDir     string
	format     string
	logLevel   string
	verbose    bool
	strict     bool
	noColor    bool
	quiet      bool
}

// newRootCmd builds the igfollowcheck command tree
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "igfollowcheck --data <export-dir>",
		Short: "Find who doesn't follow you back, from your Instagram data export",
		Long: `igfollowcheck reads the unzipped "Download your information" export from
Instagram and compares the accounts you follow with the accounts following you.

Two lists are written to the output directory:
  - not_following_back: people you follow who don't follow you back
  - you_dont_follow_back: people who follow you that you don't follow back

Files are matched by "following"/"followers" in their path. Hashtag lists
such as following_hashtags.json are ignored; use --strict to accept only
following.json and followers_N.json.

Everything runs locally. No network access, no login.`,
		Example: `  # Check an unzipped export, writing text lists to the current directory
  igfollowcheck --data ~/Downloads/instagram-export

  # Write CSV files into ./results and print a preview
  igfollowcheck --data ./export --out ./results --format csv -v

  # Only accept the canonical following.json / followers_N.json names
  igfollowcheck --data ./export --strict`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file (default is ./.igfollowcheck.yaml or $HOME/.config/igfollowcheck/config.yaml)")
	flags.StringVar(&opts.dataDir, "data", "", "path to the unzipped Instagram export (required)")
	flags.StringVar(&opts.outDir, "out", ".", "output directory for the result lists")
	flags.StringVar(&opts.format, "format", "txt", "output format (txt, csv)")
	flags.BoolVar(&opts.strict, "strict", false, "only accept following.json and followers_N.json file names")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error, disabled)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all output except errors")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show discovered files, set sizes and a preview of each list")

	// Version template
	rootCmd.SetVersionTemplate(`igfollowcheck {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

// Execute runs the root command and exits with the code matching the error
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(err)
		os.Exit(igerrors.ExitCode(err))
	}
}

// reportError prints err for the user, with a hint where one helps
func reportError(err error) {
	ui.PrintError("Error", err)
	switch igerrors.TypeOf(err) {
	case igerrors.ErrorTypeDataNotFound:
		ui.PrintExpectedLayout()
	case igerrors.ErrorTypeParsing:
		ui.PrintHint("Make sure you requested JSON format when downloading from Instagram.")
	case igerrors.ErrorTypeConfig, igerrors.ErrorTypeUnknown:
		ui.PrintHint("Run 'igfollowcheck --help' for usage.")
	}
}

// changedFlags collects the flags the user set explicitly, keyed the way
// config.MergeCommandLineFlags expects
func changedFlags(cmd *cobra.Command, opts *options) map[string]interface{} {
	flags := make(map[string]interface{})
	set := cmd.Flags().Changed

	if set("data") {
		flags["data"] = opts.dataDir
	}
	if set("out") {
		flags["out"] = opts.outDir
	}
	if set("format") {
		flags["format"] = opts.format
	}
	if set("strict") {
		flags["strict"] = opts.strict
	}
	if set("verbose") {
		flags["verbose"] = opts.verbose
	}
	if set("no-color") {
		flags["no-color"] = opts.noColor
	}
	if set("quiet") {
		flags["quiet"] = opts.quiet
	}
	if set("log-level") {
		flags["log-level"] = opts.logLevel
	}

	return flags
}
