package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"igfollowcheck/pkg/config"
	igerrors "igfollowcheck/pkg/errors"
	"igfollowcheck/pkg/ui"
)

const defaultConfigPath = ".igfollowcheck.yaml"

func newConfigCmd(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration files",
		Long: `Manage igfollowcheck configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (IGFOLLOWCHECK_*)
  - .env file
  - Configuration file
  - Default values (lowest priority)`,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a configuration file with the default settings",
		Long: `Create a configuration file with the default settings.

The file is written to ./.igfollowcheck.yaml unless a path is given.
An existing file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			return runConfigInit(path)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the configuration that a check would run with, after applying
defaults, the configuration file, environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, opts)
		},
	}

	configCmd.AddCommand(initCmd, showCmd)
	return configCmd
}

func runConfigInit(path string) error {
	if _, err := os.Stat(path); err == nil {
		return igerrors.NewConfig(fmt.Sprintf("configuration file already exists: %s", path), nil)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return igerrors.NewConfig("failed to create configuration file", err)
	}

	ui.PrintSuccess("Configuration file created: " + path)
	ui.Println()
	ui.Println("Next steps:")
	ui.Println("1. Set input.data_directory to your unzipped Instagram export")
	ui.Println("2. Run 'igfollowcheck config show' to check the result")
	ui.Println("3. Run 'igfollowcheck' to write the result lists")
	return nil
}

func runConfigShow(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Resolve(opts.configFile, changedFlags(cmd, opts))
	if err != nil {
		return igerrors.NewConfig("failed to load configuration", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return igerrors.NewConfig("failed to format configuration", err)
	}

	ui.PrintHighlight("Current Configuration")
	ui.Println()
	fmt.Fprint(cmd.OutOrStdout(), string(data))

	if err := cfg.Validate(); err != nil {
		ui.PrintWarning("Configuration is incomplete", err)
	}
	return nil
}
