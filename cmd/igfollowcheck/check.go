package main

import (
	"github.com/spf13/cobra"
	"igfollowcheck/pkg/checker"
	"igfollowcheck/pkg/config"
	igerrors "igfollowcheck/pkg/errors"
	"igfollowcheck/pkg/logger"
	"igfollowcheck/pkg/ui"
)

func runCheck(cmd *cobra.Command, opts *options) error {
	cfg, err := config.Load(opts.configFile, changedFlags(cmd, opts))
	if err != nil {
		return igerrors.NewConfig("failed to load configuration", err)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return igerrors.NewConfig("failed to initialize logger", err)
	}
	ui.SetQuietMode(cfg.Report.Quiet)
	if cfg.Report.NoColor {
		ui.SetColor(false)
	}

	logger.WithFields(map[string]interface{}{
		"version": version,
		"data":    cfg.Input.DataDirectory,
		"out":     cfg.Output.Directory,
		"format":  cfg.Output.Format,
	}).Info("igfollowcheck starting")

	if cfg.Report.Verbose {
		ui.PrintBanner()
	}

	c, err := checker.New(cfg)
	if err != nil {
		return err
	}

	report, err := c.Run()
	if err != nil {
		return err
	}

	ui.PrintSummary(report.Result, report.SkippedFiles(), report.Written)
	if cfg.Report.Verbose && cfg.Report.PreviewLimit > 0 {
		ui.PrintPreview("not following you back", report.Result.NotFollowingBack, cfg.Report.PreviewLimit)
		ui.PrintPreview("you don't follow back", report.Result.YouDontFollowBack, cfg.Report.PreviewLimit)
	}

	return nil
}
