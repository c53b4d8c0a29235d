package checker

import (
	"igfollowcheck/pkg/config"
	"igfollowcheck/pkg/export"
	"igfollowcheck/pkg/followdiff"
	"igfollowcheck/pkg/logger"
	"igfollowcheck/pkg/storage"
	"igfollowcheck/pkg/ui"
)

// Report describes a completed run
type Report struct {
	Candidates *export.Candidates
	Following  *export.CategoryReport
	Followers  *export.CategoryReport
	Result     followdiff.Result
	Written    []string
}

// SkippedFiles returns the number of export files that could not be parsed
func (r *Report) SkippedFiles() int {
	n := 0
	for _, c := range []*export.CategoryReport{r.Following, r.Followers} {
		if c != nil {
			n += len(c.Failed)
		}
	}
	return n
}

// Checker runs locate, parse, diff and write in order
type Checker struct {
	config *config.Config
	writer ResultWriter
	logger logger.Logger
}

// New creates a Checker writing into cfg.Output.Directory
func New(cfg *config.Config) (*Checker, error) {
	manager, err := storage.NewManager(cfg.Output.Directory)
	if err != nil {
		return nil, err
	}
	return NewWithWriter(cfg, manager), nil
}

// NewWithWriter creates a Checker with a custom result writer
func NewWithWriter(cfg *config.Config, writer ResultWriter) *Checker {
	return &Checker{
		config: cfg,
		writer: writer,
		logger: logger.GetLogger().WithField("component", "checker"),
	}
}

// Run executes one check. The returned report is partially filled when an
// error stops the run.
func (c *Checker) Run() (*Report, error) {
	verbose := c.config.Report.Verbose
	report := &Report{}

	candidates, err := export.Locate(c.config.Input.DataDirectory, c.config.Input.MatchMode)
	report.Candidates = candidates
	if verbose {
		ui.PrintDiscovered(candidates)
	}
	if err != nil {
		c.logger.WithError(err).Error("Export data not found")
		return report, err
	}
	logger.LogCandidates(string(export.Following), candidates.Following)
	logger.LogCandidates(string(export.Followers), candidates.Followers)
	if len(candidates.Ambiguous) > 0 {
		c.logger.WithField("files", candidates.Ambiguous).Warn("Ignoring files matching both following and followers")
	}

	following, followingReport, err := export.LoadCategory(export.Following, candidates.Following)
	report.Following = followingReport
	if verbose {
		ui.PrintCategoryReport(candidates.Root, followingReport)
	}
	if err != nil {
		return report, err
	}

	followers, followersReport, err := export.LoadCategory(export.Followers, candidates.Followers)
	report.Followers = followersReport
	if verbose {
		ui.PrintCategoryReport(candidates.Root, followersReport)
	}
	if err != nil {
		return report, err
	}

	result := followdiff.Compute(following, followers)
	report.Result = result
	logger.LogSetSizes(map[string]interface{}{
		"following":            result.FollowingCount,
		"followers":            result.FollowersCount,
		"mutual":               result.Mutual,
		"not_following_back":   len(result.NotFollowingBack),
		"you_dont_follow_back": len(result.YouDontFollowBack),
		"skipped_files":        report.SkippedFiles(),
		"skipped_entries":      followingReport.SkippedEntries() + followersReport.SkippedEntries(),
	})
	if verbose {
		ui.PrintSetSizes(result)
	}

	written, err := c.writer.WriteResults(result, c.config.Output.Format)
	report.Written = written
	if err != nil {
		c.logger.WithError(err).Error("Failed to write results")
		return report, err
	}

	c.logger.WithField("files", written).Info("Results written")
	return report, nil
}
