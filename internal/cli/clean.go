package cli

import (
	"time"

	"github.com/glorpus-work/nugetclean/internal/logger"
	"github.com/glorpus-work/nugetclean/pkg/age"
	"github.com/glorpus-work/nugetclean/pkg/cache"
	"github.com/glorpus-work/nugetclean/pkg/deleter"
	"github.com/glorpus-work/nugetclean/pkg/metrics"
	"github.com/glorpus-work/nugetclean/pkg/retention"
	"github.com/spf13/cobra"
)

func runClean(cmd *cobra.Command, opts *options) error {
	cfg := opts.cfg

	root, err := cfg.ResolveCacheDir()
	if err != nil {
		return err
	}

	report := &reporter{out: cmd.OutOrStdout(), verbose: cfg.Verbose}
	hooks := report.hooks()

	policy := retention.Policy{Prune: cfg.Prune, Age: age.NewEvaluator(cfg.MinAge())}
	engine := retention.NewEngine(policy, deleter.New(opts.commit), hooks)
	walker := cache.NewWalker(root, engine, hooks)

	logger.Debug("cleaning cache", logger.Fields{
		"root":     root,
		"commit":   opts.commit,
		"prune":    cfg.Prune,
		"min_days": cfg.MinDays,
	})

	result, err := walker.Walk()
	if err != nil {
		return err
	}

	report.summary(result.Freed, opts.commit, cfg.Prune, cfg.MinDays)

	logger.Debug("cache cleaned", logger.Fields{
		"freed_bytes": result.Freed,
		"packages":    len(result.Packages),
		"failures":    result.Counts.Failures,
	})

	if cfg.MetricsFile != "" {
		rec := metrics.New()
		rec.Observe(result, !opts.commit, time.Now())
		if err := rec.WriteFile(cfg.MetricsFile); err != nil {
			return err
		}
		logger.Debug("metrics written", logger.Fields{"path": cfg.MetricsFile})
	}

	return nil
}
