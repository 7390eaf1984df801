package cli

import (
	"github.com/glorpus-work/nugetclean/internal/logger"
	"github.com/glorpus-work/nugetclean/pkg/config"
)

// initLogging configures the process logger from the effective configuration.
func initLogging(cfg *config.Config) {
	logger.InitLogger(cfg.LogLevel, logger.OutputFormat(cfg.LogFormat))
	if cfg.LogFile != "" {
		logger.SetLogFile(cfg.LogFile, logger.DefaultLogMaxSizeMB, logger.DefaultLogMaxBackups)
	}
	logger.Debug("configuration loaded", logger.Fields{
		"cache_dir": cfg.CacheDir,
		"min_days":  cfg.MinDays,
		"prune":     cfg.Prune,
	})
}

func closeLogging() {
	logger.Close()
}
