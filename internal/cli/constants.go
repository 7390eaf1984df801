package cli

// Names of the command-line flags.
const (
	flagCommit      = "commit"
	flagMinDays     = "min-days"
	flagPrune       = "prune"
	flagVerbose     = "verbose"
	flagHelpAlias   = "help-alias"
	flagCacheDir    = "cache-dir"
	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagLogFile     = "log-file"
	flagMetricsFile = "metrics-file"
)

// Number of arguments expected by the set command.
const setCommandArgs = 2

// TabWidth is the width of tabs in formatted output.
const TabWidth = 2
