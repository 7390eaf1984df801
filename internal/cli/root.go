// Package cli implements the nugetclean command line.
package cli

import (
	"fmt"

	"github.com/glorpus-work/nugetclean/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// options carries the parsed flags and the effective configuration of one invocation.
type options struct {
	commit     bool
	helpAlias  bool
	configPath string

	viper *viper.Viper
	cfg   *config.Config
}

// NewRootCmd creates the nugetclean command with its subcommands.
func NewRootCmd() *cobra.Command {
	opts := &options{viper: config.NewViper()}

	cmd := &cobra.Command{
		Use:   "nugetclean [options]",
		Short: "Clean old packages out of the NuGet global packages folder",
		Long: `nugetclean removes package versions from the NuGet global packages folder
that have not been used for a number of days, and optionally every version that
is not the latest release or a newer prerelease.

Without -c/--commit it only reports what would be removed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.helpAlias {
				return nil
			}
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.helpAlias {
				return cmd.Help()
			}
			return runClean(cmd, opts)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			closeLogging()
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.commit, flagCommit, "c", false,
		"Performs the actual clean-up. Default is to do a dry-run and report the clean-up that would be done.")
	flags.IntP(flagMinDays, "m", config.DefaultMinDays,
		"Number of days a package must not be used in order to be purged from the cache.")
	flags.BoolP(flagPrune, "p", false, "Prune older versions of packages regardless of age.")
	flags.BoolP(flagVerbose, "v", false, "Display the paths of directories that are (or would be) removed.")
	flags.BoolVarP(&opts.helpAlias, flagHelpAlias, "?", false, "Show this message.")
	_ = flags.MarkHidden(flagHelpAlias)

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&opts.configPath, flagConfig, "", "config file path (default: user config directory)")
	persistent.String(flagCacheDir, "", "NuGet global packages folder (default: $NUGET_PACKAGES or ~/.nuget/packages)")
	persistent.String(flagLogLevel, config.DefaultLogLevel, "log level (debug, info, warn, error)")
	persistent.String(flagLogFile, "", "write logs to this file, rotated by size")
	persistent.String(flagMetricsFile, "", "write Prometheus metrics of the run to this file")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\nRun '%s --help' for usage", err, c.CommandPath())
	})

	cmd.AddCommand(
		newConfigCmd(opts),
		newInfoCmd(opts),
		NewVersionCmd(),
	)

	return cmd
}

// load binds the flags to viper, loads the configuration and sets up logging.
func (o *options) load(cmd *cobra.Command) error {
	root := cmd.Root()
	bindings := map[string]string{
		config.KeyMinDays:     flagMinDays,
		config.KeyPrune:       flagPrune,
		config.KeyVerbose:     flagVerbose,
		config.KeyCacheDir:    flagCacheDir,
		config.KeyLogLevel:    flagLogLevel,
		config.KeyLogFile:     flagLogFile,
		config.KeyMetricsFile: flagMetricsFile,
	}
	for key, name := range bindings {
		flag := root.Flags().Lookup(name)
		if flag == nil {
			flag = root.PersistentFlags().Lookup(name)
		}
		if err := o.viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	path, err := o.resolveConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(o.viper, path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	o.cfg = cfg

	initLogging(cfg)
	return nil
}

func (o *options) resolveConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	return path, nil
}
