package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/glorpus-work/nugetclean/internal/logger"
	"github.com/glorpus-work/nugetclean/pkg/config"
	"github.com/glorpus-work/nugetclean/pkg/errors"
	"github.com/spf13/cobra"
)

// newConfigCmd creates the config command with subcommands.
func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  "View and modify nugetclean configuration settings",
	}

	cmd.AddCommand(
		newConfigShowCmd(opts),
		newConfigListCmd(opts),
		newConfigGetCmd(opts),
		newConfigSetCmd(opts),
		newConfigInitCmd(opts),
	)

	return cmd
}

func newConfigShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration as YAML",
		Long:  "Display the configuration after merging defaults, config file, environment and flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := opts.cfg.ToYAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configuration settings",
		Long:  "Display every configuration setting and its effective value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tabWriter := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, TabWidth, ' ', 0)
			_, _ = fmt.Fprintln(tabWriter, "SETTING\tVALUE")
			_, _ = fmt.Fprintln(tabWriter, "-------\t-----")

			settings := opts.cfg.ToMap()
			for _, key := range config.Keys() {
				_, _ = fmt.Fprintf(tabWriter, "%s\t%s\n", key, settings[key])
			}
			return tabWriter.Flush()
		},
	}
}

func newConfigGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Get a configuration value",
		Long:  "Get the effective value of a specific configuration key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := opts.cfg.GetValue(args[0])
			if err != nil {
				return fmt.Errorf("failed to get configuration value: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration key in the config file to a specific value",
		Args:  cobra.ExactArgs(setCommandArgs),
		RunE: func(_ *cobra.Command, args []string) error {
			return runConfigSet(opts, args[0], args[1])
		},
	}
}

func newConfigInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file",
		Long:  "Create a configuration file holding the default settings",
		Args:  cobra.NoArgs,
		// Runs without loading the existing file.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, opts, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration file")

	return cmd
}

func runConfigSet(opts *options, key, value string) error {
	path, err := opts.resolveConfigPath()
	if err != nil {
		return err
	}

	// Flag values are never written to the file.
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	if err := cfg.SetValue(key, value); err != nil {
		return fmt.Errorf("failed to set configuration value: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cfg.SaveConfig(path, true); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Success("Configuration updated", logger.Fields{"key": key, "value": value, "path": path})
	return nil
}

func runConfigInit(cmd *cobra.Command, opts *options, force bool) error {
	path, err := opts.resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists at %s: %w", path, errors.ErrConfigFileExists)
	}

	if err := config.DefaultConfig().SaveConfig(path, force); err != nil {
		return fmt.Errorf("failed to save default configuration: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at %s\n", path)
	return nil
}
