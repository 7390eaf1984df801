// Package config loads nugetclean settings from defaults, a YAML file, the
// environment and command-line flags, in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/nugetclean/pkg/age"
	"github.com/glorpus-work/nugetclean/pkg/errors"
	"github.com/glorpus-work/nugetclean/pkg/fsutil"
	"github.com/go-playground/validator"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
// Committing deletions is deliberately not a setting; it is only ever a flag.
type Config struct {
	// Cache settings
	CacheDir string `mapstructure:"cache_dir" yaml:"cache_dir,omitempty"`

	// Retention settings
	// A negative MinDays expires every version that holds files.
	MinDays int  `mapstructure:"min_days" yaml:"min_days"`
	Prune   bool `mapstructure:"prune" yaml:"prune"`

	// Output settings
	Verbose     bool   `mapstructure:"verbose" yaml:"verbose"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string `mapstructure:"log_format" yaml:"log_format" validate:"oneof=text json"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file,omitempty"`
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`
}

// Default configuration values.
const (
	// DefaultMinDays is the default retention window in days.
	DefaultMinDays = 90

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default log output format.
	DefaultLogFormat = "text"

	// EnvPrefix prefixes every environment variable that overrides a setting.
	EnvPrefix = "NUGETCLEAN"

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// Keys of the settings, as used in the config file and by viper.
const (
	KeyCacheDir    = "cache_dir"
	KeyMinDays     = "min_days"
	KeyPrune       = "prune"
	KeyVerbose     = "verbose"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyLogFile     = "log_file"
	KeyMetricsFile = "metrics_file"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MinDays:   DefaultMinDays,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// NewViper returns a viper instance carrying the defaults and the
// NUGETCLEAN_* environment binding. Callers bind their flags to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault(KeyCacheDir, defaults.CacheDir)
	v.SetDefault(KeyMinDays, defaults.MinDays)
	v.SetDefault(KeyPrune, defaults.Prune)
	v.SetDefault(KeyVerbose, defaults.Verbose)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyLogFormat, defaults.LogFormat)
	v.SetDefault(KeyLogFile, defaults.LogFile)
	v.SetDefault(KeyMetricsFile, defaults.MetricsFile)
	return v
}

// Load reads the config file at path (when it exists) into v, merges flags and
// environment and returns the validated result. A missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
		}

		switch _, err := os.Stat(absPath); {
		case err == nil:
			v.SetConfigFile(absPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
			}
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, "failed to open config file: %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile loads the config file at path on top of the defaults and the
// environment, without any flags.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}
	return Load(NewViper(), path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrConfigValidation, err.Error())
	}
	return nil
}

// MinAge returns the retention window.
func (c *Config) MinAge() time.Duration {
	return time.Duration(c.MinDays) * age.Day
}

// ResolveCacheDir returns CacheDir, or the NuGet default when it is unset.
func (c *Config) ResolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	return fsutil.GetPackagesDir()
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return data, nil
}

// SaveConfig saves configuration to a file, replacing it atomically.
// An existing file is only overwritten when force is set.
func (c *Config) SaveConfig(path string, force bool) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if !force {
		if _, err := os.Stat(absPath); err == nil {
			return errors.ErrConfigFileExists
		}
	}

	if err := fsutil.EnsureFileDir(absPath); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	path, err := fsutil.GetConfigPath()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user config directory")
	}
	return path, nil
}
