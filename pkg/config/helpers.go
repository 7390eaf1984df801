package config

import (
	"fmt"
	"sort"
	"strconv"
)

// Keys returns every setting key in alphabetical order.
func Keys() []string {
	keys := []string{
		KeyCacheDir, KeyMinDays, KeyPrune, KeyVerbose,
		KeyLogLevel, KeyLogFormat, KeyLogFile, KeyMetricsFile,
	}
	sort.Strings(keys)
	return keys
}

// SetValue sets a configuration value by key. The result is not validated;
// call Validate before saving.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case KeyCacheDir:
		c.CacheDir = value
	case KeyMinDays:
		days, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", key, value)
		}
		c.MinDays = days
	case KeyPrune, KeyVerbose:
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		if key == KeyPrune {
			c.Prune = boolVal
		} else {
			c.Verbose = boolVal
		}
	case KeyLogLevel:
		c.LogLevel = value
	case KeyLogFormat:
		c.LogFormat = value
	case KeyLogFile:
		c.LogFile = value
	case KeyMetricsFile:
		c.MetricsFile = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// GetValue returns the value of key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case KeyCacheDir:
		return c.CacheDir, nil
	case KeyMinDays:
		return strconv.Itoa(c.MinDays), nil
	case KeyPrune:
		return strconv.FormatBool(c.Prune), nil
	case KeyVerbose:
		return strconv.FormatBool(c.Verbose), nil
	case KeyLogLevel:
		return c.LogLevel, nil
	case KeyLogFormat:
		return c.LogFormat, nil
	case KeyLogFile:
		return c.LogFile, nil
	case KeyMetricsFile:
		return c.MetricsFile, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// ToMap returns every setting keyed by its config file name.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string, len(Keys()))
	for _, key := range Keys() {
		value, _ := c.GetValue(key)
		result[key] = value
	}
	return result
}
