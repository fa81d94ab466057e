// Package cmdutil provides shared utilities for CLI command implementations.
package cmdutil

import (
	"time"

	"github.com/spf13/viper"

	"github.com/alfurqan/aidctl/internal/pkg/config"
)

// Config keys shared by the command tree
const (
	KeyAPIURL       = "api.url"
	KeyTimeout      = "api.timeout"
	KeyStateDir     = "state.dir"
	KeyTokenBackend = "session.token_backend"
	KeyPollInterval = "notify.interval"
	KeyMetricsFile  = "metrics.file"
	KeyLogLevel     = "log.level"
	KeyLogFormat    = "log.format"
	KeyOutput       = "output"
)

// SetDefaults installs env-derived values as viper defaults so that flags
// and the config file still take precedence over the environment.
func SetDefaults(env config.Env) {
	viper.SetDefault(KeyAPIURL, env.APIURL)
	viper.SetDefault(KeyTimeout, env.Timeout)
	viper.SetDefault(KeyStateDir, env.StateDir)
	viper.SetDefault(KeyTokenBackend, env.TokenBackend)
	viper.SetDefault(KeyPollInterval, env.PollInterval)
	viper.SetDefault(KeyMetricsFile, env.MetricsFile)
	viper.SetDefault(KeyLogLevel, env.LogLevel)
	viper.SetDefault(KeyLogFormat, env.LogFormat)
}

// GetStringConfig returns the config value for key, or flagValue if the key is not set.
// Flag values take precedence over config file values.
func GetStringConfig(key, flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString(key)
}

// GetIntConfig returns the config value for key, or flagValue if the key is not set.
func GetIntConfig(key string, flagValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return flagValue
}

// GetBoolConfig returns the config value for key, or flagValue if the key is not set.
func GetBoolConfig(key string, flagValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return flagValue
}

// GetDurationConfig returns flagValue when set, otherwise the config value for key.
func GetDurationConfig(key string, flagValue time.Duration) time.Duration {
	if flagValue > 0 {
		return flagValue
	}
	return viper.GetDuration(key)
}
