// Package config loads environment defaults for aidctl. Flags and the config
// file are layered on top of these by the command tree through viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultAPIURL is the production backend
const DefaultAPIURL = "https://al-furqan-project-xx60.onrender.com"

// Env holds settings read from AIDCTL_* environment variables
type Env struct {
	APIURL       string        `env:"AIDCTL_API_URL" envDefault:"https://al-furqan-project-xx60.onrender.com"`
	Timeout      time.Duration `env:"AIDCTL_TIMEOUT" envDefault:"30s"`
	StateDir     string        `env:"AIDCTL_STATE_DIR"`
	PollInterval time.Duration `env:"AIDCTL_POLL_INTERVAL" envDefault:"1s"`
	TokenBackend string        `env:"AIDCTL_TOKEN_BACKEND" envDefault:"sqlite"`
	MetricsFile  string        `env:"AIDCTL_METRICS_FILE"`
	LogLevel     string        `env:"AIDCTL_LOG_LEVEL" envDefault:"info"`
	LogFormat    string        `env:"AIDCTL_LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StateDir == "" {
		cfg.StateDir = DefaultStateDir()
	}
	switch cfg.TokenBackend {
	case "sqlite", "keyring":
	default:
		return Env{}, fmt.Errorf("parse env: AIDCTL_TOKEN_BACKEND must be sqlite or keyring, got %q", cfg.TokenBackend)
	}
	return cfg, nil
}

// DefaultStateDir returns the per-user state directory
func DefaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "aidctl")
	}
	return filepath.Join(os.TempDir(), "aidctl")
}

// SessionDB returns the session database path inside dir
func SessionDB(dir string) string {
	return filepath.Join(dir, "session.db")
}
