package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Defaults(t *testing.T) {
	cfg, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, "sqlite", cfg.TokenBackend)
	assert.NotEmpty(t, cfg.StateDir)
}

func TestParseEnv_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AIDCTL_API_URL", "http://localhost:5000")
	t.Setenv("AIDCTL_TIMEOUT", "5s")
	t.Setenv("AIDCTL_STATE_DIR", dir)
	t.Setenv("AIDCTL_TOKEN_BACKEND", "keyring")

	cfg, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, dir, cfg.StateDir)
	assert.Equal(t, "keyring", cfg.TokenBackend)
	assert.Equal(t, filepath.Join(dir, "session.db"), SessionDB(cfg.StateDir))
}

func TestParseEnv_Invalid(t *testing.T) {
	t.Setenv("AIDCTL_TIMEOUT", "soon")
	_, err := ParseEnv()
	assert.Error(t, err)
}

func TestParseEnv_InvalidTokenBackend(t *testing.T) {
	t.Setenv("AIDCTL_TOKEN_BACKEND", "vault")
	_, err := ParseEnv()
	assert.Error(t, err)
}
