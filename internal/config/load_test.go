package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulMan-Dev/discord-anti-spam/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[detection]
warn_threshold = 5
max_interval_ms = 3000
remove_messages = false

[network]
workers = 8
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Detection.WarnThreshold)
	assert.Equal(t, 3000, cfg.Detection.MaxIntervalMs)
	assert.False(t, cfg.Detection.RemoveMessages)
	assert.Equal(t, 8, cfg.Network.Workers)

	// Untouched keys keep their defaults.
	assert.Equal(t, 4, cfg.Detection.MuteThreshold)
	assert.True(t, cfg.Detection.IgnoreBots)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "[detection\nbroken")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrConfigNotFound)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("DATABASE_PATH", "/tmp/env.db")

	path := writeConfig(t, `
[bot]
token = "file-token"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Bot.Token)
	assert.Equal(t, "/tmp/env.db", cfg.Database.Path)
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	cfg := config.LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	require.NotNil(t, cfg)
	assert.Equal(t, 3, cfg.Detection.WarnThreshold)
}

func TestEngineOptionsMapping(t *testing.T) {
	t.Parallel()
	d := config.DefaultConfig().Detection
	d.MaxIntervalMs = 1500
	d.UnMuteMinutes = 5
	d.IgnoredMembers = []uint64{42}

	opts := d.EngineOptions()

	assert.Equal(t, 1500*time.Millisecond, opts.MaxInterval)
	assert.Equal(t, 5*time.Minute, opts.UnMuteDuration)
	assert.True(t, opts.IgnoredMembers.Contains(42))
	assert.False(t, opts.IgnoredMembers.Contains(43))
}
