package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/f3rmion/define/internal/mw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, mw.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 720*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "cache.db", filepath.Base(cfg.Cache.Path))
	assert.Equal(t, "auto", cfg.Output.Format)
	assert.Empty(t, cfg.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(path)))
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_key: abc123
timeout: 3s
cache:
  ttl: 1h
output:
  short: true
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.True(t, cfg.Output.Short)

	// Untouched keys keep their defaults.
	assert.Equal(t, mw.DefaultBaseURL, cfg.BaseURL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "auto", cfg.Output.Format)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [1, 2"), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.APIKey = "k"
	cfg.Cache.TTL = 90 * time.Minute
	cfg.Output.Format = "text"
	require.NoError(t, Save(path, cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"default", func(*Config) {}, ""},
		{"relative base url", func(c *Config) { c.BaseURL = "dictionaryapi.com/json" }, "invalid base_url"},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://example.com" }, "invalid base_url"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout must be positive"},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, "cache.ttl"},
		{"zero ttl", func(c *Config) { c.Cache.TTL = 0 }, ""},
		{"empty cache path", func(c *Config) { c.Cache.Path = "" }, "cache.path"},
		{"empty path with cache off", func(c *Config) { c.Cache.Enabled = false; c.Cache.Path = "" }, ""},
		{"unknown format", func(c *Config) { c.Output.Format = "html" }, "output.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequireAPIKey(t *testing.T) {
	cfg := Default()
	assert.ErrorIs(t, cfg.RequireAPIKey(), ErrMissingAPIKey)

	cfg.APIKey = "k"
	assert.NoError(t, cfg.RequireAPIKey())
}
