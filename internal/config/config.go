// Package config handles loading and saving user configuration for define.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/f3rmion/define/internal/mw"
	"github.com/f3rmion/define/internal/style"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user directories.
const AppName = "define"

// ErrMissingAPIKey is returned when a network lookup has no API key.
var ErrMissingAPIKey = errors.New("no API key configured (set api_key in the config file or DEFINE_API_KEY)")

// Config holds all user configuration.
type Config struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	Cache   CacheConfig   `yaml:"cache"`
	Output  OutputConfig  `yaml:"output"`
}

// CacheConfig holds settings for the response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Path    string        `yaml:"path"` // sqlite database file
	TTL     time.Duration `yaml:"ttl"`  // 0 keeps entries forever
}

// OutputConfig holds rendering settings.
type OutputConfig struct {
	Format string `yaml:"format"` // "auto", "term" or "text"
	Short  bool   `yaml:"short"`  // print shortdef lines instead of full senses
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		BaseURL: mw.DefaultBaseURL,
		Timeout: 10 * time.Second,
		Cache: CacheConfig{
			Enabled: true,
			Path:    DefaultCachePath(),
			TTL:     30 * 24 * time.Hour,
		},
		Output: OutputConfig{
			Format: style.FormatAuto.String(),
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DefaultCachePath returns the default cache database location.
func DefaultCachePath() string {
	return filepath.Join(xdg.CacheHome, AppName, "cache.db")
}

// Load reads the config file at path over the defaults. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to path, creating the parent directory. The file may
// hold an API key and is only readable by the owner.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, out, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks the values that cannot be fixed up silently.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return errors.New("cache.path is empty")
	}
	if _, err := style.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	return nil
}

// RequireAPIKey reports ErrMissingAPIKey when no key is set.
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
