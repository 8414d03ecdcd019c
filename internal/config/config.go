package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Provider struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"provider"`
	Storage struct {
		Root                   string `yaml:"root"`
		CacheTimeoutSeconds    int    `yaml:"cache_timeout_seconds"`
		CurrencyTimeoutSeconds int    `yaml:"currency_timeout_seconds"`
	} `yaml:"storage"`
	Schedule struct {
		RefreshCron  string `yaml:"refresh_cron"`
		SnapshotCron string `yaml:"snapshot_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("STORAGE_ROOT"); v != "" {
		cfg.Storage.Root = v
	}
	if v := os.Getenv("CACHE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Storage.CacheTimeoutSeconds = n
		}
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("CRON_SNAPSHOT"); v != "" {
		cfg.Schedule.SnapshotCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = "https://api.exchangerate-api.com/v4/latest"
	}
	if cfg.Storage.Root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.Storage.Root = filepath.Join(home, ".currency_cache")
	}
	if cfg.Storage.CacheTimeoutSeconds == 0 {
		cfg.Storage.CacheTimeoutSeconds = 3600
	}
	if cfg.Storage.CurrencyTimeoutSeconds == 0 {
		cfg.Storage.CurrencyTimeoutSeconds = 86400
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 * * * *"
	}
	if cfg.Schedule.SnapshotCron == "" {
		cfg.Schedule.SnapshotCron = "0 0 12 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = filepath.Join(cfg.Storage.Root, "ratevault.db")
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Storage.Root == "" {
		return fmt.Errorf("storage.root is required")
	}
	if c.Storage.CacheTimeoutSeconds <= 0 {
		return fmt.Errorf("storage.cache_timeout_seconds must be positive")
	}
	if c.Storage.CurrencyTimeoutSeconds <= 0 {
		return fmt.Errorf("storage.currency_timeout_seconds must be positive")
	}
	return nil
}
