package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Store   StoreConfig   `toml:"store"`
	Options OptionsConfig `toml:"options"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `toml:"port"`
}

// StoreConfig holds snapshot database settings.
type StoreConfig struct {
	Path string `toml:"path"`
}

// OptionsConfig names the backend option keys the defaults are read from,
// and bounds batch ingestion.
type OptionsConfig struct {
	DefaultCategoryKey   string `toml:"default_category_key"`
	DefaultPostFormatKey string `toml:"default_post_format_key"`
	BatchConcurrency     int    `toml:"batch_concurrency"`
}

const defaultConfigContent = `[server]
port = 8390

[store]
path = "./data/blogopts.db"

[options]
default_category_key = "default_category"
default_post_format_key = "default_post_format"
batch_concurrency = 8
`

// Load reads and parses the TOML config from the given path. If the file
// does not exist, it creates a default config file at that path.
// Environment variables override values from the file with highest
// priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("options", "batch_concurrency") {
		if cfg.Options.BatchConcurrency < 1 {
			return fmt.Errorf("invalid options.batch_concurrency %d: must be >= 1", cfg.Options.BatchConcurrency)
		}
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8390
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "./data/blogopts.db"
	}
	if cfg.Options.DefaultCategoryKey == "" {
		cfg.Options.DefaultCategoryKey = "default_category"
	}
	if cfg.Options.DefaultPostFormatKey == "" {
		cfg.Options.DefaultPostFormatKey = "default_post_format"
	}
	if cfg.Options.BatchConcurrency == 0 {
		cfg.Options.BatchConcurrency = 8
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BLOGOPTS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		} else {
			slog.Warn("ignoring non-numeric BLOGOPTS_PORT", "value", v)
		}
	}
	if v := os.Getenv("BLOGOPTS_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}
	if cfg.Store.Path == "" {
		return errors.New("store.path must not be empty")
	}
	if cfg.Options.DefaultCategoryKey == "" || cfg.Options.DefaultPostFormatKey == "" {
		return errors.New("options key names must not be empty")
	}
	if cfg.Options.BatchConcurrency < 1 {
		return fmt.Errorf("invalid options.batch_concurrency %d: must be >= 1", cfg.Options.BatchConcurrency)
	}
	return nil
}
