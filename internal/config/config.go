package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// DefaultPerPage is the page size used when a request omits per_page.
	DefaultPerPage = 100

	// DefaultEntityCount is how many entities of each type are generated
	// when no seed file is configured.
	DefaultEntityCount = 100
)

// Config holds all configuration for ccdi-catalog.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	// BaseURL is the externally visible scheme and host used in Link headers.
	// When empty it is derived from each request.
	BaseURL string `mapstructure:"base_url"`
}

// CatalogConfig holds list endpoint settings.
type CatalogConfig struct {
	DefaultPerPage int `mapstructure:"default_per_page"`
}

// StoreConfig controls where the in-memory catalog comes from.
type StoreConfig struct {
	SeedFile   string `mapstructure:"seed_file"`
	Subjects   int    `mapstructure:"subjects"`
	Samples    int    `mapstructure:"samples"`
	Files      int    `mapstructure:"files"`
	RandomSeed uint64 `mapstructure:"random_seed"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("api.listen_addr", ":8000")
	v.SetDefault("api.base_url", "")

	v.SetDefault("catalog.default_per_page", DefaultPerPage)

	v.SetDefault("store.seed_file", "")
	v.SetDefault("store.subjects", DefaultEntityCount)
	v.SetDefault("store.samples", DefaultEntityCount)
	v.SetDefault("store.files", DefaultEntityCount)
	v.SetDefault("store.random_seed", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".ccdi-catalog"))
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("CCDI_CATALOG")
	v.AutomaticEnv()

	_ = v.BindEnv("api.listen_addr", "CCDI_CATALOG_API_LISTEN_ADDR")
	_ = v.BindEnv("api.base_url", "CCDI_CATALOG_API_BASE_URL")
	_ = v.BindEnv("catalog.default_per_page", "CCDI_CATALOG_DEFAULT_PER_PAGE")
	_ = v.BindEnv("store.seed_file", "CCDI_CATALOG_SEED_FILE")
	_ = v.BindEnv("store.random_seed", "CCDI_CATALOG_RANDOM_SEED")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are set and consistent.
func (c *Config) Validate() error {
	if c.API.ListenAddr == "" {
		return fmt.Errorf("api.listen_addr must not be empty")
	}
	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("api.base_url must be an absolute URL, got %q", c.API.BaseURL)
		}
	}
	if c.Catalog.DefaultPerPage <= 0 {
		return fmt.Errorf("catalog.default_per_page must be greater than 0")
	}
	if c.Store.SeedFile == "" {
		// Generated catalogs need at least one entity of every type.
		if c.Store.Subjects <= 0 {
			return fmt.Errorf("store.subjects must be greater than 0")
		}
		if c.Store.Samples <= 0 {
			return fmt.Errorf("store.samples must be greater than 0")
		}
		if c.Store.Files <= 0 {
			return fmt.Errorf("store.files must be greater than 0")
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
