package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the product browser configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	HTTP    HTTPConfig    `yaml:"http"`
	Logging LoggingConfig `yaml:"logging"`
}

// CatalogConfig configures the one-shot catalog fetch.
type CatalogConfig struct {
	URL     string `yaml:"url"`
	Timeout string `yaml:"timeout"` // Go duration; "0" means no timeout
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Port string `yaml:"port"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			URL:     "https://fakestoreapi.com",
			Timeout: "10s",
		},
		HTTP: HTTPConfig{
			Port: "8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads a YAML file over the defaults, then applies environment
// overrides. An empty path or a missing file yields defaults plus env.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("CATALOG_URL"); url != "" {
		c.Catalog.URL = url
	}
	if t := os.Getenv("CATALOG_TIMEOUT"); t != "" {
		c.Catalog.Timeout = t
	}
	if port := os.Getenv("PORT"); port != "" {
		c.HTTP.Port = port
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
}

// CatalogTimeout returns the fetch timeout; zero disables it.
func (c *Config) CatalogTimeout() time.Duration {
	d, err := time.ParseDuration(c.Catalog.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// Addr is the listen address for the API server.
func (c *Config) Addr() string {
	if strings.Contains(c.HTTP.Port, ":") {
		return c.HTTP.Port
	}
	return ":" + c.HTTP.Port
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Catalog.URL) == "" {
		return fmt.Errorf("catalog url not configured (set catalog.url or CATALOG_URL)")
	}
	if c.Catalog.Timeout != "" {
		d, err := time.ParseDuration(c.Catalog.Timeout)
		if err != nil {
			return fmt.Errorf("invalid catalog timeout %q: %w", c.Catalog.Timeout, err)
		}
		if d < 0 {
			return fmt.Errorf("catalog timeout must not be negative: %s", c.Catalog.Timeout)
		}
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
