// Package config loads application configuration from defaults, an optional
// JSON file and COMMANDKIT_* environment variables, in increasing priority.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"commandkit/infrastructure/logging"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "COMMANDKIT_"

// Config is the application configuration.
type Config struct {
	LogLevel     string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogDir       string `koanf:"log_dir"`
	LogJSON      bool   `koanf:"log_json"`
	CatalogDir   string `koanf:"catalog_dir" validate:"required_if=WatchCatalog true"`
	WatchCatalog bool   `koanf:"watch_catalog"`
	WindowTitle  string `koanf:"window_title" validate:"required"`
	BusBuffer    int    `koanf:"bus_buffer" validate:"min=1,max=100000"`
}

// GetDefaults returns the default configuration values keyed by config key.
func GetDefaults() map[string]any {
	return map[string]any{
		"log_level":     "info",
		"log_dir":       "",
		"log_json":      false,
		"catalog_dir":   "",
		"watch_catalog": false,
		"window_title":  "Commands",
		"bus_buffer":    100,
	}
}

// Load builds the configuration. An empty path skips the file layer; a
// non-empty path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Logging converts the logging keys into a logging.Config.
func (c *Config) Logging() (*logging.Config, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Dir = c.LogDir
	lc.JSON = c.LogJSON
	return lc, nil
}

// envTransform converts environment variable names to config keys.
// Example: COMMANDKIT_LOG_LEVEL -> log_level
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
