// Package config loads the optional CLI configuration file. A missing
// file is not an error; every field has a sensible default.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/loganlgraham/referralcrm-sub001/internal/store"
)

// DefaultPath is where the CLI looks for configuration, relative to cwd.
const DefaultPath = ".referralsla.yaml"

// Config holds CLI-level settings. Engine thresholds and the business
// window are deliberately not configurable; they are the SLA.
type Config struct {
	DBPath    string `yaml:"db_path"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	Output    string `yaml:"output"` // "ascii" or "markdown"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:    store.DefaultDBPath,
		LogLevel:  "info",
		LogFormat: "text",
		Output:    "ascii",
	}
}

// Load reads the config at path, layering it over the defaults.
// A missing file returns the defaults; a malformed one is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = store.DefaultDBPath
	}
	return cfg, nil
}
