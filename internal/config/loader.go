package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.unsplash-gallery.yaml",
	"~/.config/unsplash-gallery/config.yaml",
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	lookupEnv   func(string) (string, bool)
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		lookupEnv:   os.LookupEnv,
	}
}

// Load builds the configuration from, lowest priority first: built-in
// defaults, the first config file found (or customPath), then environment
// variables. Flags are applied by the caller.
func (l *Loader) Load(customPath string) (*Config, error) {
	cfg := DefaultConfig()

	if customPath != "" {
		if err := loadFromFile(cfg, expandPath(customPath)); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else if path, ok := l.findConfigFile(); ok {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	if err := l.applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) findConfigFile() (string, bool) {
	for _, path := range l.configPaths {
		expanded := expandPath(path)
		if info, err := os.Stat(expanded); err == nil && !info.IsDir() {
			return expanded, true
		}
	}
	return "", false
}

// loadFromFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// applyEnv overlays set environment variables onto cfg
func (l *Loader) applyEnv(cfg *Config) error {
	environ := map[string]string{}
	for _, key := range envKeys {
		if v, ok := l.lookupEnv(key); ok && v != "" {
			environ[key] = v
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	return nil
}

var envKeys = []string{
	"UNSPLASH_ACCESS_KEY",
	"UNSPLASH_GALLERY_BASE_URL",
	"UNSPLASH_GALLERY_PER_PAGE",
	"UNSPLASH_GALLERY_ORIENTATION",
	"UNSPLASH_GALLERY_CONTENT_FILTER",
	"UNSPLASH_GALLERY_TIMEOUT",
	"UNSPLASH_GALLERY_COLUMNS",
	"UNSPLASH_GALLERY_LOG_FILE",
	"UNSPLASH_GALLERY_DEBUG",
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
