package config

import (
	"fmt"
	"time"

	"github.com/strrl/unsplash-gallery/internal/unsplash"
)

// Config holds the complete application configuration
type Config struct {
	Unsplash UnsplashConfig `yaml:"unsplash"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
}

// UnsplashConfig configures the search API client
type UnsplashConfig struct {
	AccessKey     string        `yaml:"access_key"     env:"UNSPLASH_ACCESS_KEY"`
	BaseURL       string        `yaml:"base_url"       env:"UNSPLASH_GALLERY_BASE_URL"`
	PerPage       int           `yaml:"per_page"       env:"UNSPLASH_GALLERY_PER_PAGE"`
	Orientation   string        `yaml:"orientation"    env:"UNSPLASH_GALLERY_ORIENTATION"`    // landscape|portrait|squarish
	ContentFilter string        `yaml:"content_filter" env:"UNSPLASH_GALLERY_CONTENT_FILTER"` // low|high
	Timeout       time.Duration `yaml:"timeout"        env:"UNSPLASH_GALLERY_TIMEOUT"`
}

// UIConfig configures the terminal gallery
type UIConfig struct {
	Columns int `yaml:"columns" env:"UNSPLASH_GALLERY_COLUMNS"`
}

// LogConfig configures the debug log
type LogConfig struct {
	File  string `yaml:"file"  env:"UNSPLASH_GALLERY_LOG_FILE"`
	Debug bool   `yaml:"debug" env:"UNSPLASH_GALLERY_DEBUG"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Unsplash: UnsplashConfig{
			BaseURL:       unsplash.DefaultBaseURL,
			PerPage:       unsplash.DefaultPerPage,
			ContentFilter: "low",
			Timeout:       10 * time.Second,
		},
		UI: UIConfig{
			Columns: 3,
		},
	}
}

// ClientOptions maps the config onto unsplash client options
func (c *Config) ClientOptions() unsplash.Options {
	return unsplash.Options{
		AccessKey:     c.Unsplash.AccessKey,
		BaseURL:       c.Unsplash.BaseURL,
		PerPage:       c.Unsplash.PerPage,
		Orientation:   c.Unsplash.Orientation,
		ContentFilter: c.Unsplash.ContentFilter,
		Timeout:       c.Unsplash.Timeout,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Unsplash.PerPage < 1 || c.Unsplash.PerPage > unsplash.MaxPerPage {
		return fmt.Errorf("per_page must be between 1 and %d, got %d", unsplash.MaxPerPage, c.Unsplash.PerPage)
	}
	if c.Unsplash.Orientation != "" {
		valid := map[string]bool{"landscape": true, "portrait": true, "squarish": true}
		if !valid[c.Unsplash.Orientation] {
			return fmt.Errorf("invalid orientation: %s (must be one of: landscape, portrait, squarish)", c.Unsplash.Orientation)
		}
	}
	if c.Unsplash.ContentFilter != "" && c.Unsplash.ContentFilter != "low" && c.Unsplash.ContentFilter != "high" {
		return fmt.Errorf("invalid content_filter: %s (must be low or high)", c.Unsplash.ContentFilter)
	}
	if c.Unsplash.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.UI.Columns < 1 {
		return fmt.Errorf("columns must be greater than 0")
	}
	return nil
}
