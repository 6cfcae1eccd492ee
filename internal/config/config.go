// Package config loads the persistent application configuration: JSON file
// defaults overlaid with environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"finlens/internal/fetch"
)

// Config is the persistent application configuration.
type Config struct {
	// RefreshIntervalSeconds is the minimum spacing between automatic
	// refreshes.
	RefreshIntervalSeconds int `json:"refresh_interval_seconds" envconfig:"REFRESH_INTERVAL_SECONDS"`

	// PageSize is the number of items shown per page.
	PageSize int `json:"page_size" envconfig:"PAGE_SIZE"`

	// MaxTotal is the news cache capacity.
	MaxTotal int `json:"max_total" envconfig:"MAX_TOTAL"`

	// TimeZone is the display zone for publish times.
	TimeZone string `json:"time_zone" envconfig:"TIME_ZONE"`

	// Completion holds the language-model settings. Without an API key the
	// analysis action reports a clear failure; browsing is unaffected.
	Completion CompletionConfig `json:"completion"`

	// Sources are the news feeds polled on each refresh.
	Sources []fetch.Source `json:"sources"`

	// DBPath overrides the default history database location.
	DBPath string `json:"db_path" envconfig:"DB_PATH"`
}

// CompletionConfig holds settings for the completion provider.
type CompletionConfig struct {
	APIKey    string `json:"api_key,omitempty" envconfig:"API_KEY"`
	Model     string `json:"model,omitempty" envconfig:"MODEL"`
	Endpoint  string `json:"endpoint,omitempty" envconfig:"ENDPOINT"`
	Preferred string `json:"preferred,omitempty" envconfig:"PREFERRED"`

	// OpenAIKey enables the fallback provider.
	OpenAIKey string `json:"openai_api_key,omitempty" envconfig:"OPENAI_API_KEY"`
}

// Default returns sensible defaults.
func Default() *Config {
	return &Config{
		RefreshIntervalSeconds: 120,
		PageSize:               50,
		MaxTotal:               1500,
		TimeZone:               "Asia/Shanghai",
		Completion: CompletionConfig{
			Model:     "glm-4-flash",
			Preferred: "glm",
		},
		Sources: []fetch.Source{
			{Type: "flash", Name: "THS Flash", URL: "https://news.10jqka.com.cn/tapp/news/push/stock/"},
		},
	}
}

// DataDir returns the application data directory (~/.finlens).
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".finlens")
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(DataDir(), "config.json")
}

// Load reads the config file, falling back to defaults when it is missing
// or malformed, then overlays FINLENS_* environment variables. The
// ZHIPU_API_KEY and OPENAI_API_KEY variables are honored directly so keys
// never need to live in the file.
func Load() (*Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(Path()); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			// A broken file should not take the dashboard down.
			cfg = Default()
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := envconfig.Process("FINLENS", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if key := os.Getenv("ZHIPU_API_KEY"); key != "" && cfg.Completion.APIKey == "" {
		cfg.Completion.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.Completion.OpenAIKey == "" {
		cfg.Completion.OpenAIKey = key
	}

	cfg.normalize()
	return cfg, nil
}

// Save writes the config to disk. Restrictive permissions: the file can
// hold API keys.
func (c *Config) Save() error {
	if err := os.MkdirAll(DataDir(), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(Path(), data, 0600)
}

// normalize backfills zero values with defaults.
func (c *Config) normalize() {
	def := Default()
	if c.RefreshIntervalSeconds <= 0 {
		c.RefreshIntervalSeconds = def.RefreshIntervalSeconds
	}
	if c.PageSize <= 0 {
		c.PageSize = def.PageSize
	}
	if c.MaxTotal <= 0 {
		c.MaxTotal = def.MaxTotal
	}
	if c.TimeZone == "" {
		c.TimeZone = def.TimeZone
	}
	if len(c.Sources) == 0 {
		c.Sources = def.Sources
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(DataDir(), "news.db")
	}
}
