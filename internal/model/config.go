package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// APIConfig holds the connection settings for the kitchen backend.
type APIConfig struct {
	// BaseURL is the root URL of the backend REST API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// DepartmentID scopes cleaning items and staff lookups.
	DepartmentID string `mapstructure:"department_id" yaml:"department_id"`

	// PollIntervalSec is how often (in seconds) the schedule poller
	// re-fetches the calendar feeds.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`

	// Renderer selects the calendar widget implementation: "fullgrid"
	// (the default cell grid) or "planner" (the agenda board).
	Renderer string `mapstructure:"renderer" yaml:"renderer"`

	// TablePollIntervalSec is the re-fetch interval for server-mode
	// data tables.
	TablePollIntervalSec int `mapstructure:"table_poll_interval_sec" yaml:"table_poll_interval_sec"`

	// PageSize is the default page size for data tables.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/prepline/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "prepline", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		API: APIConfig{
			PollIntervalSec: 120,
		},
		Display: DisplayConfig{
			Theme:                "default",
			Renderer:             "fullgrid",
			TablePollIntervalSec: 60,
			PageSize:             25,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api.poll_interval_sec", 120)
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.renderer", "fullgrid")
	v.SetDefault("display.table_poll_interval_sec", 60)
	v.SetDefault("display.page_size", 25)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.API.PollIntervalSec <= 0 {
		cfg.API.PollIntervalSec = 120
	}
	if cfg.Display.TablePollIntervalSec <= 0 {
		cfg.Display.TablePollIntervalSec = 60
	}
	if cfg.Display.PageSize <= 0 {
		cfg.Display.PageSize = 25
	}
	if cfg.Display.Renderer == "" {
		cfg.Display.Renderer = "fullgrid"
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("api", cfg.API)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
