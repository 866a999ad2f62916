// Package config handles configuration loading and management for Rogue-Day.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the Rogue-Day client.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	TUI      TUIConfig      `mapstructure:"tui"`
	Feedback FeedbackConfig `mapstructure:"feedback"`
	Journal  JournalConfig  `mapstructure:"journal"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	// BaseURL is the backend root, e.g. https://rogueday.example.com/api.
	BaseURL string `mapstructure:"base_url"`
	// InitData is the signed Telegram WebApp init data blob. When set it
	// is sent on every request; the backend validates the signature.
	InitData string `mapstructure:"init_data"`
	// TelegramID identifies the user directly when the backend runs in
	// dev mode without signature validation.
	TelegramID int64         `mapstructure:"telegram_id"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// TUIConfig holds TUI display settings.
type TUIConfig struct {
	// RefreshRate is the dashboard redraw interval. The countdown still
	// ticks at one second regardless.
	RefreshRate time.Duration `mapstructure:"refresh_rate"`
}

// FeedbackConfig holds completion feedback toggles.
type FeedbackConfig struct {
	Sounds        bool `mapstructure:"sounds"`
	Notifications bool `mapstructure:"notifications"`
}

// JournalConfig holds local journal cache settings.
type JournalConfig struct {
	// Path overrides the journal database location. Empty means the
	// XDG default.
	Path string `mapstructure:"path"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ROGUEDAY_API_URL, ROGUEDAY_INIT_DATA, ROGUEDAY_TELEGRAM_ID)
// 2. Project config (.rogueday.yaml in current directory or parent)
// 3. User config (~/.config/rogueday/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("api.base_url", "ROGUEDAY_API_URL")
	v.BindEnv("api.init_data", "ROGUEDAY_INIT_DATA")
	v.BindEnv("api.telegram_id", "ROGUEDAY_TELEGRAM_ID")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.API.InitData = expandEnv(cfg.API.InitData)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.API.InitData = expandEnv(cfg.API.InitData)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.init_data", cfg.API.InitData)
	v.Set("api.telegram_id", cfg.API.TelegramID)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("tui.refresh_rate", cfg.TUI.RefreshRate.String())
	v.Set("feedback.sounds", cfg.Feedback.Sounds)
	v.Set("feedback.notifications", cfg.Feedback.Notifications)
	v.Set("journal.path", cfg.Journal.Path)

	return v.WriteConfig()
}

// Validate checks that the configuration can reach a backend.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required (set ROGUEDAY_API_URL or edit %s)", GetUserConfigPath())
	}
	if c.API.InitData == "" && c.API.TelegramID == 0 {
		return fmt.Errorf("either api.init_data or api.telegram_id must be set")
	}
	return nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "")
	v.SetDefault("api.init_data", "")
	v.SetDefault("api.telegram_id", 0)
	v.SetDefault("api.timeout", "15s")

	v.SetDefault("tui.refresh_rate", "1s")

	v.SetDefault("feedback.sounds", true)
	v.SetDefault("feedback.notifications", true)

	v.SetDefault("journal.path", "")
}

// getUserConfigDir returns the XDG config directory for Rogue-Day.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "rogueday")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "rogueday")
	}
	return filepath.Join(home, ".config", "rogueday")
}

// findProjectConfig searches for .rogueday.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".rogueday.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Timeout: 15 * time.Second,
		},
		TUI: TUIConfig{
			RefreshRate: time.Second,
		},
		Feedback: FeedbackConfig{
			Sounds:        true,
			Notifications: true,
		},
	}
}
