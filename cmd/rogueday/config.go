package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/rogueday/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify Rogue-Day configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/rogueday/config.yaml
Project-specific overrides can be placed in .rogueday.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	// Mask init data if set
	initDataDisplay := "(not set)"
	if cfg.API.InitData != "" {
		initDataDisplay = "****"
	}

	fmt.Printf("api.base_url: %s\n", cfg.API.BaseURL)
	fmt.Printf("api.init_data: %s\n", initDataDisplay)
	fmt.Printf("api.telegram_id: %d\n", cfg.API.TelegramID)
	fmt.Printf("api.timeout: %s\n", cfg.API.Timeout)
	fmt.Printf("tui.refresh_rate: %s\n", cfg.TUI.RefreshRate)
	fmt.Printf("feedback.sounds: %t\n", cfg.Feedback.Sounds)
	fmt.Printf("feedback.notifications: %t\n", cfg.Feedback.Notifications)
	fmt.Printf("journal.path: %s\n", cfg.Journal.Path)
	fmt.Printf("\nConfig file: %s\n", config.GetUserConfigPath())
	if project := config.GetProjectConfigPath(); project != "" {
		fmt.Printf("Project overrides: %s\n", project)
	}
}

// displayConfigKey prints one configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	switch key {
	case "api.base_url":
		fmt.Println(cfg.API.BaseURL)
	case "api.telegram_id":
		fmt.Println(cfg.API.TelegramID)
	case "api.timeout":
		fmt.Println(cfg.API.Timeout)
	case "tui.refresh_rate":
		fmt.Println(cfg.TUI.RefreshRate)
	case "feedback.sounds":
		fmt.Println(cfg.Feedback.Sounds)
	case "feedback.notifications":
		fmt.Println(cfg.Feedback.Notifications)
	case "journal.path":
		fmt.Println(cfg.Journal.Path)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config key: %s\n", key)
		os.Exit(1)
	}
}

// setConfigKey updates one configuration value and saves.
func setConfigKey(cfg *config.Config, key, value string) {
	var err error
	switch key {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.init_data":
		cfg.API.InitData = value
	case "api.telegram_id":
		cfg.API.TelegramID, err = strconv.ParseInt(value, 10, 64)
	case "api.timeout":
		cfg.API.Timeout, err = time.ParseDuration(value)
	case "tui.refresh_rate":
		cfg.TUI.RefreshRate, err = time.ParseDuration(value)
	case "feedback.sounds":
		cfg.Feedback.Sounds, err = strconv.ParseBool(value)
	case "feedback.notifications":
		cfg.Feedback.Notifications, err = strconv.ParseBool(value)
	case "journal.path":
		cfg.Journal.Path = value
	default:
		fmt.Fprintf(os.Stderr, "Unknown config key: %s\n", key)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid value for %s: %v\n", key, err)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Set %s = %s\n", key, value)
}
