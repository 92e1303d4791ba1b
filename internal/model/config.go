package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// PreviewSize is the maximum number of items shown per dropdown.
	PreviewSize int `mapstructure:"preview_size" yaml:"preview_size"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// BaseURL is the root URL of the backend (e.g., https://shop.example.com).
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// NotificationPath is the notifications feed endpoint path.
	NotificationPath string `mapstructure:"notification_path" yaml:"notification_path"`

	// MessagePath is the messages feed endpoint path.
	MessagePath string `mapstructure:"message_path" yaml:"message_path"`

	// PollIntervalMS is the shared poll cadence in milliseconds.
	PollIntervalMS int `mapstructure:"poll_interval_ms" yaml:"poll_interval_ms"`

	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/feedtray/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "feedtray", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		NotificationPath: "/api/notifications/",
		MessagePath:      "/api/messages/",
		PollIntervalMS:   30000,
		Display: DisplayConfig{
			PreviewSize: 5,
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
	v.SetDefault("notification_path", "/api/notifications/")
	v.SetDefault("message_path", "/api/messages/")
	v.SetDefault("poll_interval_ms", 30000)
	v.SetDefault("display.preview_size", 5)

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

	if cfg.PollIntervalMS <= 0 {
		cfg.PollIntervalMS = 30000
	}
	if cfg.Display.PreviewSize <= 0 {
		cfg.Display.PreviewSize = 5
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

	v.Set("base_url", cfg.BaseURL)
	v.Set("notification_path", cfg.NotificationPath)
	v.Set("message_path", cfg.MessagePath)
	v.Set("poll_interval_ms", cfg.PollIntervalMS)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
