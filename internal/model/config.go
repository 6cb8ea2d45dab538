package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// APIBaseURL is the root URL of the HomeReno backend.
	APIBaseURL string `mapstructure:"api_base_url" yaml:"api_base_url"`

	// APIKey is sent as the X-Api-Key header on every backend request.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// GeocoderURL is the forward-geocoding search endpoint.
	GeocoderURL string `mapstructure:"geocoder_url" yaml:"geocoder_url"`

	// Theme selects the UI color theme.
	Theme string `mapstructure:"theme" yaml:"theme"`

	// RefreshIntervalSec is how often (in seconds) the background
	// refresher re-fetches projects and contractors.
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec" yaml:"refresh_interval_sec"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/renoterm/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "renoterm", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		APIBaseURL:         "http://localhost:8080",
		APIKey:             "dev-local-key",
		GeocoderURL:        "https://nominatim.openstreetmap.org/search",
		Theme:              "default",
		RefreshIntervalSec: 120,
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("api_base_url", "http://localhost:8080")
	v.SetDefault("api_key", "dev-local-key")
	v.SetDefault("geocoder_url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("theme", "default")
	v.SetDefault("refresh_interval_sec", 120)

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

	if cfg.RefreshIntervalSec <= 0 {
		cfg.RefreshIntervalSec = 120
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

	v.Set("api_base_url", cfg.APIBaseURL)
	v.Set("api_key", cfg.APIKey)
	v.Set("geocoder_url", cfg.GeocoderURL)
	v.Set("theme", cfg.Theme)
	v.Set("refresh_interval_sec", cfg.RefreshIntervalSec)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
