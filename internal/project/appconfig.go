package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/PartView/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.partview/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".partview")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. Missing keys keep
// their defaults; a missing file yields DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return model.AppConfig{}, err
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	normalizeConfig(&config)
	return config, nil
}

func normalizeConfig(config *model.AppConfig) {
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	if config.RecentFiles == nil {
		config.RecentFiles = []string{}
	}
}
