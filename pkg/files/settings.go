package files

import (
	"path/filepath"

	"github.com/cmsdesk/cmsdesk-cli/pkg/models"
)

// ReadSettings loads settings.yaml, filling unset fields from the defaults
func ReadSettings() (*models.Settings, error) {
	settings := models.DefaultSettings()
	if _, err := readYAML(filepath.Join(ProjectDir, SettingsFile), "settings", settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func WriteSettings(settings *models.Settings) error {
	return writeYAML(filepath.Join(ProjectDir, SettingsFile), "settings", settings)
}

// ReadSettingsOrDefault never fails; unreadable settings fall back to defaults
func ReadSettingsOrDefault() *models.Settings {
	settings, err := ReadSettings()
	if err != nil {
		return models.DefaultSettings()
	}
	return settings
}
