package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pluqqy/configviewer/pkg/models"
	"gopkg.in/yaml.v3"
)

const (
	AppDir       = "configviewer"
	SettingsFile = "settings.yaml"
)

// DefaultSettingsPath returns $XDG_CONFIG_HOME/configviewer/settings.yaml
// (or the platform equivalent).
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, SettingsFile), nil
}

// ReadSettings loads settings from path. A missing file yields the
// defaults; keys absent from the file keep their default values.
func ReadSettings(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	if path == "" {
		var err error
		path, err = DefaultSettingsPath()
		if err != nil {
			return settings, nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML %s: %w", path, err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}

	return settings, nil
}

// ValidateSettings rejects values the flow cannot work with
func ValidateSettings(s *models.Settings) error {
	if s.Probe.TimeoutMs <= 0 {
		return fmt.Errorf("probe.timeout_ms must be positive, got %d", s.Probe.TimeoutMs)
	}
	if s.Probe.ReachablePauseMs < 0 {
		return fmt.Errorf("probe.reachable_pause_ms must not be negative, got %d", s.Probe.ReachablePauseMs)
	}
	if s.Fetch.TimeoutMs < 0 {
		return fmt.Errorf("fetch.timeout_ms must not be negative, got %d", s.Fetch.TimeoutMs)
	}
	if len(s.Launch.StartCommand) == 0 {
		return fmt.Errorf("launch.start_command must not be empty")
	}
	if s.Server.DefaultTab != "" {
		if _, err := models.ParseTab(s.Server.DefaultTab); err != nil {
			return fmt.Errorf("server.default_tab: %w", err)
		}
	}
	return nil
}
