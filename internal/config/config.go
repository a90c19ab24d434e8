// Package config reads user settings from config.yaml in the data directory
// and environment overrides from optional .env files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/streakstep/internal/constants"
	"github.com/julianstephens/streakstep/internal/logger"
	"github.com/julianstephens/streakstep/internal/models"
	"github.com/julianstephens/streakstep/internal/utils"
)

// Defaults returns the settings used when no config file exists
func Defaults() models.Settings {
	return models.Settings{
		PreciseTimer:  false,
		Timezone:      constants.DefaultTimezone,
		AutoBackup:    true,
		DebugControls: false,
	}
}

// Path returns the config file location inside dataDir
func Path(dataDir string) string {
	return filepath.Join(dataDir, constants.ConfigFileName)
}

// Load reads the settings for dataDir. A missing file yields Defaults.
// Environment variables override file values.
func Load(dataDir string) (models.Settings, error) {
	settings, err := LoadFile(dataDir)
	if err != nil {
		return settings, err
	}
	if err := applyEnv(&settings); err != nil {
		return settings, err
	}
	if err := utils.ValidateTimezone(settings.Timezone); err != nil {
		return settings, err
	}
	return settings, nil
}

// LoadFile reads config.yaml only, ignoring the environment
func LoadFile(dataDir string) (models.Settings, error) {
	settings := Defaults()

	data, err := os.ReadFile(Path(dataDir))
	switch {
	case os.IsNotExist(err):
		return settings, nil
	case err != nil:
		return settings, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Defaults(), fmt.Errorf("unmarshal config: %w", err)
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if err := utils.ValidateTimezone(settings.Timezone); err != nil {
		return settings, err
	}
	return settings, nil
}

// Save writes settings to config.yaml in dataDir
func Save(dataDir string, settings models.Settings) error {
	if err := utils.ValidateTimezone(settings.Timezone); err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(Path(dataDir), data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func applyEnv(s *models.Settings) error {
	if tz, ok := os.LookupEnv(constants.EnvPrefix + "TIMEZONE"); ok && tz != "" {
		s.Timezone = tz
	}
	bools := []struct {
		name string
		dst  *bool
	}{
		{"PRECISE_TIMER", &s.PreciseTimer},
		{"AUTO_BACKUP", &s.AutoBackup},
		{"DEBUG_CONTROLS", &s.DebugControls},
	}
	for _, b := range bools {
		raw, ok := os.LookupEnv(constants.EnvPrefix + b.name)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", constants.EnvPrefix, b.name, err)
		}
		*b.dst = v
	}
	return nil
}

// LoadDotenv loads every existing file among paths into the process
// environment without overriding variables that are already set.
func LoadDotenv(paths ...string) []string {
	var loaded []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logger.Warn("Failed to load env file", "path", p, "error", err)
			continue
		}
		loaded = append(loaded, p)
	}
	return loaded
}
