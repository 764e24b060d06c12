package models

import (
	"github.com/pulsecheck/pulse/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDefaultUser:
			settings.DefaultUser = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingAutoBookEnabled:
			settings.AutoBookEnabled = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingDefaultUser:          settings.DefaultUser,
		constants.SettingNotificationsEnabled: boolString(settings.NotificationsEnabled),
		constants.SettingAutoBookEnabled:      boolString(settings.AutoBookEnabled),
	}
}

// DefaultSettings returns the settings written by a fresh init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:             constants.DefaultTimezone,
		DefaultUser:          constants.DefaultUser,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		AutoBookEnabled:      constants.DefaultAutoBookEnabled,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DefaultUser == "" {
		settings.DefaultUser = constants.DefaultUser
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// FillDefaultSettings adds a default for every settings key missing from data
// and returns the completed settings. Stored values are kept.
func FillDefaultSettings(data map[string]string) (Settings, error) {
	merged := SettingsToMap(DefaultSettings())
	for k, v := range data {
		merged[k] = v
	}
	settings, err := MapToSettings(merged)
	if err != nil {
		return Settings{}, err
	}
	ApplyDefaultSettings(&settings)
	return settings, nil
}
