package model

import "errors"

var ErrInvalidThemeMode = errors.New("model: invalid theme mode")

type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

func (m ThemeMode) IsValid() bool {
	switch m {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	default:
		return false
	}
}

// Settings is the singleton app-settings record, persisted wholesale on
// every mutation.
type Settings struct {
	ThemeMode            ThemeMode `json:"themeMode"`
	Language             string    `json:"language"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
}

func DefaultSettings() Settings {
	return Settings{
		ThemeMode:            ThemeSystem,
		Language:             "en",
		NotificationsEnabled: true,
	}
}

// Session is the singleton auth-state record.
type Session struct {
	LoggedIn bool   `json:"isLoggedIn"`
	Token    string `json:"token"`
}
