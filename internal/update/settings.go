package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
	"github.com/AmaliaEG/ActNext-sub000/internal/views"
)

const (
	settingsRowTheme = iota
	settingsRowLanguage
	settingsRowNotifications
	settingsRowName
	settingsRowResetProfile
	settingsRowCount
)

var themeCycle = []model.ThemeMode{model.ThemeSystem, model.ThemeLight, model.ThemeDark}

var languageCycle = []string{"en", "da", "de"}

func (m Model) handleSettingsKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "j", "down":
		if m.Settings.Cursor < settingsRowCount-1 {
			m.Settings.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Settings.Cursor > 0 {
			m.Settings.Cursor--
		}
		return m, nil
	case "enter", " ", "right":
		return m.activateSettingsRow()
	case "esc":
		m.Screen = ScreenFeed
		return m, nil
	}
	return m, nil
}

func (m Model) activateSettingsRow() (tea.Model, tea.Cmd) {
	switch m.Settings.Cursor {
	case settingsRowTheme:
		next := nextTheme(m.Stores.Settings.Current().ThemeMode)
		if err := m.Stores.Settings.UpdateTheme(context.Background(), next); err != nil {
			return m.withError(err)
		}
		m.Status = StatusBar{Text: "theme: " + string(next), IsError: false}
	case settingsRowLanguage:
		next := nextLanguage(m.Stores.Settings.Current().Language)
		if err := m.Stores.Settings.SetLanguage(context.Background(), next); err != nil {
			return m.withError(err)
		}
		m.Status = StatusBar{Text: "language: " + next, IsError: false}
	case settingsRowNotifications:
		if err := m.Stores.Settings.ToggleNotifications(context.Background()); err != nil {
			return m.withError(err)
		}
	case settingsRowName:
		m.Settings.EditingName = true
		m.nameInput.SetValue(m.Stores.Profile.Current().Name)
		m.nameInput.Focus()
	case settingsRowResetProfile:
		if err := m.Stores.Profile.Reset(context.Background()); err != nil {
			return m.withError(err)
		}
		m.Status = StatusBar{Text: "profile reset", IsError: false}
	}
	return m, nil
}

func nextTheme(cur model.ThemeMode) model.ThemeMode {
	for i, mode := range themeCycle {
		if mode == cur {
			return themeCycle[(i+1)%len(themeCycle)]
		}
	}
	return themeCycle[0]
}

func nextLanguage(cur string) string {
	for i, lang := range languageCycle {
		if lang == cur {
			return languageCycle[(i+1)%len(languageCycle)]
		}
	}
	return languageCycle[0]
}

func (m Model) handleNameEditorKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.Settings.EditingName = false
		m.nameInput.Blur()
		return m, nil
	case "enter":
		name := m.nameInput.Value()
		m.Settings.EditingName = false
		m.nameInput.Blur()
		if err := m.Stores.Profile.Update(context.Background(), model.ProfileUpdate{Name: &name}); err != nil {
			return m.withError(err)
		}
		m.Status = StatusBar{Text: "profile saved", IsError: false}
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(key)
	return m, cmd
}

func (m Model) renderSettingsView() string {
	settings := m.Stores.Settings.Current()
	profile := m.Stores.Profile.Current()
	return views.RenderSettingsPanel(views.SettingsPanelData{
		Cursor:        m.Settings.Cursor,
		Theme:         string(settings.ThemeMode),
		Language:      settings.Language,
		Notifications: settings.NotificationsEnabled,
		ProfileName:   profile.Name,
		ProfileEmail:  profile.Email,
		ProfileCode:   profile.Code,
		EditingName:   m.Settings.EditingName,
		NameEditor:    m.nameInput.View(),
	})
}
