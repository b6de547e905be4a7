package update

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AmaliaEG/ActNext-sub000/internal/identity"
	"github.com/AmaliaEG/ActNext-sub000/internal/views"
)

func (m Model) handleLoginKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c":
		m.Quitting = true
		return m, tea.Quit
	case "enter":
		return m.submitLogin()
	}
	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(key)
	return m, cmd
}

// submitLogin parses the pasted ID token, records the session and resolves
// the profile before switching to the feed.
func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	token := m.tokenInput.Value()
	ident, err := identity.FromToken(token)
	if err != nil {
		m.loginErr = err.Error()
		return m, nil
	}

	ctx := context.Background()
	if err := m.Stores.Auth.Login(ctx, token); err != nil {
		// The session is committed in memory even when the write fails.
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
	m.Stores.Profile.Load(ctx, &ident)

	m.loginErr = ""
	m.tokenInput.Blur()
	m.Screen = ScreenFeed
	m.Status = StatusBar{Text: "logged in as " + ident.Name, IsError: false}
	if m.opts.SyncOnStart && m.service != nil {
		return m.startSync()
	}
	return m, nil
}

func (m Model) renderLoginView() string {
	return views.RenderLoginPanel(views.LoginPanelData{
		TokenEditor: m.tokenInput.View(),
		ErrorText:   m.loginErr,
	})
}
