package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AmaliaEG/ActNext-sub000/internal/commands"
)

func (m Model) handlePaletteKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.Palette.Active = false
		m.commandInput.Blur()
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.Palette.Active = false
		m.commandInput.Blur()
		m.commandInput.SetValue("")
		return m.runCommand(input)
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(key)
	return m, cmd
}

// runCommand parses and dispatches one palette input line. Sync and logout
// change screens or kick off async work, so their handlers only flag intent
// and the follow-up happens after Execute returns.
func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := commands.Parse(input)
	if err != nil {
		return m.withError(err)
	}

	ctx := context.Background()
	var wantSync, wantLogout bool

	result, err := commands.Execute(cmd, commands.Handlers{
		Sync: func() (commands.Result, error) {
			wantSync = true
			return commands.Result{Message: "sync started"}, nil
		},
		Star: func(args commands.StarArgs) (commands.Result, error) {
			starred := m.Stores.Insights.Starred(args.InsightID)
			if err := m.Stores.Insights.ToggleStar(ctx, args.InsightID, !starred); err != nil {
				return commands.Result{}, err
			}
			if starred {
				return commands.Result{Message: fmt.Sprintf("unstarred #%d", args.InsightID)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("starred #%d", args.InsightID)}, nil
		},
		Archive: func(args commands.ArchiveArgs) (commands.Result, error) {
			if err := m.Stores.Insights.Archive(ctx, args.InsightID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("archived #%d", args.InsightID)}, nil
		},
		Unarchive: func(args commands.ArchiveArgs) (commands.Result, error) {
			if err := m.Stores.Insights.Unarchive(ctx, args.InsightID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("unarchived #%d", args.InsightID)}, nil
		},
		Comment: func(args commands.CommentArgs) (commands.Result, error) {
			if err := m.Stores.Insights.UpdateComment(ctx, args.InsightID, args.Text); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("comment saved on #%d", args.InsightID)}, nil
		},
		Logout: func() (commands.Result, error) {
			wantLogout = true
			if err := m.Stores.Auth.Logout(ctx); err != nil {
				return commands.Result{Message: "logged out"}, err
			}
			return commands.Result{Message: "logged out"}, nil
		},
	})
	if err != nil {
		if wantLogout {
			// Memory is reset regardless, so the screen switch still happens.
			return m.afterLogout(result, err)
		}
		return m.withError(err)
	}

	m.Status = StatusBar{Text: result.Message, IsError: false}
	if wantSync {
		return m.startSync()
	}
	if wantLogout {
		return m.afterLogout(result, nil)
	}
	return m, nil
}

func (m Model) afterLogout(result commands.Result, err error) (tea.Model, tea.Cmd) {
	m.Screen = ScreenLogin
	m.tokenInput.SetValue("")
	m.tokenInput.Focus()
	m.Detail = DetailState{}
	m.Feed = FeedState{}
	if err != nil {
		m.Status = StatusBar{Text: "logged out (session cleanup failed: " + err.Error() + ")", IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: result.Message, IsError: false}
	return m, nil
}
