package update

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
	"github.com/AmaliaEG/ActNext-sub000/internal/notify"
	"github.com/AmaliaEG/ActNext-sub000/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 2)
	if m.Engine != nil {
		cmds = append(cmds, waitForFollowUpCmd(m.Engine.C()))
	}
	if m.opts.SyncOnStart && m.Screen != ScreenLogin && m.service != nil {
		cmds = append(cmds, m.syncCmd())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.syncing {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case insightsFetchedMsg:
		return m.onInsightsFetched(typed.Items)
	case syncFailedMsg:
		m.syncing = false
		m.Status = StatusBar{Text: "sync failed: " + typed.Err.Error(), IsError: true}
		m.LastError = typed.Err
		return m, nil
	case feedbackPushedMsg:
		// Only the delivered events leave the queue; anything queued while
		// the push was in flight stays for the next one.
		ids := make([]string, len(typed.Pushed))
		for i, ev := range typed.Pushed {
			ids[i] = ev.ID
		}
		m.Stores.Insights.DropQueuedFeedback(ids)
		m.Status = StatusBar{Text: fmt.Sprintf("pushed %d feedback events", len(typed.Pushed)), IsError: false}
		return m, nil
	case FollowUpMsg:
		m.FollowUpLog = append(m.FollowUpLog, typed.FollowUp)
		if len(m.FollowUpLog) > 20 {
			m.FollowUpLog = m.FollowUpLog[len(m.FollowUpLog)-20:]
		}
		body := fmt.Sprintf("still open: #%d %s (%s)", typed.FollowUp.InsightID, typed.FollowUp.Title, typed.FollowUp.Company)
		m.notify("Follow up", body, "info")
		if m.Engine != nil {
			return m, waitForFollowUpCmd(m.Engine.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Screen == ScreenLogin {
		return m.handleLoginKey(key)
	}
	if m.Palette.Active {
		return m.handlePaletteKey(key)
	}
	if m.Detail.EditingComment {
		return m.handleCommentEditorKey(key)
	}
	if m.Settings.EditingName {
		return m.handleNameEditorKey(key)
	}

	switch key.String() {
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Feed:
		m.Screen = ScreenFeed
		return m, nil
	case m.Keys.Settings:
		m.Screen = ScreenSettings
		m.Settings.Cursor = 0
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "/":
		m.Palette.Active = true
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active", IsError: false}
		return m, nil
	case m.Keys.Sync:
		return m.startSync()
	}

	switch m.Screen {
	case ScreenFeed:
		return m.handleFeedKey(key)
	case ScreenDetail:
		return m.handleDetailKey(key)
	case ScreenSettings:
		return m.handleSettingsKey(key)
	}
	return m, nil
}

func (m Model) startSync() (tea.Model, tea.Cmd) {
	if m.service == nil {
		m.Status = StatusBar{Text: "no feed service configured", IsError: true}
		return m, nil
	}
	if m.syncing {
		return m, nil
	}
	m.syncing = true
	m.Status = StatusBar{Text: "sync started", IsError: false}
	return m, tea.Batch(m.syncSpinner.Tick, m.syncCmd(), m.pushFeedbackCmd())
}

func (m Model) syncCmd() tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		items, err := service.Fetch(ctx)
		if err != nil {
			return syncFailedMsg{Err: err}
		}
		return insightsFetchedMsg{Items: items}
	}
}

func (m Model) pushFeedbackCmd() tea.Cmd {
	service := m.service
	queued := m.Stores.Insights.QueuedFeedback()
	if len(queued) == 0 {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := service.PushFeedback(ctx, queued); err != nil {
			return AppErrorMsg{Err: err}
		}
		return feedbackPushedMsg{Pushed: queued}
	}
}

func (m Model) onInsightsFetched(items []model.Insight) (tea.Model, tea.Cmd) {
	m.syncing = false
	if err := m.Stores.Insights.SetInsights(context.Background(), items); err != nil {
		m.Status = StatusBar{Text: "sync failed: " + err.Error(), IsError: true}
		m.LastError = err
		return m, nil
	}
	m.Feed.Cursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("sync complete: %d insights", len(items)), IsError: false}
	if m.Engine != nil && m.notificationsEnabled() {
		notify.ScheduleForInsights(m.Engine, m.Stores.Insights.Insights(), time.Now().UTC(), m.opts.FollowUpGrace)
	}
	return m, nil
}

func waitForFollowUpCmd(ch <-chan notify.FollowUp) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-ch
		if !ok {
			return nil
		}
		return FollowUpMsg{FollowUp: f}
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		} else {
			status = "status: " + m.Status.Text
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.Screen {
	case ScreenLogin:
		leftPane = m.renderLoginView()
	case ScreenFeed:
		leftPane = m.renderFeedView()
		rightPane = m.renderDetailView() + m.renderPaletteView() + m.renderHelpIfVisible()
	case ScreenDetail:
		leftPane = m.renderDetailView()
		rightPane = m.renderPaletteView() + m.renderHelpIfVisible()
	case ScreenSettings:
		leftPane = m.renderSettingsView()
		rightPane = m.renderHelpIfVisible()
	}

	notification := ""
	if len(m.Notifications) > 0 {
		last := m.Notifications[len(m.Notifications)-1]
		notification = views.RenderNotification(last.Level, last.Body)
	}

	header := fmt.Sprintf("actnxt | %s", m.Screen)
	if m.Stores.Profile != nil {
		if name := m.Stores.Profile.Current().Name; name != "" {
			header += " | " + name
		}
	}
	footer := fmt.Sprintf("keys: %s feed | %s settings | enter detail | %s sync | / cmd | %s help | %s quit",
		m.Keys.Feed, m.Keys.Settings, m.Keys.Sync, m.Keys.Help, m.Keys.Quit)

	return views.RenderApp(views.AppData{
		Header:       header,
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notification,
		Footer:       footer,
	})
}

func (m Model) renderPaletteView() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := []string{
		"j/k or arrows  move",
		"enter          open detail",
		"l / d          like / dislike",
		"s              star",
		"a / u          archive / unarchive",
		"A              show archived",
		"c              comment (detail)",
	}
	return "\n" + views.RenderHelpPanel(views.HelpPanelData{Screen: string(m.Screen), Bindings: bindings})
}
