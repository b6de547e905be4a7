package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
	"github.com/AmaliaEG/ActNext-sub000/internal/views"
)

// visibleInsights returns the feed rows in list order, hiding archived
// records unless the user has toggled them on.
func (m Model) visibleInsights() []model.Insight {
	all := m.Stores.Insights.Insights()
	if m.Feed.ShowArchived {
		return all
	}
	out := make([]model.Insight, 0, len(all))
	for _, in := range all {
		if !in.Archived {
			out = append(out, in)
		}
	}
	return out
}

func (m Model) selectedInsight() (model.Insight, bool) {
	visible := m.visibleInsights()
	if m.Feed.Cursor < 0 || m.Feed.Cursor >= len(visible) {
		return model.Insight{}, false
	}
	return visible[m.Feed.Cursor], true
}

func (m Model) handleFeedKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleInsights()

	switch key.String() {
	case "j", "down":
		if m.Feed.Cursor < len(visible)-1 {
			m.Feed.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Feed.Cursor > 0 {
			m.Feed.Cursor--
		}
		return m, nil
	case "g", "home":
		m.Feed.Cursor = 0
		return m, nil
	case "G", "end":
		if len(visible) > 0 {
			m.Feed.Cursor = len(visible) - 1
		}
		return m, nil
	case "A":
		m.Feed.ShowArchived = !m.Feed.ShowArchived
		m.Feed.Cursor = 0
		return m, nil
	case "enter":
		if in, ok := m.selectedInsight(); ok {
			m.Detail.InsightID = in.ID
			m.Screen = ScreenDetail
		}
		return m, nil
	case "l":
		return m.applyFeedback(model.FeedbackLike)
	case "d":
		return m.applyFeedback(model.FeedbackDislike)
	case "s":
		in, ok := m.selectedInsight()
		if !ok {
			return m, nil
		}
		if err := m.Stores.Insights.ToggleStar(context.Background(), in.ID, !in.Starred); err != nil {
			return m.withError(err)
		}
		return m, nil
	case "a":
		in, ok := m.selectedInsight()
		if !ok {
			return m, nil
		}
		if err := m.Stores.Insights.Archive(context.Background(), in.ID); err != nil {
			return m.withError(err)
		}
		m.Status = StatusBar{Text: "archived", IsError: false}
		m.Feed.Cursor = clampCursor(m.Feed.Cursor, len(m.visibleInsights()))
		return m, nil
	case "u":
		in, ok := m.selectedInsight()
		if !ok {
			return m, nil
		}
		if err := m.Stores.Insights.Unarchive(context.Background(), in.ID); err != nil {
			return m.withError(err)
		}
		m.Status = StatusBar{Text: "unarchived", IsError: false}
		return m, nil
	}
	return m, nil
}

func (m Model) applyFeedback(kind model.FeedbackKind) (tea.Model, tea.Cmd) {
	in, ok := m.selectedInsight()
	if !ok {
		return m, nil
	}
	if err := m.Stores.Insights.AddFeedback(context.Background(), in.ID, kind); err != nil {
		return m.withError(err)
	}
	m.Stores.Insights.QueueFeedback(in.ID, kind)
	m.Status = StatusBar{Text: string(kind) + " recorded", IsError: false}
	return m, nil
}

func (m Model) withError(err error) (tea.Model, tea.Cmd) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	return m, nil
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func (m Model) renderFeedView() string {
	now := time.Now().UTC()
	visible := m.visibleInsights()
	items := make([]views.FeedItemData, len(visible))
	for i, in := range visible {
		item := views.FeedItemData{
			ID:            in.ID,
			Title:         in.Title,
			Company:       in.CompanyName,
			FirstSentence: in.FirstSentence,
			Overdue:       in.OverdueAt(now),
			Starred:       in.Starred,
			Archived:      in.Archived,
			HasComment:    in.Comment != "",
		}
		if in.Feedback != nil {
			item.Liked = in.Feedback.Liked
			item.Disliked = in.Feedback.Disliked
		}
		items[i] = item
	}
	return views.RenderFeedPanel(views.FeedPanelData{
		Items:        items,
		Cursor:       clampCursor(m.Feed.Cursor, len(items)),
		ShowArchived: m.Feed.ShowArchived,
		Syncing:      m.syncing,
		SpinnerView:  m.syncSpinner.View(),
	})
}
