package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
	"github.com/AmaliaEG/ActNext-sub000/internal/views"
)

func (m Model) handleDetailKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	in, ok := m.Stores.Insights.Get(m.Detail.InsightID)
	if !ok {
		m.Screen = ScreenFeed
		return m, nil
	}

	switch key.String() {
	case "esc", "backspace":
		m.Screen = ScreenFeed
		return m, nil
	case "l":
		return m.applyDetailFeedback(in.ID, model.FeedbackLike)
	case "d":
		return m.applyDetailFeedback(in.ID, model.FeedbackDislike)
	case "s":
		if err := m.Stores.Insights.ToggleStar(context.Background(), in.ID, !in.Starred); err != nil {
			return m.withError(err)
		}
		return m, nil
	case "a":
		if err := m.Stores.Insights.Archive(context.Background(), in.ID); err != nil {
			return m.withError(err)
		}
		m.Screen = ScreenFeed
		m.Status = StatusBar{Text: "archived", IsError: false}
		return m, nil
	case "u":
		if err := m.Stores.Insights.Unarchive(context.Background(), in.ID); err != nil {
			return m.withError(err)
		}
		m.Status = StatusBar{Text: "unarchived", IsError: false}
		return m, nil
	case "c":
		m.Detail.EditingComment = true
		m.commentArea.SetValue(in.Comment)
		m.commentArea.Focus()
		return m, nil
	}
	return m, nil
}

func (m Model) applyDetailFeedback(id int, kind model.FeedbackKind) (tea.Model, tea.Cmd) {
	if err := m.Stores.Insights.AddFeedback(context.Background(), id, kind); err != nil {
		return m.withError(err)
	}
	m.Stores.Insights.QueueFeedback(id, kind)
	m.Status = StatusBar{Text: string(kind) + " recorded", IsError: false}
	return m, nil
}

func (m Model) handleCommentEditorKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.Detail.EditingComment = false
		m.commentArea.Blur()
		return m, nil
	case "enter":
		text := m.commentArea.Value()
		m.Detail.EditingComment = false
		m.commentArea.Blur()
		if err := m.Stores.Insights.UpdateComment(context.Background(), m.Detail.InsightID, text); err != nil {
			return m.withError(err)
		}
		m.Status = StatusBar{Text: "comment saved", IsError: false}
		return m, nil
	}
	var cmd tea.Cmd
	m.commentArea, cmd = m.commentArea.Update(key)
	return m, cmd
}

func (m Model) renderDetailView() string {
	in, ok := m.Stores.Insights.Get(m.Detail.InsightID)
	if !ok {
		if sel, selOK := m.selectedInsight(); selOK {
			in, ok = sel, true
		}
	}
	if !ok {
		return views.RenderDetailPanel(views.DetailPanelData{})
	}

	assigned := ""
	if !in.DateAssigned.IsZero() {
		assigned = in.DateAssigned.Format("2006-01-02")
	}
	data := views.DetailPanelData{
		ID:             in.ID,
		Title:          in.Title,
		Company:        in.CompanyName,
		AssignedAt:     assigned,
		Overdue:        in.OverdueAt(time.Now().UTC()),
		DescriptionMD:  views.RenderMarkdown(in.Description, string(m.Stores.Settings.Current().ThemeMode)),
		Comment:        in.Comment,
		Starred:        in.Starred,
		Archived:       in.Archived,
		EditingComment: m.Detail.EditingComment,
		CommentEditor:  m.commentArea.View(),
	}
	if in.Feedback != nil {
		data.Liked = in.Feedback.Liked
		data.Disliked = in.Feedback.Disliked
	}
	return views.RenderDetailPanel(data)
}
