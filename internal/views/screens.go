package views

import (
	"fmt"
	"strings"
)

type FeedItemData struct {
	ID            int
	Title         string
	Company       string
	FirstSentence string
	Overdue       bool
	Starred       bool
	Liked         bool
	Disliked      bool
	Archived      bool
	HasComment    bool
}

type FeedPanelData struct {
	Items        []FeedItemData
	Cursor       int
	ShowArchived bool
	ListView     string
	Syncing      bool
	SpinnerView  string
}

func RenderFeedPanel(data FeedPanelData) string {
	var b strings.Builder
	title := "insights"
	if data.ShowArchived {
		title = "insights (archived shown)"
	}
	b.WriteString(title + "\n")
	if data.Syncing {
		b.WriteString("sync: " + data.SpinnerView + " running\n")
	}
	if len(data.Items) == 0 {
		b.WriteString("(no insights — press S to sync)")
		return b.String()
	}
	for i, item := range data.Items {
		cursor := "  "
		if i == data.Cursor {
			cursor = "> "
		}
		b.WriteString(cursor + feedItemLine(item) + "\n")
		if i == data.Cursor && item.FirstSentence != "" {
			b.WriteString("    " + mutedStyle.Render(item.FirstSentence) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func feedItemLine(item FeedItemData) string {
	markers := make([]string, 0, 4)
	if item.Overdue {
		markers = append(markers, overdueStyle.Render("overdue"))
	}
	if item.Starred {
		markers = append(markers, starStyle.Render("*"))
	}
	switch {
	case item.Liked:
		markers = append(markers, "+1")
	case item.Disliked:
		markers = append(markers, "-1")
	}
	if item.HasComment {
		markers = append(markers, "c")
	}
	if item.Archived {
		markers = append(markers, "[archived]")
	}
	suffix := ""
	if len(markers) > 0 {
		suffix = " " + strings.Join(markers, " ")
	}
	return fmt.Sprintf("#%d %s — %s%s", item.ID, item.Title, item.Company, suffix)
}

type DetailPanelData struct {
	ID             int
	Title          string
	Company        string
	AssignedAt     string
	Overdue        bool
	DescriptionMD  string
	Comment        string
	Liked          bool
	Disliked       bool
	Starred        bool
	Archived       bool
	EditingComment bool
	CommentEditor  string
}

func RenderDetailPanel(data DetailPanelData) string {
	if data.ID == 0 {
		return "detail:\n(no selection)"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s\n%s | assigned %s\n", data.ID, data.Title, data.Company, data.AssignedAt)
	if data.Overdue {
		b.WriteString(overdueStyle.Render("overdue") + "\n")
	}
	state := make([]string, 0, 3)
	if data.Starred {
		state = append(state, "starred")
	}
	if data.Liked {
		state = append(state, "liked")
	}
	if data.Disliked {
		state = append(state, "disliked")
	}
	if data.Archived {
		state = append(state, "archived")
	}
	if len(state) > 0 {
		b.WriteString(strings.Join(state, ", ") + "\n")
	}
	b.WriteString("\n" + data.DescriptionMD + "\n")
	if data.EditingComment {
		b.WriteString("\ncomment (enter to save, esc to cancel):\n" + data.CommentEditor)
	} else if data.Comment != "" {
		b.WriteString("\ncomment: " + data.Comment)
	}
	return b.String()
}

type SettingsPanelData struct {
	Cursor        int
	Theme         string
	Language      string
	Notifications bool
	ProfileName   string
	ProfileEmail  string
	ProfileCode   string
	EditingName   bool
	NameEditor    string
}

var settingsRows = []string{"theme", "language", "notifications", "name", "reset profile"}

func RenderSettingsPanel(data SettingsPanelData) string {
	values := []string{
		data.Theme,
		data.Language,
		onOff(data.Notifications),
		data.ProfileName,
		"",
	}
	var b strings.Builder
	b.WriteString("settings\n")
	for i, row := range settingsRows {
		cursor := "  "
		if i == data.Cursor {
			cursor = "> "
		}
		line := cursor + row
		if values[i] != "" {
			line += ": " + values[i]
		}
		b.WriteString(line + "\n")
	}
	if data.EditingName {
		b.WriteString("\nname (enter to save, esc to cancel):\n" + data.NameEditor + "\n")
	}
	fmt.Fprintf(&b, "\nprofile: %s <%s> code %s", data.ProfileName, data.ProfileEmail, data.ProfileCode)
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

type LoginPanelData struct {
	TokenEditor string
	ErrorText   string
}

func RenderLoginPanel(data LoginPanelData) string {
	var b strings.Builder
	b.WriteString("ActNxt login\n\npaste your id token and press enter:\n")
	b.WriteString(data.TokenEditor)
	if data.ErrorText != "" {
		b.WriteString("\n" + errorStyle.Render(data.ErrorText))
	}
	return b.String()
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command:\n" + inputView + "\n(sync | star <id> | archive <id> | unarchive <id> | comment <id> <text> | logout)"
}

func RenderNotification(level, body string) string {
	if body == "" {
		return ""
	}
	if level == "error" {
		return errorStyle.Render("! " + body)
	}
	return "• " + body
}

type HelpPanelData struct {
	Screen   string
	Bindings []string
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help — " + data.Screen + "\n")
	for _, binding := range data.Bindings {
		b.WriteString("  " + binding + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
