package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
	"github.com/AmaliaEG/ActNext-sub000/internal/notify"
	"github.com/AmaliaEG/ActNext-sub000/internal/store"
)

type Screen string

const (
	ScreenLogin    Screen = "Login"
	ScreenFeed     Screen = "Feed"
	ScreenDetail   Screen = "Detail"
	ScreenSettings Screen = "Settings"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Feed     string
	Settings string
	Help     string
	Quit     string
	Sync     string
}

// Stores bundles the four state stores the screens read and mutate.
type Stores struct {
	Settings *store.Settings
	Auth     *store.Auth
	Profile  *store.Profile
	Insights *store.Insights
}

// FeedService is the remote side of the app: pull the feed, push queued
// feedback. Implemented by feed.Client; swapped for a stub in tests.
type FeedService interface {
	Fetch(ctx context.Context) ([]model.Insight, error)
	PushFeedback(ctx context.Context, events []model.FeedbackEvent) error
}

type RuntimeOptions struct {
	SyncOnStart   bool
	FollowUpGrace time.Duration
}

type FeedState struct {
	Cursor       int
	ShowArchived bool
}

type DetailState struct {
	InsightID      int
	EditingComment bool
}

type SettingsState struct {
	Cursor      int
	EditingName bool
}

type PaletteState struct {
	Active bool
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Model struct {
	Screen      Screen
	Stores      Stores
	Status      StatusBar
	Keys        GlobalKeyMap
	Feed        FeedState
	Detail      DetailState
	Settings    SettingsState
	Palette     PaletteState
	HelpVisible bool
	Quitting    bool
	LastError   error

	Engine        *notify.Engine
	FollowUpLog   []notify.FollowUp
	Notifications []Notification
	notifier      DesktopNotifier
	service       FeedService
	opts          RuntimeOptions
	loginErr      string

	// Bubble components used for rich TUI controls
	tokenInput   textinput.Model
	commandInput textinput.Model
	nameInput    textinput.Model
	commentArea  textarea.Model
	syncSpinner  spinner.Model
	syncing      bool
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type insightsFetchedMsg struct {
	Items []model.Insight
}

type syncFailedMsg struct {
	Err error
}

type feedbackPushedMsg struct {
	Pushed []model.FeedbackEvent
}

type FollowUpMsg struct {
	FollowUp notify.FollowUp
}

func NewModel(stores Stores, service FeedService, engine *notify.Engine, notifier DesktopNotifier, opts RuntimeOptions) Model {
	m := Model{
		Screen:   ScreenFeed,
		Stores:   stores,
		Engine:   engine,
		notifier: notifier,
		service:  service,
		opts:     opts,
		Keys: GlobalKeyMap{
			Feed:     "1",
			Settings: "2",
			Help:     "?",
			Quit:     "q",
			Sync:     "S",
		},
	}
	if m.notifier == nil {
		m.notifier = NoopDesktopNotifier{}
	}
	if stores.Auth == nil || !stores.Auth.LoggedIn() {
		m.Screen = ScreenLogin
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.tokenInput = textinput.New()
	m.tokenInput.Placeholder = "eyJhbGciOi..."
	m.tokenInput.CharLimit = 4096
	m.tokenInput.Width = 48
	if m.Screen == ScreenLogin {
		m.tokenInput.Focus()
	}

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "sync"
	m.commandInput.Width = 48

	m.nameInput = textinput.New()
	m.nameInput.Width = 32

	m.commentArea = textarea.New()
	m.commentArea.Placeholder = "add a comment"
	m.commentArea.SetWidth(48)
	m.commentArea.SetHeight(3)

	m.syncSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
}
