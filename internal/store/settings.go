package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
	"github.com/AmaliaEG/ActNext-sub000/internal/storage"
)

// Settings holds theme mode, language and the notifications toggle.
type Settings struct {
	mu       sync.Mutex
	kv       storage.KV
	log      *slog.Logger
	state    model.Settings
	hydrated bool
}

func NewSettings(kv storage.KV, log *slog.Logger) *Settings {
	return &Settings{
		kv:    kv,
		log:   ensureLogger(log),
		state: model.DefaultSettings(),
	}
}

// Load hydrates from the backing store. Absent or unreadable data leaves the
// in-memory defaults untouched; the hydration flag is set in every branch so
// callers can tell "not yet attempted" from "attempted, nothing found".
func (s *Settings) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.hydrated = true }()

	raw, err := s.kv.Get(ctx, settingsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Error("load settings", "key", settingsKey, "error", err)
		}
		return
	}
	var stored model.Settings
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Error("decode settings", "key", settingsKey, "error", err)
		return
	}
	if stored.ThemeMode.IsValid() {
		s.state.ThemeMode = stored.ThemeMode
	}
	if strings.TrimSpace(stored.Language) != "" {
		s.state.Language = stored.Language
	}
	s.state.NotificationsEnabled = stored.NotificationsEnabled
}

func (s *Settings) UpdateTheme(ctx context.Context, mode model.ThemeMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidThemeMode, mode)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate := s.state
	candidate.ThemeMode = mode
	return s.persistLocked(ctx, candidate)
}

func (s *Settings) SetLanguage(ctx context.Context, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate := s.state
	candidate.Language = lang
	return s.persistLocked(ctx, candidate)
}

func (s *Settings) ToggleNotifications(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	candidate := s.state
	candidate.NotificationsEnabled = !candidate.NotificationsEnabled
	return s.persistLocked(ctx, candidate)
}

func (s *Settings) Current() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Settings) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// persistLocked writes the candidate record wholesale and commits it to
// memory only on success.
func (s *Settings) persistLocked(ctx context.Context, candidate model.Settings) error {
	payload, err := json.Marshal(candidate)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.kv.Set(ctx, settingsKey, string(payload)); err != nil {
		s.log.Error("persist settings", "key", settingsKey, "error", err)
		return fmt.Errorf("persist settings: %w", err)
	}
	s.state = candidate
	return nil
}
