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

var ErrEmptyToken = errors.New("store: empty auth token")

// Auth holds the login flag and the opaque provider token.
type Auth struct {
	mu       sync.Mutex
	kv       storage.KV
	log      *slog.Logger
	state    model.Session
	hydrated bool
}

func NewAuth(kv storage.KV, log *slog.Logger) *Auth {
	return &Auth{kv: kv, log: ensureLogger(log)}
}

// Load hydrates the session. Absent or unreadable data resets to the
// logged-out defaults; hydration completes in every branch.
func (a *Auth) Load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	defer func() { a.hydrated = true }()

	a.state = model.Session{}
	raw, err := a.kv.Get(ctx, authKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			a.log.Error("load session", "key", authKey, "error", err)
		}
		return
	}
	var stored model.Session
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		a.log.Error("decode session", "key", authKey, "error", err)
		return
	}
	a.state = stored
}

// Login records the session and persists it best-effort: the in-memory
// session is committed even when the write fails, since the token itself
// already proves a successful provider login.
func (a *Auth) Login(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = model.Session{LoggedIn: true, Token: token}
	payload, err := json.Marshal(a.state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := a.kv.Set(ctx, authKey, string(payload)); err != nil {
		a.log.Error("persist session", "key", authKey, "error", err)
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Logout removes the persisted session before resetting memory, so a
// concurrent restart can never see a stale logged-in record win.
func (a *Auth) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	removeErr := a.kv.Remove(ctx, authKey)
	if removeErr != nil {
		a.log.Error("remove session", "key", authKey, "error", removeErr)
	}
	a.state = model.Session{}
	if removeErr != nil {
		return fmt.Errorf("remove session: %w", removeErr)
	}
	return nil
}

func (a *Auth) LoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.LoggedIn
}

func (a *Auth) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Token
}

func (a *Auth) Hydrated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hydrated
}
