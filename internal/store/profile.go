package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
	"github.com/AmaliaEG/ActNext-sub000/internal/storage"
)

// LookupFunc resolves an external identity id against the reference dataset
// of known profiles.
type LookupFunc func(auth0ID string) (model.Profile, bool)

// Profile holds the device's single user profile record.
type Profile struct {
	mu       sync.Mutex
	kv       storage.KV
	log      *slog.Logger
	lookup   LookupFunc
	state    model.Profile
	hydrated bool
}

func NewProfile(kv storage.KV, log *slog.Logger, lookup LookupFunc) *Profile {
	return &Profile{kv: kv, log: ensureLogger(log), lookup: lookup}
}

// Load resolves the profile in three steps: a locally cached record wins
// outright; otherwise a supplied identity is matched against the reference
// dataset; otherwise a minimal profile is synthesized from the identity
// alone. A failed or unreadable read counts as "no data", so the identity
// fallback chain still runs. With no cache and no identity the prior
// in-memory value stands. Hydration completes in every branch.
func (p *Profile) Load(ctx context.Context, ident *model.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer func() { p.hydrated = true }()

	raw, err := p.kv.Get(ctx, profileKey)
	switch {
	case err == nil:
		var cached model.Profile
		if decodeErr := json.Unmarshal([]byte(raw), &cached); decodeErr != nil {
			p.log.Error("decode profile", "key", profileKey, "error", decodeErr)
		} else {
			p.state = cached
			return
		}
	case !errors.Is(err, storage.ErrNotFound):
		p.log.Error("load profile", "key", profileKey, "error", err)
	}

	if ident == nil {
		return
	}
	if p.lookup != nil {
		if known, ok := p.lookup(ident.Auth0ID); ok {
			p.state = known
			return
		}
	}
	p.state = model.Profile{
		Auth0ID: ident.Auth0ID,
		Name:    ident.Name,
		Email:   ident.Email,
	}
}

// Update merges the partial update into the current profile and persists the
// merged record. A failed write leaves the in-memory profile untouched.
func (p *Profile) Update(ctx context.Context, upd model.ProfileUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	candidate := upd.Apply(p.state).WithDefaults()
	payload, err := json.Marshal(candidate)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := p.kv.Set(ctx, profileKey, string(payload)); err != nil {
		p.log.Error("persist profile", "key", profileKey, "error", err)
		return fmt.Errorf("persist profile: %w", err)
	}
	p.state = candidate
	return nil
}

// Reset clears both the persisted record and the in-memory profile.
func (p *Profile) Reset(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	removeErr := p.kv.Remove(ctx, profileKey)
	if removeErr != nil {
		p.log.Error("remove profile", "key", profileKey, "error", removeErr)
	}
	p.state = model.Profile{}
	if removeErr != nil {
		return fmt.Errorf("remove profile: %w", removeErr)
	}
	return nil
}

func (p *Profile) Current() model.Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Profile) Hydrated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hydrated
}
