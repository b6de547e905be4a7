package store

import (
	"context"
	"testing"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
)

func refLookup(known ...model.Profile) LookupFunc {
	return func(auth0ID string) (model.Profile, bool) {
		for _, p := range known {
			if p.Auth0ID == auth0ID {
				return p, true
			}
		}
		return model.Profile{}, false
	}
}

func strp(s string) *string { return &s }

func TestProfileHydrationWithoutIdentity(t *testing.T) {
	p := NewProfile(newFakeKV(), nil, nil)

	if p.Hydrated() {
		t.Fatal("profile store must not be hydrated before Load")
	}
	p.Load(context.Background(), nil)
	if !p.Hydrated() {
		t.Fatal("profile store must be hydrated after Load")
	}
	if !p.Current().IsZero() {
		t.Fatalf("no cache, no identity: profile must stay empty, got %#v", p.Current())
	}
}

func TestProfileLocalCacheWins(t *testing.T) {
	kv := newFakeKV()
	kv.data[profileKey] = `{"auth0ID":"auth0|cached","name":"Cached","email":"c@example.com","code":"4321"}`
	known := model.Profile{Auth0ID: "auth0|cached", Name: "Reference", Email: "r@example.com"}
	p := NewProfile(kv, nil, refLookup(known))

	p.Load(context.Background(), &model.Identity{Auth0ID: "auth0|cached", Name: "Fresh", Email: "f@example.com"})
	got := p.Current()
	if got.Name != "Cached" || got.Code != "4321" {
		t.Fatalf("cached profile must win over every fallback: %#v", got)
	}
}

func TestProfileReferenceDatasetMatch(t *testing.T) {
	known := model.Profile{
		Auth0ID:   "auth0|ref",
		Name:      "Reference User",
		BirthDate: "1990-05-01",
		Gender:    "female",
		Email:     "ref@example.com",
		Code:      "9876",
	}
	p := NewProfile(newFakeKV(), nil, refLookup(known))

	p.Load(context.Background(), &model.Identity{Auth0ID: "auth0|ref", Name: "Ignored", Email: "ignored@example.com"})
	if got := p.Current(); got != known {
		t.Fatalf("matched reference record must be adopted in full: %#v", got)
	}
}

func TestProfileSynthesizedFromIdentity(t *testing.T) {
	p := NewProfile(newFakeKV(), nil, refLookup())

	p.Load(context.Background(), &model.Identity{Auth0ID: "auth0|new", Name: "New User", Email: "new@example.com"})
	got := p.Current()
	want := model.Profile{Auth0ID: "auth0|new", Name: "New User", Email: "new@example.com"}
	if got != want {
		t.Fatalf("synthesized profile must carry only id, name and email: %#v", got)
	}
}

func TestProfileHydrationCompletesOnReadFailure(t *testing.T) {
	kv := newFakeKV()
	kv.failGet = true
	p := NewProfile(kv, nil, nil)

	p.Load(context.Background(), nil)
	if !p.Hydrated() {
		t.Fatal("hydration must complete when the read fails")
	}
	if !p.Current().IsZero() {
		t.Fatal("no identity: read failure must not fabricate a profile")
	}
}

func TestProfileReadFailureStillRunsFallbackChain(t *testing.T) {
	known := model.Profile{Auth0ID: "auth0|ref", Name: "Reference User", Email: "ref@example.com", Code: "9876"}
	kv := newFakeKV()
	kv.failGet = true
	p := NewProfile(kv, nil, refLookup(known))

	// A failed read counts as no data, not as a cached record.
	p.Load(context.Background(), &model.Identity{Auth0ID: "auth0|ref"})
	if got := p.Current(); got != known {
		t.Fatalf("reference match must still apply on read failure: %#v", got)
	}
}

func TestProfileCorruptCacheFallsBackToSynthesis(t *testing.T) {
	kv := newFakeKV()
	kv.data[profileKey] = `{not json`
	p := NewProfile(kv, nil, refLookup())

	p.Load(context.Background(), &model.Identity{Auth0ID: "auth0|new", Name: "New User", Email: "new@example.com"})
	want := model.Profile{Auth0ID: "auth0|new", Name: "New User", Email: "new@example.com"}
	if got := p.Current(); got != want {
		t.Fatalf("unreadable cache must synthesize from the identity: %#v", got)
	}
}

func TestProfileUpdatePersistsMergedRecord(t *testing.T) {
	kv := newFakeKV()
	p := NewProfile(kv, nil, nil)
	ctx := context.Background()
	p.Load(ctx, &model.Identity{Auth0ID: "auth0|u", Name: "Ada", Email: "ada@example.com"})

	if err := p.Update(ctx, model.ProfileUpdate{Gender: strp("female")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got := p.Current()
	if got.Gender != "female" || got.Name != "Ada" {
		t.Fatalf("merge lost fields: %#v", got)
	}
	if got.Code != model.DefaultCode {
		t.Fatalf("persisted profile must carry the placeholder code: %#v", got)
	}

	restarted := NewProfile(kv, nil, nil)
	restarted.Load(ctx, nil)
	if restarted.Current() != got {
		t.Fatalf("persisted record differs from memory: %#v", restarted.Current())
	}
}

func TestProfileNoClobberOnWriteFailure(t *testing.T) {
	kv := newFakeKV()
	p := NewProfile(kv, nil, nil)
	ctx := context.Background()
	p.Load(ctx, &model.Identity{Auth0ID: "auth0|u", Name: "Ada", Email: "ada@example.com"})
	before := p.Current()

	kv.failSet = true
	if err := p.Update(ctx, model.ProfileUpdate{Name: strp("Mallory")}); err == nil {
		t.Fatal("expected persist error")
	}
	if got := p.Current(); got != before {
		t.Fatalf("failed write corrupted the in-memory profile: %#v", got)
	}
}

func TestProfileReset(t *testing.T) {
	kv := newFakeKV()
	p := NewProfile(kv, nil, nil)
	ctx := context.Background()
	p.Load(ctx, &model.Identity{Auth0ID: "auth0|u", Name: "Ada", Email: "ada@example.com"})
	if err := p.Update(ctx, model.ProfileUpdate{Gender: strp("female")}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := p.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !p.Current().IsZero() {
		t.Fatal("reset must empty the in-memory profile")
	}
	if _, ok := kv.data[profileKey]; ok {
		t.Fatal("reset must remove the persisted record")
	}
}
