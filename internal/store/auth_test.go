package store

import (
	"context"
	"errors"
	"testing"
)

func TestAuthHydration(t *testing.T) {
	kv := newFakeKV()
	a := NewAuth(kv, nil)
	ctx := context.Background()

	if a.Hydrated() {
		t.Fatal("auth store must not be hydrated before Load")
	}
	a.Load(ctx)
	if !a.Hydrated() {
		t.Fatal("auth store must be hydrated after Load")
	}
	if a.LoggedIn() || a.Token() != "" {
		t.Fatal("empty store must yield logged-out defaults")
	}
}

func TestAuthLoadDefaultsOnReadFailure(t *testing.T) {
	kv := newFakeKV()
	kv.failGet = true
	a := NewAuth(kv, nil)

	a.Load(context.Background())
	if !a.Hydrated() {
		t.Fatal("hydration must complete when the read fails")
	}
	if a.LoggedIn() {
		t.Fatal("read failure must yield logged-out defaults")
	}
}

func TestAuthLoginRoundTrip(t *testing.T) {
	kv := newFakeKV()
	a := NewAuth(kv, nil)
	ctx := context.Background()
	a.Load(ctx)

	if err := a.Login(ctx, "tok-123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !a.LoggedIn() || a.Token() != "tok-123" {
		t.Fatal("login not committed to memory")
	}

	restarted := NewAuth(kv, nil)
	restarted.Load(ctx)
	if !restarted.LoggedIn() || restarted.Token() != "tok-123" {
		t.Fatal("session not persisted across restart")
	}
}

func TestAuthLoginRejectsEmptyToken(t *testing.T) {
	a := NewAuth(newFakeKV(), nil)
	if err := a.Login(context.Background(), "  "); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got: %v", err)
	}
	if a.LoggedIn() {
		t.Fatal("rejected login must not flip the flag")
	}
}

func TestAuthLogoutClearsPersistedState(t *testing.T) {
	kv := newFakeKV()
	a := NewAuth(kv, nil)
	ctx := context.Background()
	a.Load(ctx)

	if err := a.Login(ctx, "tok-123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := a.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if a.LoggedIn() || a.Token() != "" {
		t.Fatal("logout must reset in-memory state")
	}

	restarted := NewAuth(kv, nil)
	restarted.Load(ctx)
	if restarted.LoggedIn() || restarted.Token() != "" {
		t.Fatal("logout must not leave stale persisted state behind")
	}
}

func TestAuthLogoutResetsMemoryEvenWhenRemoveFails(t *testing.T) {
	kv := newFakeKV()
	a := NewAuth(kv, nil)
	ctx := context.Background()
	a.Load(ctx)
	if err := a.Login(ctx, "tok-123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	kv.failRemove = true
	if err := a.Logout(ctx); err == nil {
		t.Fatal("expected remove error to surface")
	}
	if a.LoggedIn() {
		t.Fatal("logout is best-effort: memory must reset regardless")
	}
}
