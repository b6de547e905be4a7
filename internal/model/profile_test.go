package model

import "testing"

func strPtr(s string) *string { return &s }

func TestProfileUpdateApply(t *testing.T) {
	base := Profile{
		Auth0ID: "auth0|abc",
		Name:    "Ada",
		Email:   "ada@example.com",
		Code:    "1234",
	}

	merged := ProfileUpdate{Name: strPtr("Ada L."), Gender: strPtr("female")}.Apply(base)
	if merged.Name != "Ada L." || merged.Gender != "female" {
		t.Fatalf("update fields not applied: %#v", merged)
	}
	if merged.Auth0ID != base.Auth0ID || merged.Email != base.Email || merged.Code != base.Code {
		t.Fatalf("untouched fields must survive the merge: %#v", merged)
	}

	cleared := ProfileUpdate{Gender: strPtr("")}.Apply(merged)
	if cleared.Gender != "" {
		t.Fatal("explicit empty value must overwrite")
	}
}

func TestProfileWithDefaults(t *testing.T) {
	p := Profile{Name: "Ada"}.WithDefaults()
	if p.Code != DefaultCode {
		t.Fatalf("missing code must default to %q, got %q", DefaultCode, p.Code)
	}
	kept := Profile{Name: "Ada", Code: "7777"}.WithDefaults()
	if kept.Code != "7777" {
		t.Fatal("existing code must be kept")
	}
}

func TestThemeModeIsValid(t *testing.T) {
	for _, m := range []ThemeMode{ThemeLight, ThemeDark, ThemeSystem} {
		if !m.IsValid() {
			t.Fatalf("expected %q to be valid", m)
		}
	}
	if ThemeMode("sepia").IsValid() {
		t.Fatal("unexpected valid theme mode")
	}
}
