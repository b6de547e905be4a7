package refdata

import "testing"

func TestLookupKnownUser(t *testing.T) {
	p, ok := Lookup("auth0|64f1c2a8b9d3e1f204a51001")
	if !ok {
		t.Fatal("expected a match for a known reference user")
	}
	if p.Name != "Mette Sorensen" || p.Email != "mette.sorensen@actnxt.com" || p.Code != "5501" {
		t.Fatalf("unexpected reference profile: %#v", p)
	}
}

func TestLookupUnknownUser(t *testing.T) {
	if _, ok := Lookup("auth0|nobody"); ok {
		t.Fatal("unexpected match for unknown id")
	}
	if _, ok := Lookup(""); ok {
		t.Fatal("empty id must never match")
	}
}
