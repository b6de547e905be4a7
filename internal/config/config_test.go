package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "actnxt.db" || cfg.LogFile != "actnxt.log" {
		t.Fatalf("unexpected path defaults: %+v", cfg)
	}
	if !cfg.SyncOnStart {
		t.Fatal("sync on start must default to true")
	}
	if cfg.FollowUpGraceMins != 60 || cfg.NotifyBuffer != 64 {
		t.Fatalf("unexpected follow-up defaults: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ACTNXT_DB_PATH", "state/actnxt.db")
	t.Setenv("ACTNXT_FEED_URL", "https://staging.actnxt.example.com")
	t.Setenv("ACTNXT_SYNC_ON_START", "false")
	t.Setenv("ACTNXT_FOLLOWUP_GRACE_MINUTES", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "state/actnxt.db" {
		t.Fatalf("db path override lost: %+v", cfg)
	}
	if cfg.FeedBaseURL != "https://staging.actnxt.example.com" {
		t.Fatalf("feed url override lost: %+v", cfg)
	}
	if cfg.SyncOnStart {
		t.Fatal("sync on start override lost")
	}
	if cfg.FollowUpGraceMins != 15 {
		t.Fatalf("grace override lost: %+v", cfg)
	}
}
