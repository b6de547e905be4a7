package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/AmaliaEG/ActNext-sub000/internal/config"
	"github.com/AmaliaEG/ActNext-sub000/internal/feed"
	"github.com/AmaliaEG/ActNext-sub000/internal/identity"
	"github.com/AmaliaEG/ActNext-sub000/internal/model"
	"github.com/AmaliaEG/ActNext-sub000/internal/notify"
	"github.com/AmaliaEG/ActNext-sub000/internal/refdata"
	"github.com/AmaliaEG/ActNext-sub000/internal/storage"
	"github.com/AmaliaEG/ActNext-sub000/internal/store"
	"github.com/AmaliaEG/ActNext-sub000/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "actnxt failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs go to a rotated file, never to the terminal the TUI owns.
	logger := slog.New(slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMegabyte,
		MaxBackups: cfg.LogMaxBackups,
	}, nil))
	slog.SetDefault(logger)

	kv, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer kv.Close()

	stores := update.Stores{
		Settings: store.NewSettings(kv, logger),
		Auth:     store.NewAuth(kv, logger),
		Profile:  store.NewProfile(kv, logger, refdata.Lookup),
		Insights: store.NewInsights(kv, logger),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	stores.Settings.Load(ctx)
	stores.Auth.Load(ctx)
	stores.Profile.Load(ctx, currentIdentity(stores.Auth, logger))
	stores.Insights.Load(ctx)

	engine := notify.NewEngine(cfg.NotifyBuffer)
	engine.Start()
	defer engine.Stop()

	client := feed.NewClient(cfg.FeedBaseURL, stores.Auth.Token)

	m := update.NewModel(stores, client, engine, update.ExecDesktopNotifier{}, update.RuntimeOptions{
		SyncOnStart:   cfg.SyncOnStart,
		FollowUpGrace: time.Duration(cfg.FollowUpGraceMins) * time.Minute,
	})

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// currentIdentity recovers the identity reference from a persisted session so
// profile resolution works across restarts.
func currentIdentity(auth *store.Auth, logger *slog.Logger) *model.Identity {
	if !auth.LoggedIn() {
		return nil
	}
	ident, err := identity.FromToken(auth.Token())
	if err != nil {
		logger.Warn("decode stored token", "error", err)
		return nil
	}
	return &ident
}
