// Package store holds the persisted client state: settings, auth session,
// user profile and the insight feed. Each store owns one backing-store key,
// keeps its current record in memory and rewrites the whole record on every
// mutation. Mutations persist first and commit to memory only after the
// write succeeded, so a failed write never leaves memory ahead of storage.
package store

import "log/slog"

// Backing-store keys. One key per store, never shared.
const (
	settingsKey = "app-settings"
	authKey     = "auth-state"
	profileKey  = "user-profile"
	insightsKey = "insights"
)

func ensureLogger(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}
