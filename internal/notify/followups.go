package notify

import (
	"time"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
)

// Unresolved reports whether an insight still needs the user's attention: it
// is not archived and has no feedback yet.
func Unresolved(in model.Insight) bool {
	return !in.Archived && in.Feedback == nil
}

// ScheduleForInsights queues one follow-up per unresolved insight that is
// overdue at now. Each alert fires after the grace period so a fresh sync
// does not immediately spam the user.
func ScheduleForInsights(e *Engine, insights []model.Insight, now time.Time, grace time.Duration) int {
	scheduled := 0
	for _, in := range insights {
		if !Unresolved(in) || !in.OverdueAt(now) {
			continue
		}
		f := FollowUp{
			InsightID: in.ID,
			Title:     in.Title,
			Company:   in.CompanyName,
			DueAt:     now.Add(grace),
		}
		if err := e.Schedule(f); err == nil {
			scheduled++
		}
	}
	return scheduled
}
