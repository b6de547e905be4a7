package notify

import (
	"testing"
	"time"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
)

func TestScheduleForInsightsSkipsResolved(t *testing.T) {
	engine := NewEngine(8)
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)

	insights := []model.Insight{
		{ID: 1, Title: "unresolved overdue", DateAssigned: past},
		{ID: 2, Title: "archived", DateAssigned: past, Archived: true},
		{ID: 3, Title: "already answered", DateAssigned: past, Feedback: &model.Feedback{Liked: true}},
		{ID: 4, Title: "not yet due", DateAssigned: now.Add(24 * time.Hour)},
		{ID: 5, Title: "no parsed date"},
	}

	if got := ScheduleForInsights(engine, insights, now, time.Hour); got != 1 {
		t.Fatalf("expected exactly one scheduled follow-up, got %d", got)
	}
}

func TestUnresolved(t *testing.T) {
	if !Unresolved(model.Insight{ID: 1}) {
		t.Fatal("plain insight must be unresolved")
	}
	if Unresolved(model.Insight{ID: 1, Archived: true}) {
		t.Fatal("archived insight is resolved")
	}
	if Unresolved(model.Insight{ID: 1, Feedback: &model.Feedback{Disliked: true}}) {
		t.Fatal("insight with feedback is resolved")
	}
}
