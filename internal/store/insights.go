package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
	"github.com/AmaliaEG/ActNext-sub000/internal/storage"
)

// Insights owns the insight list. The list is the single source of truth for
// every per-insight annotation; mutations replace the record in a fresh
// slice and persist the whole list as one JSON array.
type Insights struct {
	mu       sync.Mutex
	kv       storage.KV
	log      *slog.Logger
	now      func() time.Time
	items    []model.Insight
	queue    []model.FeedbackEvent
	hydrated bool
}

func NewInsights(kv storage.KV, log *slog.Logger) *Insights {
	return &Insights{
		kv:  kv,
		log: ensureLogger(log),
		now: time.Now,
	}
}

// Load hydrates the list from the backing store. An absent key yields the
// empty list; a read or decode failure leaves the current list as-is.
// Hydration completes in every branch.
func (s *Insights) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.hydrated = true }()

	raw, err := s.kv.Get(ctx, insightsKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.items = []model.Insight{}
			return
		}
		s.log.Error("load insights", "key", insightsKey, "error", err)
		return
	}
	var stored []model.Insight
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Error("decode insights", "key", insightsKey, "error", err)
		return
	}
	s.items = stored
}

// SetInsights enriches the raw feed records, replaces the list and persists
// the enriched array. A failed write leaves the previous list in place.
func (s *Insights) SetInsights(ctx context.Context, raw []model.Insight) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	enriched := make([]model.Insight, len(raw))
	for i, in := range raw {
		enriched[i] = model.Enrich(in, now)
	}
	return s.persistLocked(ctx, enriched)
}

// AddFeedback sets like or dislike exclusively, replacing any prior feedback
// object wholesale.
func (s *Insights) AddFeedback(ctx context.Context, id int, kind model.FeedbackKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidFeedbackKind, kind)
	}
	return s.mutate(ctx, id, func(in *model.Insight) {
		in.Feedback = &model.Feedback{
			Liked:    kind == model.FeedbackLike,
			Disliked: kind == model.FeedbackDislike,
		}
	})
}

func (s *Insights) ToggleStar(ctx context.Context, id int, starred bool) error {
	return s.mutate(ctx, id, func(in *model.Insight) {
		in.Starred = starred
	})
}

func (s *Insights) Archive(ctx context.Context, id int) error {
	return s.mutate(ctx, id, func(in *model.Insight) {
		in.Archived = true
	})
}

func (s *Insights) Unarchive(ctx context.Context, id int) error {
	return s.mutate(ctx, id, func(in *model.Insight) {
		in.Archived = false
	})
}

func (s *Insights) UpdateComment(ctx context.Context, id int, text string) error {
	return s.mutate(ctx, id, func(in *model.Insight) {
		in.Comment = text
	})
}

// Insights returns a copy of the current list.
func (s *Insights) Insights() []model.Insight {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Insight, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Insights) Get(id int) (model.Insight, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOfLocked(id); idx >= 0 {
		return s.items[idx], true
	}
	return model.Insight{}, false
}

// Feedback returns the feedback for id, or the unset pair when the record is
// absent or has none. Absence is a default, never an error.
func (s *Insights) Feedback(id int) model.Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOfLocked(id); idx >= 0 && s.items[idx].Feedback != nil {
		return *s.items[idx].Feedback
	}
	return model.Feedback{}
}

func (s *Insights) Comment(id int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOfLocked(id); idx >= 0 {
		return s.items[idx].Comment
	}
	return ""
}

func (s *Insights) Starred(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOfLocked(id); idx >= 0 {
		return s.items[idx].Starred
	}
	return false
}

func (s *Insights) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// QueueFeedback appends an event to the deferred feedback queue. The queue
// lives in memory only and is drained by the next push to the feed service.
func (s *Insights) QueueFeedback(id int, kind model.FeedbackKind) model.FeedbackEvent {
	ev := model.FeedbackEvent{
		ID:        uuid.NewString(),
		InsightID: id,
		Kind:      kind,
		At:        s.now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = append(s.queue, ev)
	return ev
}

func (s *Insights) QueuedFeedback() []model.FeedbackEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.FeedbackEvent, len(s.queue))
	copy(out, s.queue)
	return out
}

// DropQueuedFeedback removes the events with the given ids, leaving events
// queued after a push snapshot was taken on the queue for the next push.
func (s *Insights) DropQueuedFeedback(ids []string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]model.FeedbackEvent, 0, len(s.queue))
	for _, ev := range s.queue {
		if _, ok := drop[ev.ID]; !ok {
			kept = append(kept, ev)
		}
	}
	s.queue = kept
}

// mutate applies fn to the record with the given id in a fresh copy of the
// list, then persists. The in-memory list is replaced only when the write
// succeeds.
func (s *Insights) mutate(ctx context.Context, id int, fn func(*model.Insight)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return fmt.Errorf("insight %d: %w", id, storage.ErrNotFound)
	}
	next := make([]model.Insight, len(s.items))
	copy(next, s.items)
	fn(&next[idx])
	return s.persistLocked(ctx, next)
}

func (s *Insights) indexOfLocked(id int) int {
	for i, in := range s.items {
		if in.ID == id {
			return i
		}
	}
	return -1
}

func (s *Insights) persistLocked(ctx context.Context, next []model.Insight) error {
	payload, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode insights: %w", err)
	}
	if err := s.kv.Set(ctx, insightsKey, string(payload)); err != nil {
		s.log.Error("persist insights", "key", insightsKey, "error", err)
		return fmt.Errorf("persist insights: %w", err)
	}
	s.items = next
	return nil
}
