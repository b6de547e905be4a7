package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidFeedbackKind = errors.New("model: invalid feedback kind")

type FeedbackKind string

const (
	FeedbackLike    FeedbackKind = "like"
	FeedbackDislike FeedbackKind = "dislike"
)

func (k FeedbackKind) IsValid() bool {
	switch k {
	case FeedbackLike, FeedbackDislike:
		return true
	default:
		return false
	}
}

// Feedback is the exclusive like/dislike pair attached to an insight.
// Setting one side always clears the other.
type Feedback struct {
	Liked    bool `json:"liked"`
	Disliked bool `json:"disliked"`
}

// Insight is one sales-insight task from the feed plus the user's local
// annotations. The derived fields are computed by Enrich when the record
// enters the store and are persisted alongside the authoritative ones.
type Insight struct {
	ID              int       `json:"Id"`
	Title           string    `json:"Title"`
	Description     string    `json:"Description"`
	CompanyName     string    `json:"CompanyName"`
	SalesAnalysisID int       `json:"SalesAnalysisId"`
	DtCreate        string    `json:"DtCreate"`
	Archived        bool      `json:"isArchived"`
	Starred         bool      `json:"isStarred"`
	Feedback        *Feedback `json:"feedback"`
	Comment         string    `json:"comment"`

	// Derived at insertion time.
	DateAssigned  time.Time `json:"dateAssigned"`
	IsOverdue     bool      `json:"isOverdue"`
	FirstSentence string    `json:"firstSentence"`
}

func (i Insight) Validate() error {
	if i.ID == 0 {
		return errors.New("model: insight id is required")
	}
	if strings.TrimSpace(i.Title) == "" {
		return fmt.Errorf("model: insight %d has no title", i.ID)
	}
	return nil
}

// OverdueAt reports whether the insight is overdue relative to now. Display
// code uses this instead of the persisted IsOverdue snapshot, which is only
// evaluated once when the record is enriched.
func (i Insight) OverdueAt(now time.Time) bool {
	if i.DateAssigned.IsZero() {
		return false
	}
	return i.DateAssigned.Before(now)
}

// Enrich computes the derived fields for a raw feed record against now.
func Enrich(in Insight, now time.Time) Insight {
	out := in
	out.DateAssigned = parseAssignedDate(in.DtCreate)
	out.IsOverdue = out.OverdueAt(now)
	out.FirstSentence = FirstSentence(in.Description)
	return out
}

// FeedbackEvent is one entry on the deferred feedback queue, held in memory
// until the next push to the feed service.
type FeedbackEvent struct {
	ID        string       `json:"id"`
	InsightID int          `json:"insightId"`
	Kind      FeedbackKind `json:"kind"`
	At        time.Time    `json:"at"`
}

var assignedDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseAssignedDate(raw string) time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}
	}
	for _, layout := range assignedDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FirstSentence returns the text up to the first period. The period is kept
// only when the input actually contained one; a description without a period
// comes back whole and untouched apart from trimming.
func FirstSentence(description string) string {
	segments := strings.Split(description, ".")
	if len(segments) == 1 {
		return strings.TrimSpace(description)
	}
	for _, seg := range segments {
		trimmed := strings.TrimSpace(seg)
		if trimmed != "" {
			return trimmed + "."
		}
	}
	return ""
}
