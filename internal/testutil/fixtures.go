package testutil

import (
	"strings"
	"time"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/normalize"
	"github.com/google/uuid"
)

// Day returns midnight UTC of the given date, the form session dates take.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// FixedClock returns a clock that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

// WorkItem options
type WorkItemOption func(*domain.WorkItem)

func WithLanguage(code string) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.LanguageCode = code
	}
}

func WithItemType(t domain.ItemType) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Type = t
	}
}

func WithTargetHours(h float64) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.TargetHours = h
	}
}

func WithAliases(aliases ...string) WorkItemOption {
	return func(w *domain.WorkItem) {
		for _, a := range aliases {
			w.Aliases.Add(a)
		}
	}
}

func WithStats(s domain.ItemStats) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Stats = s
	}
}

func WithDefaultDifficulty(d domain.Difficulty) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.DefaultDifficulty = d
	}
}

func Inactive() WorkItemOption {
	return func(w *domain.WorkItem) {
		w.Active = false
	}
}

// NewTestWorkItem builds an active Go exercise named name, with the name and
// its slug as aliases, the way the resolver creates items.
func NewTestWorkItem(name string, opts ...WorkItemOption) *domain.WorkItem {
	slug := normalize.Slugify(name)
	w := &domain.WorkItem{
		ID:                uuid.New().String(),
		LanguageCode:      "go",
		Type:              domain.ItemExercise,
		CanonicalName:     strings.TrimSpace(name),
		Slug:              slug,
		Aliases:           domain.NewAliasSet(strings.TrimSpace(name), slug),
		DefaultDifficulty: domain.DifficultyBeginner,
		DefaultTopic:      "General",
		TargetHours:       10,
		Active:            true,
		CreatedAt:         time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Session options
type SessionOption func(*domain.Session)

func WithDate(d time.Time) SessionOption {
	return func(s *domain.Session) {
		s.Date = domain.DateOf(d)
	}
}

func WithStatus(st domain.SessionStatus) SessionOption {
	return func(s *domain.Session) {
		s.Status = st
	}
}

func WithDifficulty(d domain.Difficulty) SessionOption {
	return func(s *domain.Session) {
		s.Difficulty = d
	}
}

func WithNotes(n string) SessionOption {
	return func(s *domain.Session) {
		s.Notes = n
	}
}

func WithTags(tags ...string) SessionOption {
	return func(s *domain.Session) {
		s.Tags = tags
	}
}

func NewTestSession(itemID string, hours float64, opts ...SessionOption) *domain.Session {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.Session{
		ID:         uuid.New().String(),
		ItemID:     itemID,
		Date:       domain.DateOf(now),
		Status:     domain.StatusCompleted,
		HoursSpent: hours,
		Difficulty: domain.DifficultyBeginner,
		CreatedAt:  now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
