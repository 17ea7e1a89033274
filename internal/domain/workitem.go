package domain

import (
	"sort"
	"time"
)

// ItemStats is the cached aggregate block on a WorkItem. It is always
// reproducible by replaying the item's sessions.
type ItemStats struct {
	TotalLogs           int
	TotalHours          float64
	LastLoggedAt        *time.Time
	CurrentStreakDays   int
	LongestStreakDays   int
	ProjectedFinishDate *time.Time
}

type WorkItem struct {
	ID                string
	LanguageCode      string
	Type              ItemType
	CanonicalName     string
	Slug              string
	Aliases           AliasSet
	DefaultDifficulty Difficulty
	DefaultTopic      string
	TargetHours       float64
	Stats             ItemStats
	Active            bool
	CreatedAt         time.Time
}

// AliasSet is an unordered set of alias strings.
type AliasSet map[string]struct{}

// NewAliasSet builds a set from vals, skipping empty strings.
func NewAliasSet(vals ...string) AliasSet {
	s := make(AliasSet, len(vals))
	for _, v := range vals {
		s.Add(v)
	}
	return s
}

func (s AliasSet) Add(v string) {
	if v == "" {
		return
	}
	s[v] = struct{}{}
}

func (s AliasSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the aliases in lexical order.
func (s AliasSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// RemainingHours returns how many target hours are still open, never negative.
func (w *WorkItem) RemainingHours() float64 {
	if rem := w.TargetHours - w.Stats.TotalHours; rem > 0 {
		return rem
	}
	return 0
}
