// Package resolver maps free-text item names onto stable work items.
//
// A name resolves to an existing item by slug or alias, produces a short list
// of look-alike suggestions, or creates a new item whose defaults are inferred
// from the language pack. Short names that look like an existing item are
// never auto-created.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/langpack"
	"github.com/alexanderramin/codelog/internal/normalize"
	"github.com/alexanderramin/codelog/internal/repository"
	"github.com/google/uuid"
)

var (
	// ErrInvalidName is returned when a name slugifies to nothing.
	ErrInvalidName = errors.New("item name is empty after normalization")
	// ErrAmbiguous marks callers that refuse to act on a Suggested outcome.
	ErrAmbiguous = errors.New("item name is ambiguous")
)

const (
	maxSuggestions  = 3
	maxLenDiff      = 2
	maxSuggestRunes = 20
	defaultTopic    = "General"
)

// Store is the subset of the work item repository the resolver needs.
type Store interface {
	GetActiveBySlug(ctx context.Context, languageCode string, itemType domain.ItemType, slug string) (*domain.WorkItem, error)
	ListActive(ctx context.Context, languageCode string, itemType domain.ItemType) ([]*domain.WorkItem, error)
	Create(ctx context.Context, w *domain.WorkItem) error
}

type Outcome int

const (
	Resolved Outcome = iota
	Suggested
)

func (o Outcome) String() string {
	if o == Suggested {
		return "suggested"
	}
	return "resolved"
}

// Candidate is an existing item that looks like the requested name.
type Candidate struct {
	ItemID string
	Name   string
	Slug   string
	Shared int
	Hint   string
}

// Resolution is the result of Resolve or Create. Item and ItemID are set
// when Outcome is Resolved; Suggestions only when it is Suggested.
type Resolution struct {
	Outcome     Outcome
	ItemID      string
	Item        *domain.WorkItem
	Created     bool
	Skill       string
	Suggestions []Candidate
}

type Option func(*Resolver)

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithIDGenerator overrides how new item ids are minted.
func WithIDGenerator(newID func() string) Option {
	return func(r *Resolver) { r.newID = newID }
}

type Resolver struct {
	items Store
	packs langpack.Provider
	now   func() time.Time
	newID func() string
}

func New(items Store, packs langpack.Provider, opts ...Option) *Resolver {
	r := &Resolver{
		items: items,
		packs: packs,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve finds or creates the item named rawName within (languageCode,
// itemType). It returns a Suggested resolution without creating anything
// when rawName is short and close to existing items.
func (r *Resolver) Resolve(ctx context.Context, languageCode string, itemType domain.ItemType, rawName string) (Resolution, error) {
	slug := normalize.Slugify(rawName)
	if slug == "" {
		return Resolution{}, ErrInvalidName
	}

	if res, ok, err := r.exact(ctx, languageCode, itemType, slug); err != nil || ok {
		return res, err
	}

	items, err := r.items.ListActive(ctx, languageCode, itemType)
	if err != nil {
		return Resolution{}, fmt.Errorf("listing active items: %w", err)
	}

	for _, w := range items {
		for _, alias := range w.Aliases.Sorted() {
			if normalize.Slugify(alias) == slug {
				return resolved(w), nil
			}
		}
	}

	candidates := fuzzyCandidates(slug, items)
	if len(candidates) > 0 && utf8.RuneCountInString(strings.TrimSpace(rawName)) <= maxSuggestRunes {
		return Resolution{Outcome: Suggested, Suggestions: candidates}, nil
	}

	return r.create(ctx, languageCode, itemType, rawName, slug)
}

// Create skips the alias and fuzzy passes. Use it once the user has rejected
// the suggestions for rawName. An active item with the same slug still wins.
func (r *Resolver) Create(ctx context.Context, languageCode string, itemType domain.ItemType, rawName string) (Resolution, error) {
	slug := normalize.Slugify(rawName)
	if slug == "" {
		return Resolution{}, ErrInvalidName
	}
	if res, ok, err := r.exact(ctx, languageCode, itemType, slug); err != nil || ok {
		return res, err
	}
	return r.create(ctx, languageCode, itemType, rawName, slug)
}

func (r *Resolver) exact(ctx context.Context, languageCode string, itemType domain.ItemType, slug string) (Resolution, bool, error) {
	w, err := r.items.GetActiveBySlug(ctx, languageCode, itemType, slug)
	switch {
	case err == nil:
		return resolved(w), true, nil
	case errors.Is(err, repository.ErrNotFound):
		return Resolution{}, false, nil
	default:
		return Resolution{}, false, fmt.Errorf("looking up item by slug: %w", err)
	}
}

func (r *Resolver) create(ctx context.Context, languageCode string, itemType domain.ItemType, rawName, slug string) (Resolution, error) {
	pack, err := r.packs.Pack(ctx, languageCode)
	if err != nil {
		return Resolution{}, fmt.Errorf("loading language pack: %w", err)
	}
	inf := infer(pack, rawName, itemType)

	name := strings.TrimSpace(rawName)
	w := &domain.WorkItem{
		ID:                r.newID(),
		LanguageCode:      languageCode,
		Type:              itemType,
		CanonicalName:     name,
		Slug:              slug,
		Aliases:           domain.NewAliasSet(name, slug),
		DefaultDifficulty: inf.difficulty,
		DefaultTopic:      inf.topic,
		TargetHours:       inf.targetHours,
		Active:            true,
		CreatedAt:         r.now().UTC().Truncate(time.Second),
	}
	if err := r.items.Create(ctx, w); err != nil {
		return Resolution{}, fmt.Errorf("creating work item: %w", err)
	}

	res := resolved(w)
	res.Created = true
	res.Skill = inf.skill
	return res, nil
}

func resolved(w *domain.WorkItem) Resolution {
	return Resolution{Outcome: Resolved, ItemID: w.ID, Item: w}
}

// fuzzyCandidates keeps items whose slug length is within maxLenDiff runes
// and that share at least min(3, len(slug)/2) distinct characters. Hyphens
// are word separators, not characters, and are not counted.
func fuzzyCandidates(slug string, items []*domain.WorkItem) []Candidate {
	want := charset(slug)
	slugLen := utf8.RuneCountInString(slug)
	threshold := min(3, slugLen/2)

	type scored struct {
		Candidate
		lenDiff int
	}
	var found []scored
	for _, w := range items {
		diff := abs(slugLen - utf8.RuneCountInString(w.Slug))
		if diff > maxLenDiff {
			continue
		}
		shared := intersect(want, charset(w.Slug))
		if len(shared) < threshold {
			continue
		}
		found = append(found, scored{
			Candidate: Candidate{
				ItemID: w.ID,
				Name:   w.CanonicalName,
				Slug:   w.Slug,
				Shared: len(shared),
				Hint:   fmt.Sprintf("shares %d characters (%s)", len(shared), string(shared)),
			},
			lenDiff: diff,
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if a.Shared != b.Shared {
			return a.Shared > b.Shared
		}
		if a.lenDiff != b.lenDiff {
			return a.lenDiff < b.lenDiff
		}
		return a.Name < b.Name
	})

	out := make([]Candidate, 0, min(len(found), maxSuggestions))
	for i := 0; i < len(found) && i < maxSuggestions; i++ {
		out = append(out, found[i].Candidate)
	}
	return out
}

func charset(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, c := range s {
		if c != '-' {
			set[c] = struct{}{}
		}
	}
	return set
}

// intersect returns the shared runes in sorted order.
func intersect(a, b map[rune]struct{}) []rune {
	var out []rune
	for c := range a {
		if _, ok := b[c]; ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
