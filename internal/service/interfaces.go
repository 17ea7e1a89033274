package service

import (
	"context"
	"time"

	"github.com/alexanderramin/codelog/internal/app"
	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/repository"
	"github.com/alexanderramin/codelog/internal/resolver"
)

// Clock supplies "now" for creation timestamps and date-relative stats. Its
// location decides the calendar day: a session dated "today" and the streak
// anchor must come from the same clock.
type Clock func() time.Time

func clockOrSystem(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

type SessionService interface {
	Upsert(ctx context.Context, in app.SessionInput) (string, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	// ResolveID expands a unique id prefix to the full session id.
	ResolveID(ctx context.Context, prefix string) (string, error)
	ListByItem(ctx context.Context, itemID string) ([]*domain.Session, error)
	ListRecent(ctx context.Context, days int) ([]repository.SessionView, error)
}

type ItemService interface {
	Resolve(ctx context.Context, languageCode string, itemType domain.ItemType, name string) (resolver.Resolution, error)
	Create(ctx context.Context, languageCode string, itemType domain.ItemType, name string) (resolver.Resolution, error)
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	ResolveID(ctx context.Context, prefix string) (string, error)
	List(ctx context.Context, filter repository.WorkItemFilter) ([]*domain.WorkItem, error)
	Deactivate(ctx context.Context, id string) error
	Recompute(ctx context.Context, id string) (domain.ItemStats, error)
	RecomputeAll(ctx context.Context) (int, error)
}

type LanguageService interface {
	Add(ctx context.Context, l *domain.Language) error
	Get(ctx context.Context, code string) (*domain.Language, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Language, error)
}

type ConfigService interface {
	Get(ctx context.Context) (domain.ScoringConfig, error)
	SetDifficultyWeight(ctx context.Context, d domain.Difficulty, weight float64) error
	SetStatusMultiplier(ctx context.Context, st domain.SessionStatus, multiplier float64) error
}

type StatusService interface {
	GetStatus(ctx context.Context, req app.StatusRequest) (*app.StatusResponse, error)
}
