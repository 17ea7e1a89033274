package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/codelog/internal/domain"
)

// WorkItemFilter narrows WorkItemRepo.List. Zero values match everything.
type WorkItemFilter struct {
	LanguageCode    string
	Type            domain.ItemType
	IncludeInactive bool
}

// SessionView is a session joined with the identity of its work item, used
// for listings that span items.
type SessionView struct {
	Session      domain.Session
	ItemName     string
	LanguageCode string
	ItemType     domain.ItemType
}

type LanguageRepo interface {
	Create(ctx context.Context, l *domain.Language) error
	GetByCode(ctx context.Context, code string) (*domain.Language, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Language, error)
}

type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	ResolveID(ctx context.Context, prefix string) (string, error)
	GetActiveBySlug(ctx context.Context, languageCode string, itemType domain.ItemType, slug string) (*domain.WorkItem, error)
	ListActive(ctx context.Context, languageCode string, itemType domain.ItemType) ([]*domain.WorkItem, error)
	List(ctx context.Context, filter WorkItemFilter) ([]*domain.WorkItem, error)
	UpdateStats(ctx context.Context, id string, stats domain.ItemStats) error
	Deactivate(ctx context.Context, id string) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	Update(ctx context.Context, s *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	ResolveID(ctx context.Context, prefix string) (string, error)
	ListByItem(ctx context.Context, itemID string) ([]*domain.Session, error)
	ListSince(ctx context.Context, since time.Time) ([]SessionView, error)
	Delete(ctx context.Context, id string) error
}

type ScoringConfigRepo interface {
	Get(ctx context.Context) (domain.ScoringConfig, error)
	SetDifficultyWeight(ctx context.Context, difficulty string, weight float64) error
	SetStatusMultiplier(ctx context.Context, status string, multiplier float64) error
}
