package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/codelog/internal/aggregate"
	"github.com/alexanderramin/codelog/internal/db"
	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/langpack"
	"github.com/alexanderramin/codelog/internal/normalize"
	"github.com/alexanderramin/codelog/internal/repository"
	"github.com/alexanderramin/codelog/internal/resolver"
)

type itemService struct {
	items    repository.WorkItemRepo
	uow      db.UnitOfWork
	packs    langpack.Provider
	now      Clock
	observer UseCaseObserver
}

func NewItemService(
	items repository.WorkItemRepo,
	uow db.UnitOfWork,
	packs langpack.Provider,
	now Clock,
	observers ...UseCaseObserver,
) ItemService {
	return &itemService{
		items:    items,
		uow:      uow,
		packs:    packs,
		now:      clockOrSystem(now),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *itemService) Resolve(ctx context.Context, languageCode string, itemType domain.ItemType, name string) (resolver.Resolution, error) {
	return s.resolve(ctx, "resolve-item", languageCode, itemType, name, false)
}

func (s *itemService) Create(ctx context.Context, languageCode string, itemType domain.ItemType, name string) (resolver.Resolution, error) {
	return s.resolve(ctx, "create-item", languageCode, itemType, name, true)
}

func (s *itemService) resolve(ctx context.Context, useCase, languageCode string, itemType domain.ItemType, name string, force bool) (res resolver.Resolution, err error) {
	startedAt := time.Now()
	fields := map[string]any{"language": languageCode, "type": string(itemType)}
	defer observe(ctx, s.observer, useCase, startedAt, fields, &err)

	if normalize.Slugify(name) == "" {
		return resolver.Resolution{}, resolver.ErrInvalidName
	}
	languageCode = strings.ToLower(strings.TrimSpace(languageCode))
	if itemType, err = domain.ParseItemType(string(itemType)); err != nil {
		return resolver.Resolution{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := requireLanguage(ctx, repository.NewSQLiteLanguageRepo(tx), languageCode); err != nil {
			return err
		}
		r := resolver.New(repository.NewSQLiteWorkItemRepo(tx), s.packs, resolver.WithClock(s.now))
		var err error
		if force {
			res, err = r.Create(ctx, languageCode, itemType, name)
		} else {
			res, err = r.Resolve(ctx, languageCode, itemType, name)
		}
		return err
	})
	if err != nil {
		return resolver.Resolution{}, err
	}
	fields["outcome"] = res.Outcome.String()
	fields["created"] = res.Created
	return res, nil
}

func (s *itemService) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *itemService) ResolveID(ctx context.Context, prefix string) (string, error) {
	return s.items.ResolveID(ctx, strings.TrimSpace(prefix))
}

func (s *itemService) List(ctx context.Context, filter repository.WorkItemFilter) ([]*domain.WorkItem, error) {
	return s.items.List(ctx, filter)
}

// Deactivate soft-deletes the item. Its slug becomes free for a new item.
func (s *itemService) Deactivate(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "deactivate-item", startedAt, map[string]any{"item_id": id}, &err)
	return s.items.Deactivate(ctx, id)
}

func (s *itemService) Recompute(ctx context.Context, id string) (stats domain.ItemStats, err error) {
	startedAt := time.Now()
	defer observe(ctx, s.observer, "recompute-item", startedAt, map[string]any{"item_id": id}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		m := aggregate.NewMaintainer(repository.NewSQLiteWorkItemRepo(tx), repository.NewSQLiteSessionRepo(tx), s.now)
		var err error
		stats, err = m.Recompute(ctx, id)
		return err
	})
	return stats, err
}

func (s *itemService) RecomputeAll(ctx context.Context) (n int, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer observe(ctx, s.observer, "recompute-all", startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		m := aggregate.NewMaintainer(repository.NewSQLiteWorkItemRepo(tx), repository.NewSQLiteSessionRepo(tx), s.now)
		var err error
		n, err = m.RecomputeAll(ctx)
		return err
	})
	fields["items"] = n
	return n, err
}
