package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/codelog/internal/aggregate"
	"github.com/alexanderramin/codelog/internal/app"
	"github.com/alexanderramin/codelog/internal/db"
	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/langpack"
	"github.com/alexanderramin/codelog/internal/normalize"
	"github.com/alexanderramin/codelog/internal/repository"
	"github.com/alexanderramin/codelog/internal/resolver"
	"github.com/alexanderramin/codelog/internal/scoring"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	packs    langpack.Provider
	now      Clock
	locks    *keyedMutex
	observer UseCaseObserver
}

func NewSessionService(
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	packs langpack.Provider,
	now Clock,
	observers ...UseCaseObserver,
) SessionService {
	return &sessionService{
		sessions: sessions,
		uow:      uow,
		packs:    packs,
		now:      clockOrSystem(now),
		locks:    newKeyedMutex(),
		observer: useCaseObserverOrNoop(observers),
	}
}

// Upsert resolves the item, scores the session against the item's full
// history, stores it and recomputes the item's stats, all in one
// transaction. It returns the session id.
func (s *sessionService) Upsert(ctx context.Context, in app.SessionInput) (id string, err error) {
	startedAt := time.Now()
	fields := map[string]any{"mode": "insert"}
	if in.ID != "" {
		fields["mode"] = "update"
	}
	defer observe(ctx, s.observer, "upsert-session", startedAt, fields, &err)

	if in, err = normalizeSessionInput(in); err != nil {
		return "", err
	}

	unlock := s.locks.Lock(itemLockKey(in), sessionLockKey(in.ID))
	defer unlock()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteWorkItemRepo(tx)
		sessions := repository.NewSQLiteSessionRepo(tx)
		maintainer := aggregate.NewMaintainer(items, sessions, s.now)

		var existing *domain.Session
		if in.ID != "" {
			var err error
			if existing, err = sessions.GetByID(ctx, in.ID); err != nil {
				return fmt.Errorf("loading session %s: %w", in.ID, err)
			}
		}

		itemID, err := s.targetItem(ctx, tx, in, existing, fields)
		if err != nil {
			return err
		}
		item, err := items.GetByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("loading work item %s: %w", itemID, err)
		}
		if !item.Active {
			return fmt.Errorf("%s: %w", item.CanonicalName, ErrItemInactive)
		}

		// Total over the stored history, minus the row being replaced.
		history, err := sessions.ListByItem(ctx, item.ID)
		if err != nil {
			return fmt.Errorf("reading item history: %w", err)
		}
		var priorHours float64
		for _, h := range history {
			if h.ID != in.ID {
				priorHours += h.HoursSpent
			}
		}

		cfg, err := repository.NewSQLiteScoringConfigRepo(tx).Get(ctx)
		if err != nil {
			return fmt.Errorf("loading scoring config: %w", err)
		}

		sess := &domain.Session{
			ItemID:     item.ID,
			Date:       domain.DateOf(in.Date),
			Status:     in.Status,
			HoursSpent: in.HoursSpent,
			Notes:      strings.TrimSpace(in.Notes),
			Tags:       cleanTags(in.Tags),
			Difficulty: domain.Difficulty(domain.CoalesceStr(string(in.Difficulty), string(item.DefaultDifficulty))),
			Topic:      domain.CoalesceStr(strings.TrimSpace(in.Topic), item.DefaultTopic),
		}
		sess.ProgressPct = scoring.ProgressPct(priorHours+in.HoursSpent, item.TargetHours)
		sess.PointsAwarded = scoring.Points(in.HoursSpent, sess.Difficulty, sess.Status, cfg)

		if existing == nil {
			sess.ID = uuid.New().String()
			sess.CreatedAt = s.now().UTC().Truncate(time.Second)
			if err := sessions.Create(ctx, sess); err != nil {
				return err
			}
		} else {
			sess.ID = existing.ID
			sess.CreatedAt = existing.CreatedAt
			if err := sessions.Update(ctx, sess); err != nil {
				return err
			}
		}

		if _, err := maintainer.Recompute(ctx, item.ID); err != nil {
			return err
		}
		if existing != nil && existing.ItemID != item.ID {
			fields["moved_from"] = existing.ItemID
			if _, err := maintainer.Recompute(ctx, existing.ItemID); err != nil {
				return err
			}
		}

		id = sess.ID
		fields["item_id"] = item.ID
		fields["points"] = sess.PointsAwarded
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// targetItem picks the item id for in: explicit id, then name resolution,
// then the item the existing session already belongs to.
func (s *sessionService) targetItem(ctx context.Context, tx db.DBTX, in app.SessionInput, existing *domain.Session, fields map[string]any) (string, error) {
	switch {
	case in.ItemID != "":
		return in.ItemID, nil
	case in.NamesItem():
		if err := requireLanguage(ctx, repository.NewSQLiteLanguageRepo(tx), in.LanguageCode); err != nil {
			return "", err
		}
		r := resolver.New(repository.NewSQLiteWorkItemRepo(tx), s.packs, resolver.WithClock(s.now))
		var res resolver.Resolution
		var err error
		if in.ForceCreate {
			res, err = r.Create(ctx, in.LanguageCode, in.ItemType, in.ItemName)
		} else {
			res, err = r.Resolve(ctx, in.LanguageCode, in.ItemType, in.ItemName)
		}
		if err != nil {
			return "", err
		}
		if res.Outcome == resolver.Suggested {
			return "", &AmbiguousItemError{Name: in.ItemName, Suggestions: res.Suggestions}
		}
		fields["item_created"] = res.Created
		return res.ItemID, nil
	case existing != nil:
		return existing.ItemID, nil
	default:
		return "", fmt.Errorf("%w: session names no work item", ErrInvalidInput)
	}
}

// Delete removes the session and recomputes its item. When it was the
// item's last session the stats stay as they were.
func (s *sessionService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"session_id": id}
	defer observe(ctx, s.observer, "delete-session", startedAt, fields, &err)

	keys := []string{sessionLockKey(id)}
	if sess, err := s.sessions.GetByID(ctx, id); err == nil {
		keys = append(keys, "item:"+sess.ItemID)
	}
	unlock := s.locks.Lock(keys...)
	defer unlock()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		items := repository.NewSQLiteWorkItemRepo(tx)
		sessions := repository.NewSQLiteSessionRepo(tx)

		sess, err := sessions.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("loading session %s: %w", id, err)
		}
		fields["item_id"] = sess.ItemID
		if err := sessions.Delete(ctx, id); err != nil {
			return err
		}
		_, err = aggregate.NewMaintainer(items, sessions, s.now).Recompute(ctx, sess.ItemID)
		return err
	})
}

func (s *sessionService) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *sessionService) ResolveID(ctx context.Context, prefix string) (string, error) {
	return s.sessions.ResolveID(ctx, strings.TrimSpace(prefix))
}

func (s *sessionService) ListByItem(ctx context.Context, itemID string) ([]*domain.Session, error) {
	return s.sessions.ListByItem(ctx, itemID)
}

// ListRecent returns sessions from the last days calendar days, today
// included.
func (s *sessionService) ListRecent(ctx context.Context, days int) ([]repository.SessionView, error) {
	if days <= 0 {
		days = 7
	}
	since := domain.DateOf(s.now()).AddDate(0, 0, -(days - 1))
	return s.sessions.ListSince(ctx, since)
}

// normalizeSessionInput validates in and rewrites enum fields to their
// canonical spelling.
func normalizeSessionInput(in app.SessionInput) (app.SessionInput, error) {
	if in.HoursSpent < 0 || math.IsNaN(in.HoursSpent) || math.IsInf(in.HoursSpent, 0) {
		return in, fmt.Errorf("%w: hours spent must be a non-negative number", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return in, fmt.Errorf("%w: session date is required", ErrInvalidInput)
	}
	st, err := domain.ParseSessionStatus(string(in.Status))
	if err != nil {
		return in, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	in.Status = st
	if in.Difficulty != "" {
		d, err := domain.ParseDifficulty(string(in.Difficulty))
		if err != nil {
			return in, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		in.Difficulty = d
	}
	if in.NamesItem() {
		t, err := domain.ParseItemType(string(in.ItemType))
		if err != nil {
			return in, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		in.ItemType = t
		in.LanguageCode = strings.ToLower(strings.TrimSpace(in.LanguageCode))
		if normalize.Slugify(in.ItemName) == "" {
			return in, resolver.ErrInvalidName
		}
	}
	return in, nil
}

func requireLanguage(ctx context.Context, languages repository.LanguageRepo, code string) error {
	l, err := languages.GetByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("unknown language %q: %w", code, err)
	}
	if err != nil {
		return fmt.Errorf("loading language: %w", err)
	}
	if !l.Active {
		return fmt.Errorf("%w: language %q is inactive", ErrInvalidInput, code)
	}
	return nil
}

// itemLockKey names the item an upsert targets before it is resolved. A
// by-name and a by-id upsert of the same item get different keys, so the
// keyed mutex only orders callers within one key. Exclusion across keys
// comes from the single pooled connection: each WithinTx holds it for the
// whole transaction.
func itemLockKey(in app.SessionInput) string {
	if in.ItemID != "" {
		return "item:" + in.ItemID
	}
	if in.NamesItem() {
		return "name:" + in.LanguageCode + "/" + string(in.ItemType) + "/" + normalize.Slugify(in.ItemName)
	}
	return ""
}

func sessionLockKey(id string) string {
	if id == "" {
		return ""
	}
	return "session:" + id
}

func cleanTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
