package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/codelog/internal/app"
	"github.com/alexanderramin/codelog/internal/db"
	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/langpack"
	"github.com/alexanderramin/codelog/internal/repository"
	"github.com/alexanderramin/codelog/internal/testutil"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

type testEnv struct {
	db        *sql.DB
	items     *repository.SQLiteWorkItemRepo
	sessions  *repository.SQLiteSessionRepo
	languages *repository.SQLiteLanguageRepo
	config    *repository.SQLiteScoringConfigRepo
	uow       db.UnitOfWork
	packs     langpack.Provider
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testEnv{
		db:        database,
		items:     repository.NewSQLiteWorkItemRepo(database),
		sessions:  repository.NewSQLiteSessionRepo(database),
		languages: repository.NewSQLiteLanguageRepo(database),
		config:    repository.NewSQLiteScoringConfigRepo(database),
		uow:       testutil.NewTestUoW(database),
		packs:     langpack.NewFileProvider(""),
	}
}

func (e testEnv) sessionService(observers ...UseCaseObserver) SessionService {
	return NewSessionService(e.sessions, e.uow, e.packs, testutil.FixedClock(testNow), observers...)
}

func (e testEnv) sessionServiceWith(uow db.UnitOfWork) SessionService {
	return NewSessionService(e.sessions, uow, e.packs, testutil.FixedClock(testNow))
}

func (e testEnv) itemService(observers ...UseCaseObserver) ItemService {
	return NewItemService(e.items, e.uow, e.packs, testutil.FixedClock(testNow), observers...)
}

func (e testEnv) mustItem(t *testing.T, id string) *domain.WorkItem {
	t.Helper()
	w, err := e.items.GetByID(context.Background(), id)
	require.NoError(t, err)
	return w
}

func (e testEnv) sessionCount(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n))
	return n
}

func (e testEnv) itemCount(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM work_items`).Scan(&n))
	return n
}

// logInput builds a completed session against itemID dated testNow.
func logInput(itemID string, hours float64) app.SessionInput {
	return app.SessionInput{
		ItemID:     itemID,
		Date:       testNow,
		Status:     domain.StatusCompleted,
		HoursSpent: hours,
	}
}

func namedInput(name string, hours float64) app.SessionInput {
	return app.SessionInput{
		LanguageCode: "go",
		ItemType:     domain.ItemExercise,
		ItemName:     name,
		Date:         testNow,
		Status:       domain.StatusCompleted,
		HoursSpent:   hours,
	}
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Name)
	}
	return out
}
