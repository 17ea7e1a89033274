package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/codelog/internal/db"
	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// ClearScoringConfig removes the seeded scoring factors so every key falls
// back to 1.0.
func ClearScoringConfig(t *testing.T, database *sql.DB) {
	t.Helper()
	if _, err := database.Exec(`DELETE FROM scoring_factors`); err != nil {
		t.Fatalf("clearing scoring factors: %v", err)
	}
}

// SeedItem stores w and fails the test on error.
func SeedItem(t *testing.T, database *sql.DB, w *domain.WorkItem) *domain.WorkItem {
	t.Helper()
	if err := repository.NewSQLiteWorkItemRepo(database).Create(context.Background(), w); err != nil {
		t.Fatalf("seeding work item %q: %v", w.CanonicalName, err)
	}
	return w
}

// SeedSession stores s directly, bypassing scoring and aggregate upkeep.
func SeedSession(t *testing.T, database *sql.DB, s *domain.Session) *domain.Session {
	t.Helper()
	if err := repository.NewSQLiteSessionRepo(database).Create(context.Background(), s); err != nil {
		t.Fatalf("seeding session: %v", err)
	}
	return s
}
