package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/codelog/internal/db"
	"github.com/alexanderramin/codelog/internal/domain"
)

// SQLiteLanguageRepo implements LanguageRepo using a SQLite database.
type SQLiteLanguageRepo struct {
	db db.DBTX
}

func NewSQLiteLanguageRepo(conn db.DBTX) *SQLiteLanguageRepo {
	return &SQLiteLanguageRepo{db: conn}
}

// Create inserts a language or replaces the display fields of an existing one.
func (r *SQLiteLanguageRepo) Create(ctx context.Context, l *domain.Language) error {
	query := `INSERT INTO languages (code, display_name, color, active) VALUES (?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			display_name = excluded.display_name,
			color = excluded.color,
			active = excluded.active`
	if _, err := r.db.ExecContext(ctx, query, l.Code, l.DisplayName, l.Color, boolToInt(l.Active)); err != nil {
		return fmt.Errorf("upserting language: %w", err)
	}
	return nil
}

func (r *SQLiteLanguageRepo) GetByCode(ctx context.Context, code string) (*domain.Language, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT code, display_name, color, active FROM languages WHERE code = ?`, code)

	var l domain.Language
	var active int
	if err := row.Scan(&l.Code, &l.DisplayName, &l.Color, &active); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("language %q: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning language: %w", err)
	}
	l.Active = intToBool(active)
	return &l, nil
}

func (r *SQLiteLanguageRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Language, error) {
	query := `SELECT code, display_name, color, active FROM languages`
	if !includeInactive {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing languages: %w", err)
	}
	defer rows.Close()

	var langs []*domain.Language
	for rows.Next() {
		var l domain.Language
		var active int
		if err := rows.Scan(&l.Code, &l.DisplayName, &l.Color, &active); err != nil {
			return nil, fmt.Errorf("scanning language row: %w", err)
		}
		l.Active = intToBool(active)
		langs = append(langs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating languages: %w", err)
	}
	return langs, nil
}
