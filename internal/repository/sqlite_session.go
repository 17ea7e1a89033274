package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/codelog/internal/db"
	"github.com/alexanderramin/codelog/internal/domain"
)

const sessionColumns = `s.id, s.item_id, s.date, s.status, s.hours_spent, s.notes, s.tags,
		s.difficulty, s.topic, s.points_awarded, s.progress_pct, s.created_at`

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session) error {
	tags, err := encodeTags(s.Tags)
	if err != nil {
		return err
	}
	query := `INSERT INTO sessions (id, item_id, date, status, hours_spent, notes, tags,
		difficulty, topic, points_awarded, progress_pct, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.ItemID,
		s.Date.Format(domain.DateLayout),
		string(s.Status),
		s.HoursSpent,
		s.Notes,
		tags,
		string(s.Difficulty),
		s.Topic,
		s.PointsAwarded,
		s.ProgressPct,
		s.CreatedAt.Format(time.RFC3339),
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// Update rewrites every mutable column of an existing session. created_at is
// left untouched.
func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.Session) error {
	tags, err := encodeTags(s.Tags)
	if err != nil {
		return err
	}
	query := `UPDATE sessions SET item_id = ?, date = ?, status = ?, hours_spent = ?, notes = ?,
		tags = ?, difficulty = ?, topic = ?, points_awarded = ?, progress_pct = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.ItemID,
		s.Date.Format(domain.DateLayout),
		string(s.Status),
		s.HoursSpent,
		s.Notes,
		tags,
		string(s.Difficulty),
		s.Topic,
		s.PointsAwarded,
		s.ProgressPct,
		nowUTC(),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	return requireAffected(res, "session")
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions s WHERE s.id = ?`
	var sr sessionRow
	if err := r.db.QueryRowContext(ctx, query, id).Scan(sr.targets()...); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return sr.build()
}

// ResolveID expands a unique id prefix, as printed by list commands.
func (r *SQLiteSessionRepo) ResolveID(ctx context.Context, prefix string) (string, error) {
	return resolveIDPrefix(ctx, r.db, "sessions", prefix)
}

// ListByItem returns every session of the item, oldest date first.
func (r *SQLiteSessionRepo) ListByItem(ctx context.Context, itemID string) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions s
		WHERE s.item_id = ? ORDER BY s.date, s.created_at, s.id`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by item: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		var sr sessionRow
		if err := rows.Scan(sr.targets()...); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		s, err := sr.build()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// ListSince returns sessions dated on or after since, newest first, joined
// with their work item.
func (r *SQLiteSessionRepo) ListSince(ctx context.Context, since time.Time) ([]SessionView, error) {
	query := `SELECT ` + sessionColumns + `, w.canonical_name, w.language_code, w.type
		FROM sessions s
		JOIN work_items w ON w.id = s.item_id
		WHERE s.date >= ?
		ORDER BY s.date DESC, s.created_at DESC, s.id`
	rows, err := r.db.QueryContext(ctx, query, since.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing recent sessions: %w", err)
	}
	defer rows.Close()

	var views []SessionView
	for rows.Next() {
		var sr sessionRow
		var v SessionView
		var itemType string
		dest := append(sr.targets(), &v.ItemName, &v.LanguageCode, &itemType)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning session view: %w", err)
		}
		s, err := sr.build()
		if err != nil {
			return nil, err
		}
		v.Session = *s
		v.ItemType = domain.ItemType(itemType)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session views: %w", err)
	}
	return views, nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return requireAffected(res, "session")
}

type sessionRow struct {
	session    domain.Session
	date       string
	status     string
	tags       string
	difficulty string
	createdAt  string
}

func (row *sessionRow) targets() []any {
	s := &row.session
	return []any{
		&s.ID, &s.ItemID, &row.date, &row.status, &s.HoursSpent, &s.Notes, &row.tags,
		&row.difficulty, &s.Topic, &s.PointsAwarded, &s.ProgressPct, &row.createdAt,
	}
}

func (row *sessionRow) build() (*domain.Session, error) {
	s := row.session
	var err error
	s.Date, err = time.Parse(domain.DateLayout, row.date)
	if err != nil {
		return nil, fmt.Errorf("parsing session date: %w", err)
	}
	s.CreatedAt, err = time.Parse(time.RFC3339, row.createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	s.Tags, err = decodeTags(row.tags)
	if err != nil {
		return nil, err
	}
	s.Status = domain.SessionStatus(row.status)
	s.Difficulty = domain.Difficulty(row.difficulty)
	return &s, nil
}
