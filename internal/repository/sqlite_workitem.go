package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/codelog/internal/db"
	"github.com/alexanderramin/codelog/internal/domain"
)

// workItemColumns is the canonical SELECT column list for work_items.
const workItemColumns = `id, language_code, type, canonical_name, slug,
		default_difficulty, default_topic, target_hours,
		total_logs, total_hours, last_logged_at, current_streak_days, longest_streak_days,
		projected_finish_date, active, created_at`

// SQLiteWorkItemRepo implements WorkItemRepo using a SQLite database.
type SQLiteWorkItemRepo struct {
	db db.DBTX
}

func NewSQLiteWorkItemRepo(conn db.DBTX) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: conn}
}

// Create inserts the item and its aliases. Run it inside a UnitOfWork when
// both writes must land together.
func (r *SQLiteWorkItemRepo) Create(ctx context.Context, w *domain.WorkItem) error {
	query := `INSERT INTO work_items (id, language_code, type, canonical_name, slug,
		default_difficulty, default_topic, target_hours,
		total_logs, total_hours, last_logged_at, current_streak_days, longest_streak_days,
		projected_finish_date, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.LanguageCode,
		string(w.Type),
		w.CanonicalName,
		w.Slug,
		string(w.DefaultDifficulty),
		w.DefaultTopic,
		w.TargetHours,
		w.Stats.TotalLogs,
		w.Stats.TotalHours,
		nullableTimeToString(w.Stats.LastLoggedAt, domain.DateLayout),
		w.Stats.CurrentStreakDays,
		w.Stats.LongestStreakDays,
		nullableTimeToString(w.Stats.ProjectedFinishDate, domain.DateLayout),
		boolToInt(w.Active),
		w.CreatedAt.Format(time.RFC3339),
		w.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work item: %w", err)
	}

	for _, alias := range w.Aliases.Sorted() {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO work_item_aliases (work_item_id, alias) VALUES (?, ?)`,
			w.ID, alias); err != nil {
			return fmt.Errorf("inserting work item alias: %w", err)
		}
	}
	return nil
}

func (r *SQLiteWorkItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE id = ?`
	w, err := r.scanWorkItem(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachAliases(ctx, []*domain.WorkItem{w}); err != nil {
		return nil, err
	}
	return w, nil
}

// ResolveID expands a unique id prefix over active and inactive items.
func (r *SQLiteWorkItemRepo) ResolveID(ctx context.Context, prefix string) (string, error) {
	return resolveIDPrefix(ctx, r.db, "work_items", prefix)
}

func (r *SQLiteWorkItemRepo) GetActiveBySlug(ctx context.Context, languageCode string, itemType domain.ItemType, slug string) (*domain.WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items
		WHERE language_code = ? AND type = ? AND slug = ? AND active = 1`
	w, err := r.scanWorkItem(r.db.QueryRowContext(ctx, query, languageCode, string(itemType), slug))
	if err != nil {
		return nil, err
	}
	if err := r.attachAliases(ctx, []*domain.WorkItem{w}); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *SQLiteWorkItemRepo) ListActive(ctx context.Context, languageCode string, itemType domain.ItemType) ([]*domain.WorkItem, error) {
	return r.List(ctx, WorkItemFilter{LanguageCode: languageCode, Type: itemType})
}

func (r *SQLiteWorkItemRepo) List(ctx context.Context, filter WorkItemFilter) ([]*domain.WorkItem, error) {
	var where []string
	var args []any
	if filter.LanguageCode != "" {
		where = append(where, "language_code = ?")
		args = append(args, filter.LanguageCode)
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}
	if !filter.IncludeInactive {
		where = append(where, "active = 1")
	}

	query := `SELECT ` + workItemColumns + ` FROM work_items`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work items: %w", err)
	}
	items, err := r.scanWorkItems(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	if err := r.attachAliases(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQLiteWorkItemRepo) UpdateStats(ctx context.Context, id string, stats domain.ItemStats) error {
	query := `UPDATE work_items SET
		total_logs = ?, total_hours = ?, last_logged_at = ?,
		current_streak_days = ?, longest_streak_days = ?, projected_finish_date = ?,
		updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		stats.TotalLogs,
		stats.TotalHours,
		nullableTimeToString(stats.LastLoggedAt, domain.DateLayout),
		stats.CurrentStreakDays,
		stats.LongestStreakDays,
		nullableTimeToString(stats.ProjectedFinishDate, domain.DateLayout),
		nowUTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("updating work item stats: %w", err)
	}
	return requireAffected(res, "work item")
}

// Deactivate soft-deletes the item. Its sessions and aliases are kept.
func (r *SQLiteWorkItemRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE work_items SET active = 0, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("deactivating work item: %w", err)
	}
	return requireAffected(res, "work item")
}

// attachAliases loads aliases for items with a single query. Rows from the
// item query must already be closed: the pool holds one connection.
func (r *SQLiteWorkItemRepo) attachAliases(ctx context.Context, items []*domain.WorkItem) error {
	if len(items) == 0 {
		return nil
	}
	byID := make(map[string]*domain.WorkItem, len(items))
	placeholders := make([]string, 0, len(items))
	args := make([]any, 0, len(items))
	for _, w := range items {
		w.Aliases = domain.NewAliasSet()
		byID[w.ID] = w
		placeholders = append(placeholders, "?")
		args = append(args, w.ID)
	}

	query := `SELECT work_item_id, alias FROM work_item_aliases
		WHERE work_item_id IN (` + strings.Join(placeholders, ", ") + `)`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("listing work item aliases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID, alias string
		if err := rows.Scan(&itemID, &alias); err != nil {
			return fmt.Errorf("scanning work item alias: %w", err)
		}
		if w, ok := byID[itemID]; ok {
			w.Aliases.Add(alias)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating work item aliases: %w", err)
	}
	return nil
}

// workItemRow names every scan target so column order lives in one place.
type workItemRow struct {
	item                domain.WorkItem
	itemType            string
	defaultDifficulty   string
	lastLoggedAt        sql.NullString
	projectedFinishDate sql.NullString
	active              int
	createdAt           string
}

func (row *workItemRow) targets() []any {
	w := &row.item
	return []any{
		&w.ID, &w.LanguageCode, &row.itemType, &w.CanonicalName, &w.Slug,
		&row.defaultDifficulty, &w.DefaultTopic, &w.TargetHours,
		&w.Stats.TotalLogs, &w.Stats.TotalHours, &row.lastLoggedAt,
		&w.Stats.CurrentStreakDays, &w.Stats.LongestStreakDays,
		&row.projectedFinishDate, &row.active, &row.createdAt,
	}
}

func (row *workItemRow) build() (*domain.WorkItem, error) {
	w := row.item
	w.Type = domain.ItemType(row.itemType)
	w.DefaultDifficulty = domain.Difficulty(row.defaultDifficulty)
	w.Stats.LastLoggedAt = parseNullableTime(row.lastLoggedAt, domain.DateLayout)
	w.Stats.ProjectedFinishDate = parseNullableTime(row.projectedFinishDate, domain.DateLayout)
	w.Active = intToBool(row.active)

	createdAt, err := time.Parse(time.RFC3339, row.createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	w.CreatedAt = createdAt
	return &w, nil
}

func (r *SQLiteWorkItemRepo) scanWorkItem(row *sql.Row) (*domain.WorkItem, error) {
	var wr workItemRow
	if err := row.Scan(wr.targets()...); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work item: %w", err)
	}
	return wr.build()
}

func (r *SQLiteWorkItemRepo) scanWorkItems(rows *sql.Rows) ([]*domain.WorkItem, error) {
	var items []*domain.WorkItem
	for rows.Next() {
		var wr workItemRow
		if err := rows.Scan(wr.targets()...); err != nil {
			return nil, fmt.Errorf("scanning work item row: %w", err)
		}
		w, err := wr.build()
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	return items, nil
}
