package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS languages (
		code         TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		color        TEXT NOT NULL DEFAULT '',
		active       INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS work_items (
		id                    TEXT PRIMARY KEY,
		language_code         TEXT NOT NULL REFERENCES languages(code),
		type                  TEXT NOT NULL CHECK(type IN ('Exercise','Project')),
		canonical_name        TEXT NOT NULL,
		slug                  TEXT NOT NULL CHECK(slug <> ''),
		default_difficulty    TEXT NOT NULL,
		default_topic         TEXT NOT NULL DEFAULT '',
		target_hours          REAL NOT NULL DEFAULT 0,
		total_logs            INTEGER NOT NULL DEFAULT 0,
		total_hours           REAL NOT NULL DEFAULT 0,
		last_logged_at        TEXT,
		current_streak_days   INTEGER NOT NULL DEFAULT 0,
		longest_streak_days   INTEGER NOT NULL DEFAULT 0,
		projected_finish_date TEXT,
		active                INTEGER NOT NULL DEFAULT 1,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_work_items_active_slug
		ON work_items(language_code, type, slug) WHERE active = 1`,

	`CREATE INDEX IF NOT EXISTS idx_work_items_language ON work_items(language_code, type)`,

	`CREATE TABLE IF NOT EXISTS work_item_aliases (
		work_item_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		alias        TEXT NOT NULL,
		PRIMARY KEY (work_item_id, alias)
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		id             TEXT PRIMARY KEY,
		item_id        TEXT NOT NULL REFERENCES work_items(id),
		date           TEXT NOT NULL,
		status         TEXT NOT NULL
		               CHECK(status IN ('Planned','In Progress','Completed','Blocked')),
		hours_spent    REAL NOT NULL CHECK(hours_spent >= 0),
		notes          TEXT NOT NULL DEFAULT '',
		tags           TEXT NOT NULL DEFAULT '[]',
		difficulty     TEXT NOT NULL
		               CHECK(difficulty IN ('Beginner','Intermediate','Advanced','Expert')),
		topic          TEXT NOT NULL DEFAULT '',
		points_awarded REAL NOT NULL DEFAULT 0,
		progress_pct   REAL NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_item ON sessions(item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date)`,

	`CREATE TABLE IF NOT EXISTS scoring_factors (
		kind  TEXT NOT NULL CHECK(kind IN ('difficulty','status')),
		key   TEXT NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (kind, key)
	)`,

	`INSERT OR IGNORE INTO languages (code, display_name, color, active) VALUES
		('python', 'Python', '#3776ab', 1),
		('go', 'Go', '#00add8', 1),
		('javascript', 'JavaScript', '#f7df1e', 1),
		('rust', 'Rust', '#dea584', 1),
		('sql', 'SQL', '#e38c00', 1)`,

	`INSERT OR IGNORE INTO scoring_factors (kind, key, value) VALUES
		('difficulty', 'Beginner', 1.0),
		('difficulty', 'Intermediate', 1.5),
		('difficulty', 'Advanced', 2.0),
		('difficulty', 'Expert', 2.5),
		('status', 'Planned', 0.5),
		('status', 'In Progress', 1.0),
		('status', 'Completed', 1.2),
		('status', 'Blocked', 0.5)`,
}
