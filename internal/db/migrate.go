package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations is the ordered list of schema statements. Each statement must
// be safe to re-run against an already-migrated database.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS applications (
		id             TEXT PRIMARY KEY,
		company        TEXT NOT NULL,
		role           TEXT NOT NULL,
		role_type      TEXT NOT NULL,
		status         TEXT NOT NULL
		               CHECK(status IN ('applied','shortlisted','interview','offer','rejected')),
		interview_date TEXT,
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	// round_type deliberately has no CHECK constraint: it is an open set and
	// unknown values must round-trip unchanged.
	`CREATE TABLE IF NOT EXISTS interview_rounds (
		id             TEXT PRIMARY KEY,
		application_id TEXT NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
		round_number   INTEGER NOT NULL,
		round_type     TEXT NOT NULL,
		scheduled_date TEXT,
		notes          TEXT NOT NULL DEFAULT '',
		questions      TEXT NOT NULL DEFAULT '[]',
		feedback       TEXT,
		created_at     TEXT NOT NULL,
		UNIQUE(application_id, round_number)
	)`,

	`CREATE TABLE IF NOT EXISTS sprints (
		id             TEXT PRIMARY KEY,
		application_id TEXT NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
		interview_date TEXT NOT NULL,
		role_type      TEXT NOT NULL,
		total_days     INTEGER NOT NULL,
		status         TEXT NOT NULL
		               CHECK(status IN ('active','completed','expired')),
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sprints_application ON sprints(application_id)`,

	`CREATE TABLE IF NOT EXISTS daily_plans (
		sprint_id TEXT NOT NULL REFERENCES sprints(id) ON DELETE CASCADE,
		day       INTEGER NOT NULL,
		date      TEXT NOT NULL,
		focus     TEXT NOT NULL,
		PRIMARY KEY (sprint_id, day)
	)`,

	`CREATE TABLE IF NOT EXISTS blocks (
		id        TEXT PRIMARY KEY,
		sprint_id TEXT NOT NULL,
		day       INTEGER NOT NULL,
		position  INTEGER NOT NULL,
		type      TEXT NOT NULL,
		duration  TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (sprint_id, day) REFERENCES daily_plans(sprint_id, day) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_blocks_plan ON blocks(sprint_id, day)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		block_id    TEXT NOT NULL REFERENCES blocks(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		description TEXT NOT NULL,
		category    TEXT NOT NULL DEFAULT '',
		completed   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_block ON tasks(block_id)`,

	// Singleton aggregate row.
	`CREATE TABLE IF NOT EXISTS user_progress (
		id                    INTEGER PRIMARY KEY CHECK(id = 1),
		current_streak        INTEGER NOT NULL DEFAULT 0,
		longest_streak        INTEGER NOT NULL DEFAULT 0,
		last_active_date      TEXT,
		total_tasks_completed INTEGER NOT NULL DEFAULT 0,
		updated_at            TEXT NOT NULL
	)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
