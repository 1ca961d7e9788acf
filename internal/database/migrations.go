package database

import (
	"context"
	"database/sql"
)

// RunMigrations creates the database schema. All statements are idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL DEFAULT 'IN_PROGRESS',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS columns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL,
		column_key TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		color TEXT NOT NULL DEFAULT '#6B7280',
		ordinal INTEGER NOT NULL,
		wip_limit INTEGER,
		is_default BOOLEAN NOT NULL DEFAULT 0,
		is_done BOOLEAN NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	);

	-- Key, title and ordinal are unique among ACTIVE columns of a project;
	-- soft-deleted rows keep their values without blocking reuse.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_columns_key_per_project
	ON columns(project_id, column_key) WHERE is_active = 1;
	CREATE UNIQUE INDEX IF NOT EXISTS idx_columns_title_per_project
	ON columns(project_id, title) WHERE is_active = 1;
	CREATE UNIQUE INDEX IF NOT EXISTS idx_columns_ordinal_per_project
	ON columns(project_id, ordinal) WHERE is_active = 1;
	CREATE UNIQUE INDEX IF NOT EXISTS idx_columns_default_per_project
	ON columns(project_id) WHERE is_default = 1 AND is_active = 1;

	CREATE TABLE IF NOT EXISTS tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL,
		column_id INTEGER,
		title TEXT NOT NULL,
		description TEXT,
		position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
		FOREIGN KEY (column_id) REFERENCES columns(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks(column_id, position);
	CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);
	CREATE INDEX IF NOT EXISTS idx_columns_project ON columns(project_id);

	-- Unified append-only audit log. History entries and movement records
	-- are projections over this table.
	CREATE TABLE IF NOT EXISTS task_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		before_value TEXT,
		after_value TEXT,
		from_label TEXT,
		to_label TEXT,
		actor_id TEXT,
		actor_name TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_task_events_task ON task_events(task_id, created_at);
	`

	_, err := db.ExecContext(ctx, schema)
	return err
}
