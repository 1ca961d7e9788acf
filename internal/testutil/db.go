// Package testutil provides shared helpers for tests that need a database.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/quadrodev/quadro/internal/database"
)

// SetupTestDB creates an in-memory database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := database.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return db
}

// CreateTestProject creates a bare project (no columns) and returns its ID.
func CreateTestProject(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		"INSERT INTO projects (name, description, status) VALUES (?, ?, 'IN_PROGRESS')",
		name, "Test description")
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// CreateTestColumn creates an active column at the given ordinal and returns its ID.
func CreateTestColumn(t *testing.T, db *sql.DB, projectID int, key, title string, ordinal int) int {
	t.Helper()
	result, err := db.ExecContext(context.Background(),
		`INSERT INTO columns (project_id, column_key, title, color, ordinal)
		 VALUES (?, ?, ?, '#6B7280', ?)`,
		projectID, key, title, ordinal)
	if err != nil {
		t.Fatalf("Failed to create test column: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// MarkColumnDone flags a column as a done column.
func MarkColumnDone(t *testing.T, db *sql.DB, columnID int) {
	t.Helper()
	if _, err := db.ExecContext(context.Background(),
		"UPDATE columns SET is_done = 1 WHERE id = ?", columnID); err != nil {
		t.Fatalf("Failed to mark column done: %v", err)
	}
}

// MarkColumnDefault flags a column as the project's entry stage.
func MarkColumnDefault(t *testing.T, db *sql.DB, columnID int) {
	t.Helper()
	if _, err := db.ExecContext(context.Background(),
		"UPDATE columns SET is_default = 1 WHERE id = ?", columnID); err != nil {
		t.Fatalf("Failed to mark column default: %v", err)
	}
}

// CreateTestTask appends a task to a column and returns its ID.
func CreateTestTask(t *testing.T, db *sql.DB, projectID, columnID int, title string) int {
	t.Helper()
	var maxPosition int
	err := db.QueryRowContext(context.Background(),
		"SELECT COALESCE(MAX(position), 0) FROM tasks WHERE column_id = ?", columnID).Scan(&maxPosition)
	if err != nil && err != sql.ErrNoRows {
		t.Fatalf("Failed to get max position: %v", err)
	}

	result, err := db.ExecContext(context.Background(),
		"INSERT INTO tasks (project_id, column_id, title, position) VALUES (?, ?, ?, ?)",
		projectID, columnID, title, maxPosition+1)
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	id, _ := result.LastInsertId()
	return int(id)
}

// ColumnOrdinals returns key→ordinal for the active columns of a project.
func ColumnOrdinals(t *testing.T, db *sql.DB, projectID int) map[string]int {
	t.Helper()
	rows, err := db.QueryContext(context.Background(),
		"SELECT column_key, ordinal FROM columns WHERE project_id = ? AND is_active = 1", projectID)
	if err != nil {
		t.Fatalf("Failed to query ordinals: %v", err)
	}
	defer rows.Close()

	ordinals := make(map[string]int)
	for rows.Next() {
		var key string
		var ordinal int
		if err := rows.Scan(&key, &ordinal); err != nil {
			t.Fatalf("Failed to scan ordinal: %v", err)
		}
		ordinals[key] = ordinal
	}
	return ordinals
}

// TaskPositions returns id→position for the tasks of a column.
func TaskPositions(t *testing.T, db *sql.DB, columnID int) map[int]int {
	t.Helper()
	rows, err := db.QueryContext(context.Background(),
		"SELECT id, position FROM tasks WHERE column_id = ?", columnID)
	if err != nil {
		t.Fatalf("Failed to query positions: %v", err)
	}
	defer rows.Close()

	positions := make(map[int]int)
	for rows.Next() {
		var id, position int
		if err := rows.Scan(&id, &position); err != nil {
			t.Fatalf("Failed to scan position: %v", err)
		}
		positions[id] = position
	}
	return positions
}

// AssertGaplessOrdinals fails the test unless the active-column ordinals of a
// project are exactly {1..N}.
func AssertGaplessOrdinals(t *testing.T, db *sql.DB, projectID int) {
	t.Helper()
	ordinals := ColumnOrdinals(t, db, projectID)
	seen := make(map[int]bool)
	for key, ordinal := range ordinals {
		if seen[ordinal] {
			t.Errorf("duplicate ordinal %d (column %q)", ordinal, key)
		}
		seen[ordinal] = true
	}
	for i := 1; i <= len(ordinals); i++ {
		if !seen[i] {
			t.Errorf("missing ordinal %d in %v", i, ordinals)
		}
	}
}
