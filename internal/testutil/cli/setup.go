// Package cli provides the harness for CLI integration tests. It is isolated
// from the main testutil package so service tests do not pull in the app
// container.
package cli

import (
	"database/sql"
	"testing"

	"github.com/quadrodev/quadro/internal/app"
	"github.com/quadrodev/quadro/internal/config"
	"github.com/quadrodev/quadro/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App
// instance. The event publisher is nil, commands fall back to local-only mode.
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	appInstance := app.New(db, nil, config.Default().DefaultColumns())
	return db, appInstance
}

// CreateTestProject wraps testutil.CreateTestProject for CLI tests.
func CreateTestProject(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	return testutil.CreateTestProject(t, db, name)
}

// CreateTestColumn wraps testutil.CreateTestColumn for CLI tests.
func CreateTestColumn(t *testing.T, db *sql.DB, projectID int, key, title string, ordinal int) int {
	t.Helper()
	return testutil.CreateTestColumn(t, db, projectID, key, title, ordinal)
}

// CreateTestTask wraps testutil.CreateTestTask for CLI tests.
func CreateTestTask(t *testing.T, db *sql.DB, projectID, columnID int, title string) int {
	t.Helper()
	return testutil.CreateTestTask(t, db, projectID, columnID, title)
}
