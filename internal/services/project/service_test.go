package project

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/quadrodev/quadro/internal/database"
	"github.com/quadrodev/quadro/internal/models"
	columnservice "github.com/quadrodev/quadro/internal/services/column"
	"github.com/quadrodev/quadro/internal/testutil"
)

func testSeeds() []models.ColumnSeed {
	return []models.ColumnSeed{
		{Key: "todo", Title: "A Fazer", Color: "#3B82F6", IsDefault: true},
		{Key: "done", Title: "Concluído", Color: "#22C55E", IsDone: true},
	}
}

func setupService(t *testing.T) (Service, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	columns := columnservice.NewService(db, nil, testSeeds())
	return NewService(db, columns, nil), db
}

func TestCreateProjectSeedsColumns(t *testing.T) {
	t.Parallel()
	svc, db := setupService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "Roadmap", "Q3 work")
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}
	if p.Status != models.StatusInProgress {
		t.Errorf("New project status = %q, want IN_PROGRESS", p.Status)
	}

	ordinals := testutil.ColumnOrdinals(t, db, p.ID)
	if len(ordinals) != 2 {
		t.Fatalf("Expected 2 seeded columns, got %d", len(ordinals))
	}
	if ordinals["todo"] != 1 || ordinals["done"] != 2 {
		t.Errorf("Seeded ordinals = %v", ordinals)
	}
}

func TestCreateProjectValidation(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.CreateProject(ctx, "  ", ""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	if _, err := svc.CreateProject(ctx, strings.Repeat("x", 101), ""); !errors.Is(err, ErrNameTooLong) {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
}

func TestGetProjectByIDNotFound(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	_, err := svc.GetProjectByID(context.Background(), 9999)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got %v", err)
	}
}

func TestDeleteProject(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "Short lived", "")
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}
	if err := svc.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProject() failed: %v", err)
	}
	if _, err := svc.GetProjectByID(ctx, p.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound after delete, got %v", err)
	}
}

func TestRefreshStatusNoTasks(t *testing.T) {
	t.Parallel()
	svc, db := setupService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "Empty", "")
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}

	if err := svc.RefreshStatus(ctx, p.ID); err != nil {
		t.Fatalf("RefreshStatus() failed: %v", err)
	}

	got, err := database.GetProjectByID(ctx, db, p.ID)
	if err != nil {
		t.Fatalf("GetProjectByID() failed: %v", err)
	}
	if got.Status != models.StatusInProgress {
		t.Errorf("Status with no tasks = %q, want unchanged IN_PROGRESS", got.Status)
	}
}

func TestRefreshStatusCompletes(t *testing.T) {
	t.Parallel()
	svc, db := setupService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "Almost done", "")
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}
	var doneID int
	if err := db.QueryRowContext(ctx,
		"SELECT id FROM columns WHERE project_id = ? AND column_key = 'done'", p.ID).Scan(&doneID); err != nil {
		t.Fatalf("Failed to find done column: %v", err)
	}
	testutil.CreateTestTask(t, db, p.ID, doneID, "finished work")

	if err := svc.RefreshStatus(ctx, p.ID); err != nil {
		t.Fatalf("RefreshStatus() failed: %v", err)
	}

	got, err := database.GetProjectByID(ctx, db, p.ID)
	if err != nil {
		t.Fatalf("GetProjectByID() failed: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want COMPLETED", got.Status)
	}
}

func TestRefreshStatusReopens(t *testing.T) {
	t.Parallel()
	svc, db := setupService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, "Reopened", "")
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}

	var todoID int
	if err := db.QueryRowContext(ctx,
		"SELECT id FROM columns WHERE project_id = ? AND column_key = 'todo'", p.ID).Scan(&todoID); err != nil {
		t.Fatalf("Failed to find todo column: %v", err)
	}
	testutil.CreateTestTask(t, db, p.ID, todoID, "new work")

	if err := database.UpdateProjectStatus(ctx, db, p.ID, models.StatusCompleted); err != nil {
		t.Fatalf("Failed to force COMPLETED: %v", err)
	}

	if err := svc.RefreshStatus(ctx, p.ID); err != nil {
		t.Fatalf("RefreshStatus() failed: %v", err)
	}

	got, err := database.GetProjectByID(ctx, db, p.ID)
	if err != nil {
		t.Fatalf("GetProjectByID() failed: %v", err)
	}
	if got.Status != models.StatusInProgress {
		t.Errorf("Status = %q, want IN_PROGRESS after regression", got.Status)
	}
}

func TestRefreshStatusProjectNotFound(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	err := svc.RefreshStatus(context.Background(), 9999)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got %v", err)
	}
}
