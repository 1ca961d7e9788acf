package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/quadrodev/quadro/internal/database"
	"github.com/quadrodev/quadro/internal/models"
	"github.com/quadrodev/quadro/internal/testutil"
)

func TestGetProjectByIDRejectsCorruptStatus(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	projectID := testutil.CreateTestProject(t, db, "Corrupt Status")
	if _, err := db.ExecContext(ctx,
		`UPDATE projects SET status = 'ARCHIVED' WHERE id = ?`, projectID,
	); err != nil {
		t.Fatalf("Failed to corrupt status: %v", err)
	}

	_, err := database.GetProjectByID(ctx, db, projectID)
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}

func TestGetAllProjectsRejectsCorruptStatus(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	testutil.CreateTestProject(t, db, "Healthy")
	badID := testutil.CreateTestProject(t, db, "Corrupt")
	if _, err := db.ExecContext(ctx,
		`UPDATE projects SET status = 'bogus' WHERE id = ?`, badID,
	); err != nil {
		t.Fatalf("Failed to corrupt status: %v", err)
	}

	_, err := database.GetAllProjects(ctx, db)
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Errorf("Expected ErrInvalidStatus, got %v", err)
	}
}

func TestGetProjectByIDRoundtrip(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	created, err := database.CreateProject(ctx, db, "Roundtrip", "a description")
	if err != nil {
		t.Fatalf("CreateProject() failed: %v", err)
	}
	if created.Status != models.StatusInProgress {
		t.Errorf("New project status = %q, want %q", created.Status, models.StatusInProgress)
	}

	got, err := database.GetProjectByID(ctx, db, created.ID)
	if err != nil {
		t.Fatalf("GetProjectByID() failed: %v", err)
	}
	if got.Name != "Roundtrip" || got.Description != "a description" {
		t.Errorf("Fetched project = %q/%q, want Roundtrip/a description", got.Name, got.Description)
	}
}
