// Package project implements project lifecycle and the derived status:
// creating a project triggers the default column set, and moving tasks in
// and out of done columns recomputes the aggregate status.
package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quadrodev/quadro/internal/database"
	"github.com/quadrodev/quadro/internal/events"
	"github.com/quadrodev/quadro/internal/models"
	columnservice "github.com/quadrodev/quadro/internal/services/column"
)

// Service defines all project-related business operations
type Service interface {
	CreateProject(ctx context.Context, name, description string) (*models.Project, error)
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	DeleteProject(ctx context.Context, id int) error

	// RefreshStatus recomputes the derived status of a project from its
	// tasks' column membership.
	RefreshStatus(ctx context.Context, projectID int) error
}

type service struct {
	db          *sql.DB
	columns     columnservice.Service
	eventClient events.Publisher
}

// NewService creates a new project service
func NewService(db *sql.DB, columns columnservice.Service, eventClient events.Publisher) Service {
	return &service{
		db:          db,
		columns:     columns,
		eventClient: eventClient,
	}
}

// CreateProject creates a project and its canonical column set. Column
// initialization is the "project created" trigger for the board engine.
func (s *service) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if len(name) > 100 {
		return nil, ErrNameTooLong
	}

	p, err := database.CreateProject(ctx, s.db, name, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	if _, err := s.columns.InitializeDefaults(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("failed to initialize columns: %w", err)
	}

	return p, nil
}

// GetProjectByID retrieves a single project
func (s *service) GetProjectByID(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}
	p, err := database.GetProjectByID(ctx, s.db, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	return p, err
}

// GetAllProjects retrieves every project
func (s *service) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	return database.GetAllProjects(ctx, s.db)
}

// DeleteProject removes a project and everything it owns
func (s *service) DeleteProject(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidProjectID
	}
	exists, err := database.ProjectExists(ctx, s.db, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProjectNotFound
	}
	return database.DeleteProject(ctx, s.db, id)
}

// RefreshStatus recomputes the project status in its own transaction.
func (s *service) RefreshStatus(ctx context.Context, projectID int) error {
	if projectID <= 0 {
		return ErrInvalidProjectID
	}

	var changed bool
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		changed, err = RefreshStatusTx(ctx, tx, projectID)
		return err
	})
	if err != nil {
		return err
	}

	if changed {
		s.publishStatusEvent(projectID)
	}
	return nil
}

// RefreshStatusTx recomputes a project's derived status using the caller's
// transaction, so the engine can fold it into the same atomic unit as a task
// move. Returns whether the status changed.
//
// Rules: no tasks is a no-op; all tasks in done columns promotes to
// COMPLETED; anything else demotes a COMPLETED project back to IN_PROGRESS.
// No other transitions happen automatically.
func RefreshStatusTx(ctx context.Context, q database.DBTX, projectID int) (bool, error) {
	p, err := database.GetProjectByID(ctx, q, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrProjectNotFound
	}
	if err != nil {
		return false, err
	}

	total, err := database.CountTasksByProject(ctx, q, projectID)
	if err != nil {
		return false, fmt.Errorf("failed to count tasks: %w", err)
	}
	if total == 0 {
		return false, nil
	}

	outsideDone, err := database.CountTasksOutsideDone(ctx, q, projectID)
	if err != nil {
		return false, fmt.Errorf("failed to count unfinished tasks: %w", err)
	}

	switch {
	case outsideDone == 0 && p.Status != models.StatusCompleted:
		if err := database.UpdateProjectStatus(ctx, q, projectID, models.StatusCompleted); err != nil {
			return false, fmt.Errorf("failed to complete project: %w", err)
		}
		slog.Info("project completed", "project_id", projectID)
		return true, nil

	case outsideDone > 0 && p.Status == models.StatusCompleted:
		// The project just regressed out of done
		if err := database.UpdateProjectStatus(ctx, q, projectID, models.StatusInProgress); err != nil {
			return false, fmt.Errorf("failed to reopen project: %w", err)
		}
		slog.Info("project reopened", "project_id", projectID)
		return true, nil
	}

	return false, nil
}

func (s *service) publishStatusEvent(projectID int) {
	if err := events.NotifyWithRetry(s.eventClient, events.Event{
		Type:      events.EventStatusChanged,
		ProjectID: projectID,
	}, 3); err != nil {
		slog.Debug("failed to publish status event", "project_id", projectID, "error", err)
	}
}
