// Package column implements the column manager: creation and lifecycle of a
// project's columns, ordinal maintenance, and the idempotent default set for
// new projects.
package column

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
	"github.com/quadrodev/quadro/internal/ordering"
)

// DefaultColor is applied when a column is created without an explicit color.
const DefaultColor = "#6B7280"

// Service defines all column-related business operations
type Service interface {
	// Read operations
	GetColumnByID(ctx context.Context, id int) (*models.Column, error)
	ListActive(ctx context.Context, projectID int) ([]*models.Column, error)
	ListAll(ctx context.Context, projectID int) ([]*models.Column, error)

	// InitializeDefaults creates the canonical column set for a new project.
	// Idempotent: if the project already has any columns it returns the
	// existing active set unchanged.
	InitializeDefaults(ctx context.Context, projectID int) ([]*models.Column, error)

	// Write operations
	CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error)
	UpdateColumn(ctx context.Context, id int, req UpdateColumnRequest) (*models.Column, error)
	SoftDeleteColumn(ctx context.Context, id int, moveToColumnID *int) error
	HardDeleteColumn(ctx context.Context, id int) error
	ReorderColumns(ctx context.Context, projectID int, orderedIDs []int) error
}

// CreateColumnRequest encapsulates data for creating a column
type CreateColumnRequest struct {
	ProjectID   int
	Title       string
	Description string
	Color       string
	Ordinal     *int // nil = append after the last active column
	WIPLimit    *int
	IsDone      bool
}

/// UpdateColumnRequest is a partial update: nil pointer fields are left
// untouched. IsDone and IsActive are always overwritten from the request.
type UpdateColumnRequest struct {
	Title       *string
	Description *string
	Color       *string
	WIPLimit    *int
	IsDone      bool
	IsActive    bool
}

type service struct {
	db          *sql.DB
	eventClient events.Publisher
	seeds       []models.ColumnSeed
}

// NewService creates a new column service. seeds is the canonical column set
// used by InitializeDefaults, normally config.DefaultColumns().
func NewService(db *sql.DB, eventClient events.Publisher, seeds []models.ColumnSeed) Service {
	return &service{
		db:          db,
		eventClient: eventClient,
		seeds:       seeds,
	}
}

// GetColumnByID retrieves a specific column
func (s *service) GetColumnByID(ctx context.Context, id int) (*models.Column, error) {
	if id <= 0 {
		return nil, ErrInvalidColumnID
	}
	col, err := database.GetColumnByID(ctx, s.db, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrColumnNotFound
	}
	return col, err
}

// ListActive returns the active columns of a project ordered by ordinal.
// If the project has no columns yet it lazily initializes the default set.
func (s *service) ListActive(ctx context.Context, projectID int) ([]*models.Column, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	columns, err := database.ListActiveColumns(ctx, s.db, projectID)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return s.InitializeDefaults(ctx, projectID)
	}
	return columns, nil
}

// ListAll returns every column of a project, soft-deleted ones included.
func (s *service) ListAll(ctx context.Context, projectID int) ([]*models.Column, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	return database.ListAllColumns(ctx, s.db, projectID)
}

// InitializeDefaults creates the canonical columns for a new project as one
// atomic unit: either all of them exist afterwards or none do.
func (s *service) InitializeDefaults(ctx context.Context, projectID int) ([]*models.Column, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}

	exists, err := database.ProjectExists(ctx, s.db, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	if !exists {
		return nil, ErrProjectNotFound
	}

	count, err := database.CountColumns(ctx, s.db, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count columns: %w", err)
	}
	if count > 0 {
		// Already initialized (or partially managed by hand): leave untouched
		return database.ListActiveColumns(ctx, s.db, projectID)
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for i, seed := range s.seeds {
			col := &models.Column{
				ProjectID: projectID,
				Key:       seed.Key,
				Title:     seed.Title,
				Color:     seed.Color,
				Ordinal:   i + 1,
				IsDefault: seed.IsDefault,
				IsDone:    seed.IsDone,
				IsActive:  true,
			}
			if _, err := database.InsertColumn(ctx, tx, col); err != nil {
				return fmt.Errorf("failed to create column %q: %w", seed.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishColumnEvent(projectID)

	return database.ListActiveColumns(ctx, s.db, projectID)
}

// CreateColumn creates a new column, making room at the requested ordinal or
// appending after the last active column.
func (s *service) CreateColumn(ctx context.Context, req CreateColumnRequest) (*models.Column, error) {
	if err := s.validateCreateColumn(req); err != nil {
		return nil, err
	}

	exists, err := database.ProjectExists(ctx, s.db, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project: %w", err)
	}
	if !exists {
		return nil, ErrProjectNotFound
	}

	key := DeriveKey(req.Title)

	color := req.Color
	if color == "" {
		color = DefaultColor
	}

	var created *models.Column
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		taken, err := database.ActiveTitleExists(ctx, tx, req.ProjectID, req.Title, 0)
		if err != nil {
			return fmt.Errorf("failed to check title: %w", err)
		}
		if taken {
			return ErrDuplicateTitle
		}

		keyTaken, err := database.ActiveKeyExists(ctx, tx, req.ProjectID, key)
		if err != nil {
			return fmt.Errorf("failed to check key: %w", err)
		}
		if keyTaken {
			return ErrDuplicateKey
		}

		active, err := database.ListActiveColumns(ctx, tx, req.ProjectID)
		if err != nil {
			return err
		}
		count := len(active)

		var ord int
		if req.Ordinal != nil {
			ord = ordering.Clamp(*req.Ordinal, count)
			if err := database.OpenOrdinalSlot(ctx, tx, req.ProjectID, ord); err != nil {
				return fmt.Errorf("failed to make room at ordinal %d: %w", ord, err)
			}
		} else {
			ord, err = database.NextOrdinal(ctx, tx, req.ProjectID)
			if err != nil {
				return err
			}
		}

		col := &models.Column{
			ProjectID:   req.ProjectID,
			Key:         key,
			Title:       req.Title,
			Description: req.Description,
			Color:       color,
			Ordinal:     ord,
			WIPLimit:    req.WIPLimit,
			IsDefault:   false,
			IsDone:      req.IsDone,
			IsActive:    true,
		}
		id, err := database.InsertColumn(ctx, tx, col)
		if err != nil {
			if database.IsOrdinalConflict(err) {
				return ErrOrdinalConflict
			}
			return fmt.Errorf("failed to create column: %w", err)
		}

		created, err = database.GetColumnByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishColumnEvent(req.ProjectID)

	return created, nil
}

// UpdateColumn applies a partial update. Renames are validated against the
// other active columns of the project; the column key never changes.
func (s *service) UpdateColumn(ctx context.Context, id int, req UpdateColumnRequest) (*models.Column, error) {
	if id <= 0 {
		return nil, ErrInvalidColumnID
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrEmptyTitle
		}
		if len(*req.Title) > 50 {
			return nil, ErrTitleTooLong
		}
	}

	var updated *models.Column
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		col, err := database.GetColumnByID(ctx, tx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrColumnNotFound
		}
		if err != nil {
			return err
		}

		if req.Title != nil && *req.Title != col.Title {
			taken, err := database.ActiveTitleExists(ctx, tx, col.ProjectID, *req.Title, col.ID)
			if err != nil {
				return fmt.Errorf("failed to check title: %w", err)
			}
			if taken {
				return ErrDuplicateTitle
			}
			col.Title = *req.Title
		}
		if req.Description != nil {
			col.Description = *req.Description
		}
		if req.Color != nil {
			col.Color = *req.Color
		}
		if req.WIPLimit != nil {
			col.WIPLimit = req.WIPLimit
		}
		// Full replace, not partial, for these two flags
		col.IsDone = req.IsDone
		col.IsActive = req.IsActive

		if err := database.UpdateColumnRow(ctx, tx, col); err != nil {
			return fmt.Errorf("failed to update column: %w", err)
		}

		updated = col
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishColumnEvent(updated.ProjectID)

	return updated, nil
}

// SoftDeleteColumn deactivates a column and closes the ordinal gap it leaves.
// Reassigning the tasks that sit in it is the caller's responsibility and a
// precondition of this call; tasks left behind are logged, not moved.
func (s *service) SoftDeleteColumn(ctx context.Context, id int, moveToColumnID *int) error {
	col, projectID, err := s.deletableColumn(ctx, id)
	if err != nil {
		return err
	}

	if moveToColumnID != nil {
		target, err := database.GetColumnByID(ctx, s.db, *moveToColumnID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrColumnNotFound
		}
		if err != nil {
			return err
		}
		if target.ProjectID != projectID {
			return ErrColumnWrongProject
		}
	}

	remaining, err := database.CountTasksByColumn(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}
	if remaining > 0 {
		slog.Warn("deactivating column that still holds tasks; caller must reassign them",
			"column_id", id,
			"column_key", col.Key,
			"task_count", remaining)
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := database.DeactivateColumn(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to deactivate column: %w", err)
		}
		if err := database.CloseOrdinalGap(ctx, tx, projectID, col.Ordinal); err != nil {
			if database.IsOrdinalConflict(err) {
				return ErrOrdinalConflict
			}
			return fmt.Errorf("failed to close ordinal gap: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publishColumnEvent(projectID)

	return nil
}

// HardDeleteColumn removes a column permanently and closes the ordinal gap.
// Tasks still referencing it end up with no column and must be reassigned.
func (s *service) HardDeleteColumn(ctx context.Context, id int) error {
	col, projectID, err := s.deletableColumn(ctx, id)
	if err != nil {
		return err
	}

	remaining, err := database.CountTasksByColumn(ctx, s.db, id)
	if err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}
	if remaining > 0 {
		slog.Warn("hard-deleting column that still holds tasks; they lose their column",
			"column_id", id,
			"column_key", col.Key,
			"task_count", remaining)
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := database.DeleteColumnRow(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete column: %w", err)
		}
		if col.IsActive {
			if err := database.CloseOrdinalGap(ctx, tx, projectID, col.Ordinal); err != nil {
				if database.IsOrdinalConflict(err) {
					return ErrOrdinalConflict
				}
				return fmt.Errorf("failed to close ordinal gap: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publishColumnEvent(projectID)

	return nil
}

// ReorderColumns assigns ordinal = index+1 in list order. Active columns
// omitted from the list are appended afterwards in their previous relative
// order, so the resulting sequence is always exactly 1..N.
func (s *service) ReorderColumns(ctx context.Context, projectID int, orderedIDs []int) error {
	if projectID <= 0 {
		return ErrInvalidProjectID
	}

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		active, err := database.ListActiveColumns(ctx, tx, projectID)
		if err != nil {
			return err
		}

		byID := make(map[int]*models.Column, len(active))
		entries := make([]ordering.Entry, len(active))
		for i, c := range active {
			byID[c.ID] = c
			entries[i] = ordering.Entry{ID: c.ID, Rank: c.Ordinal}
		}

		seen := make(map[int]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			if byID[id] == nil {
				return ErrColumnNotFound
			}
			if seen[id] {
				return ErrInvalidColumnID
			}
			seen[id] = true
		}

		total := ordering.TotalOrder(entries, orderedIDs)
		if err := database.RenumberColumns(ctx, tx, projectID, total); err != nil {
			if database.IsOrdinalConflict(err) {
				return ErrOrdinalConflict
			}
			return fmt.Errorf("failed to renumber columns: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publishColumnEvent(projectID)

	return nil
}

// deletableColumn loads a column and applies the shared delete guards.
func (s *service) deletableColumn(ctx context.Context, id int) (*models.Column, int, error) {
	if id <= 0 {
		return nil, 0, ErrInvalidColumnID
	}
	col, err := database.GetColumnByID(ctx, s.db, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrColumnNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	if col.IsDefault {
		return nil, 0, ErrDeleteDefault
	}
	return col, col.ProjectID, nil
}

// validateCreateColumn validates a CreateColumnRequest
func (s *service) validateCreateColumn(req CreateColumnRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return ErrEmptyTitle
	}
	if len(req.Title) > 50 {
		return ErrTitleTooLong
	}
	if req.ProjectID <= 0 {
		return ErrInvalidProjectID
	}
	return nil
}

// publishColumnEvent notifies live subscribers of a column mutation.
func (s *service) publishColumnEvent(projectID int) {
	if s.eventClient == nil {
		return
	}
	if err := s.eventClient.Notify(events.Event{
		Type:      events.EventColumnChanged,
		ProjectID: projectID,
	}); err != nil {
		slog.Debug("failed to publish column event", "project_id", projectID, "error", err)
	}
}
