// Package task implements task CRUD and the positioning engine. A move is a
// single transaction that closes the gap in the source column, opens a slot
// in the target column, reassigns the task, appends the audit entry and
// recomputes the project status.
package task

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
	"github.com/quadrodev/quadro/internal/services/audit"
	"github.com/quadrodev/quadro/internal/services/project"
)

// Service defines all task-related business operations
type Service interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	ListTasksByColumn(ctx context.Context, columnID int) ([]*models.Task, error)
	ListTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error)
	UpdateTask(ctx context.Context, id int, title, description string) (*models.Task, error)
	DeleteTask(ctx context.Context, id int) error

	// MoveTask relocates a task to a column and position. Moving a task to
	// the column it is already in is a no-op.
	MoveTask(ctx context.Context, req MoveRequest) (*models.Task, error)
}

// CreateTaskRequest carries the fields for a new task. ColumnID nil means the
// project's default column.
type CreateTaskRequest struct {
	ProjectID   int
	ColumnID    *int
	Title       string
	Description string
	Actor       models.Actor
}

// MoveRequest identifies the task, the destination and who asked for the
// move. The target column is given either by ID or by key; ID wins when both
// are set. Position nil appends to the end of the target column.
type MoveRequest struct {
	TaskID          int
	TargetColumnID  *int
	TargetColumnKey string
	Position        *int
	Actor           models.Actor
}

type service struct {
	db          *sql.DB
	recorder    audit.Recorder
	eventClient events.Publisher
}

// NewService creates a new task service
func NewService(db *sql.DB, recorder audit.Recorder, eventClient events.Publisher) Service {
	return &service{
		db:          db,
		recorder:    recorder,
		eventClient: eventClient,
	}
}

// CreateTask inserts a task at the end of its column. When no column is
// given the task lands in the project's default column.
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if len(req.Title) > 255 {
		return nil, ErrTitleTooLong
	}
	if req.ProjectID <= 0 {
		return nil, ErrInvalidProjectID
	}

	exists, err := database.ProjectExists(ctx, s.db, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProjectNotFound
	}

	var (
		created       *models.Task
		statusChanged bool
	)
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		col, err := resolveColumn(ctx, tx, req.ProjectID, req.ColumnID, "")
		if err != nil {
			return err
		}

		pos, err := database.NextPosition(ctx, tx, col.ID)
		if err != nil {
			return err
		}

		created, err = database.InsertTask(ctx, tx, req.ProjectID, col.ID, req.Title, req.Description, pos)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		s.record(ctx, tx, &models.TaskEvent{
			TaskID:     created.ID,
			Kind:       models.EventTaskCreated,
			AfterValue: col.Title,
			ToLabel:    col.Key,
			ActorID:    req.Actor.ID,
			ActorName:  req.Actor.Name,
		})

		statusChanged, err = project.RefreshStatusTx(ctx, tx, req.ProjectID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(events.EventTaskMoved, created.ProjectID, created.ID)
	if statusChanged {
		s.publish(events.EventStatusChanged, created.ProjectID, created.ID)
	}
	return created, nil
}

// GetTaskByID retrieves a single task
func (s *service) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	t, err := database.GetTaskByID(ctx, s.db, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	return t, err
}

// ListTasksByColumn returns a column's tasks in position order
func (s *service) ListTasksByColumn(ctx context.Context, columnID int) ([]*models.Task, error) {
	if columnID <= 0 {
		return nil, ErrColumnNotFound
	}
	return database.ListTasksByColumn(ctx, s.db, columnID)
}

// ListTasksByProject returns every task of a project
func (s *service) ListTasksByProject(ctx context.Context, projectID int) ([]*models.Task, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}
	return database.ListTasksByProject(ctx, s.db, projectID)
}

// UpdateTask rewrites a task's title and description
func (s *service) UpdateTask(ctx context.Context, id int, title, description string) (*models.Task, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > 255 {
		return nil, ErrTitleTooLong
	}

	t, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := database.UpdateTask(ctx, s.db, id, title, description); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	t.Title = title
	t.Description = description
	return t, nil
}

// DeleteTask removes a task and closes the position gap it leaves behind
func (s *service) DeleteTask(ctx context.Context, id int) error {
	t, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return err
	}

	var statusChanged bool
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := database.DeleteTask(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		if t.ColumnID != nil {
			if err := database.ClosePositionGap(ctx, tx, *t.ColumnID, t.Position); err != nil {
				return err
			}
		}
		statusChanged, err = project.RefreshStatusTx(ctx, tx, t.ProjectID)
		return err
	})
	if err != nil {
		return err
	}

	s.publish(events.EventTaskMoved, t.ProjectID, t.ID)
	if statusChanged {
		s.publish(events.EventStatusChanged, t.ProjectID, t.ID)
	}
	return nil
}

// MoveTask relocates a task. The whole relocation is one transaction so a
// failure at any step leaves both columns gapless and the task where it was.
func (s *service) MoveTask(ctx context.Context, req MoveRequest) (*models.Task, error) {
	if req.TaskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if req.TargetColumnID == nil && req.TargetColumnKey == "" {
		return nil, ErrNoTargetColumn
	}
	if req.Position != nil && *req.Position <= 0 {
		return nil, ErrInvalidPosition
	}

	t, err := s.GetTaskByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	var (
		moved         *models.Task
		statusChanged bool
	)
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		target, err := resolveColumn(ctx, tx, t.ProjectID, req.TargetColumnID, req.TargetColumnKey)
		if err != nil {
			return err
		}

		if t.ColumnID != nil && *t.ColumnID == target.ID {
			// Already there, nothing to shift and nothing to record
			moved = t
			return nil
		}

		var source *models.Column
		if t.ColumnID != nil {
			source, err = database.GetColumnByID(ctx, tx, *t.ColumnID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return err
			}
		}

		count, err := database.CountTasksByColumn(ctx, tx, target.ID)
		if err != nil {
			return err
		}
		pos := count + 1
		if req.Position != nil {
			pos = ordering.Clamp(*req.Position, count)
		}

		if t.ColumnID != nil {
			if err := database.ClosePositionGap(ctx, tx, *t.ColumnID, t.Position); err != nil {
				return err
			}
		}
		if err := database.OpenPositionSlot(ctx, tx, target.ID, pos); err != nil {
			return err
		}
		if err := database.ReassignTask(ctx, tx, t.ID, target.ID, pos); err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}

		ev := &models.TaskEvent{
			TaskID:     t.ID,
			Kind:       models.EventMovedToColumn,
			AfterValue: target.Title,
			ToLabel:    target.Key,
			ActorID:    req.Actor.ID,
			ActorName:  req.Actor.Name,
		}
		if source != nil {
			ev.BeforeValue = source.Title
			ev.FromLabel = source.Key
		}
		s.record(ctx, tx, ev)

		if statusChanged, err = project.RefreshStatusTx(ctx, tx, t.ProjectID); err != nil {
			return err
		}

		warnWIP(target, count+1)

		cid := target.ID
		moved = t
		moved.ColumnID = &cid
		moved.Position = pos
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(events.EventTaskMoved, moved.ProjectID, moved.ID)
	if statusChanged {
		s.publish(events.EventStatusChanged, moved.ProjectID, moved.ID)
	}
	return moved, nil
}

// resolveColumn finds the destination column. A nil ID with an empty key
// means the project's default column.
func resolveColumn(ctx context.Context, q database.DBTX, projectID int, id *int, key string) (*models.Column, error) {
	var (
		col *models.Column
		err error
	)
	switch {
	case id != nil:
		col, err = database.GetColumnByID(ctx, q, *id)
	case key != "":
		col, err = database.GetColumnByKey(ctx, q, projectID, key)
	default:
		col, err = database.GetDefaultColumn(ctx, q, projectID)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrColumnNotFound
	}
	if err != nil {
		return nil, err
	}
	if col.ProjectID != projectID {
		return nil, ErrColumnWrongProject
	}
	if !col.IsActive {
		return nil, ErrColumnInactive
	}
	return col, nil
}

// record appends an audit entry. Audit failures are logged, they never roll
// back the mutation they describe.
func (s *service) record(ctx context.Context, q database.DBTX, ev *models.TaskEvent) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordTx(ctx, q, ev); err != nil {
		slog.Error("failed to record task event", "task_id", ev.TaskID, "kind", ev.Kind, "error", err)
	}
}

func warnWIP(col *models.Column, count int) {
	if col.WIPLimit != nil && count > *col.WIPLimit {
		slog.Warn("column over WIP limit",
			"column_id", col.ID,
			"column", col.Title,
			"limit", *col.WIPLimit,
			"count", count)
	}
}

func (s *service) publish(eventType events.EventType, projectID, taskID int) {
	if s.eventClient == nil {
		return
	}
	if err := s.eventClient.Notify(events.Event{
		Type:      eventType,
		ProjectID: projectID,
		TaskID:    taskID,
	}); err != nil {
		slog.Debug("failed to publish task event", "task_id", taskID, "error", err)
	}
}
