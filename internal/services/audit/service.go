// Package audit owns the append-only task event log. The task position
// engine consumes the Recorder; read surfaces consume the projections.
package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/quadrodev/quadro/internal/database"
	"github.com/quadrodev/quadro/internal/models"
)

// Recorder appends immutable audit entries. RecordTx takes a DBTX so the
// caller can append inside its own transaction.
type Recorder interface {
	RecordTx(ctx context.Context, q database.DBTX, ev *models.TaskEvent) error
}

// Service exposes the audit log: the recorder plus the two read projections
// (history entries and movement records) over the single task_events table.
type Service interface {
	Recorder

	History(ctx context.Context, taskID int) ([]*models.HistoryEntry, error)
	Movements(ctx context.Context, taskID int) ([]*models.MovementRecord, error)
}

type service struct {
	db *sql.DB
}

// NewService creates a new audit service.
func NewService(db *sql.DB) Service {
	return &service{db: db}
}

// RecordTx appends one audit entry using the caller's transaction.
func (s *service) RecordTx(ctx context.Context, q database.DBTX, ev *models.TaskEvent) error {
	if ev.TaskID <= 0 {
		return ErrInvalidTaskID
	}
	if ev.Kind == "" {
		return ErrMissingKind
	}
	if err := database.InsertTaskEvent(ctx, q, ev); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// History returns the history-shaped projection for a task, oldest first.
func (s *service) History(ctx context.Context, taskID int) ([]*models.HistoryEntry, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	return database.ListHistoryByTask(ctx, s.db, taskID)
}

// Movements returns the movement-shaped projection for a task, oldest first.
func (s *service) Movements(ctx context.Context, taskID int) ([]*models.MovementRecord, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	return database.ListMovementsByTask(ctx, s.db, taskID)
}
