// Package board assembles the read-only board view: active columns in
// ordinal order, each carrying its tasks in position order.
package board

import (
	"context"
	"database/sql"
	"errors"

	"github.com/quadrodev/quadro/internal/database"
	"github.com/quadrodev/quadro/internal/models"
)

var (
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrProjectNotFound  = errors.New("project not found")
)

// Service assembles board snapshots
type Service interface {
	GetBoard(ctx context.Context, projectID int) (*models.Board, error)
}

type service struct {
	db *sql.DB
}

// NewService creates a new board service
func NewService(db *sql.DB) Service {
	return &service{db: db}
}

// GetBoard returns the project's board. Inactive columns and their tasks are
// not part of the view. Columns with no tasks appear with an empty list.
func (s *service) GetBoard(ctx context.Context, projectID int) (*models.Board, error) {
	if projectID <= 0 {
		return nil, ErrInvalidProjectID
	}

	p, err := database.GetProjectByID(ctx, s.db, projectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	cols, err := database.ListActiveColumns(ctx, s.db, projectID)
	if err != nil {
		return nil, err
	}

	board := &models.Board{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		Status:      p.Status,
		Columns:     make([]*models.BoardColumn, 0, len(cols)),
	}
	for _, col := range cols {
		tasks, err := database.ListTasksByColumn(ctx, s.db, col.ID)
		if err != nil {
			return nil, err
		}
		board.Columns = append(board.Columns, &models.BoardColumn{
			Column: col,
			Tasks:  tasks,
		})
	}
	return board, nil
}
