package task

import "errors"

var (
	ErrEmptyTitle         = errors.New("task title cannot be empty")
	ErrTitleTooLong       = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID      = errors.New("invalid task ID")
	ErrInvalidProjectID   = errors.New("invalid project ID")
	ErrInvalidPosition    = errors.New("position must be positive")
	ErrTaskNotFound       = errors.New("task not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrColumnNotFound     = errors.New("column not found")
	ErrColumnInactive     = errors.New("column is not active")
	ErrColumnWrongProject = errors.New("column belongs to a different project")
	ErrNoTargetColumn     = errors.New("a target column ID or key is required")
)
