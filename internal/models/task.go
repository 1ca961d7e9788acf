package models

import "time"

// Task is a single work item on the board. ColumnID is nil only transiently,
// before first assignment or after its column was hard-deleted; tasks are
// expected to be reassigned by the caller, never silently orphaned.
type Task struct {
	ID          int
	ProjectID   int
	ColumnID    *int
	Title       string
	Description string
	Position    int // 1-based rank within the current column
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
