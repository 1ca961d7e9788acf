package models

import "time"

// Column represents a kanban board stage (e.g. "A Fazer", "Concluído").
// Active columns of a project are ordered by Ordinal, which is 1-based,
// gapless and unique per project.
type Column struct {
	ID          int
	ProjectID   int
	Key         string // machine slug, unique among active columns of the project
	Title       string // human label, unique among active columns of the project
	Description string
	Color       string
	Ordinal     int
	WIPLimit    *int // advisory cap, nil = unlimited
	IsDefault   bool // entry stage for new tasks; exactly one per project
	IsDone      bool // membership counts as "work complete"
	IsActive    bool // soft-delete flag
	CreatedAt   time.Time
}

// ColumnSeed describes one of the canonical columns created for a new project.
type ColumnSeed struct {
	Key       string
	Title     string
	Color     string
	IsDefault bool
	IsDone    bool
}
