package models

import "time"

// ProjectStatus is the aggregate status derived from a project's tasks.
// Board operations never set it directly; only the status deriver does.
type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "NOT_STARTED"
	StatusInProgress ProjectStatus = "IN_PROGRESS"
	StatusCompleted  ProjectStatus = "COMPLETED"
)

// ParseProjectStatus converts a raw string into a ProjectStatus.
// Unknown values return ErrInvalidStatus.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch ProjectStatus(s) {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return ProjectStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// Project is the top-level organizational unit. It owns its columns and tasks.
type Project struct {
	ID          int
	Name        string
	Description string
	Status      ProjectStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
