package models

import "time"

// EventKind discriminates entries in the task event log.
type EventKind string

const (
	EventTaskCreated   EventKind = "TASK_CREATED"
	EventMovedToColumn EventKind = "MOVED_TO_COLUMN"
	EventStatusChanged EventKind = "STATUS_CHANGED"
)

// Actor identifies who performed a mutation. Both fields are optional:
// resolution failures degrade to nil, they never abort the operation.
type Actor struct {
	ID   *string
	Name *string
}

// TaskEvent is one immutable row of the unified append-only audit log.
// History entries and movement records are both projections of it.
type TaskEvent struct {
	ID          int
	TaskID      int
	Kind        EventKind
	BeforeValue string
	AfterValue  string
	FromLabel   string
	ToLabel     string
	ActorID     *string
	ActorName   *string
	CreatedAt   time.Time
}

// HistoryEntry is the history-shaped projection of the audit log.
type HistoryEntry struct {
	TaskID    int
	Action    EventKind
	Before    string
	After     string
	Actor     string
	CreatedAt time.Time
}

// MovementRecord is the movement-shaped projection of the audit log.
type MovementRecord struct {
	TaskID    int
	FromLabel string
	ToLabel   string
	ActorID   *string
	ActorName *string
	CreatedAt time.Time
}
