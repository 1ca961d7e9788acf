package events

import "time"

// EventType indicates what kind of board change occurred
type EventType string

const (
	EventTaskMoved     EventType = "task_moved"
	EventColumnChanged EventType = "column_changed"
	EventStatusChanged EventType = "status_changed"
	EventPing          EventType = "ping"
	EventPong          EventType = "pong"
)

// Event is a board change notification published to live subscribers.
// Delivery is one-way and best-effort; the state change it describes has
// already been committed.
type Event struct {
	Type       EventType
	ProjectID  int   // which project was modified (for subscription filtering)
	TaskID     int   // set for task_moved events
	Timestamp  time.Time
	SequenceID int64 // monotonically increasing, assigned by the daemon
}

// SubscribeMessage is sent by clients to scope their subscription.
type SubscribeMessage struct {
	ProjectID int // 0 = all projects, >0 = specific project
}

// Message wraps events and control messages for the socket protocol.
type Message struct {
	Type      string            // "event", "subscribe", "ping", "pong"
	Event     *Event            `json:",omitempty"`
	Subscribe *SubscribeMessage `json:",omitempty"`
}
