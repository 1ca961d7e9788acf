package events

import "context"

// Publisher is the one-way notification sink the board engine depends on.
// Implementations must tolerate a missing daemon: publishing degrades
// gracefully, it never fails the mutation that triggered it.
type Publisher interface {
	// Connect establishes a connection to the daemon socket
	Connect(ctx context.Context) error

	// Notify queues an event for delivery to the daemon
	Notify(event Event) error

	// Listen starts receiving events from the daemon
	Listen(ctx context.Context) (<-chan Event, error)

	// Subscribe scopes the subscription to a specific project (0 = all)
	Subscribe(projectID int) error

	// Close closes the connection and stops all goroutines
	Close() error
}

// Compile-time verification that *Client implements Publisher
var _ Publisher = (*Client)(nil)
