package events_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quadrodev/quadro/internal/daemon"
	"github.com/quadrodev/quadro/internal/events"
)

func setupDaemon(t *testing.T) (*daemon.Server, string) {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "quadro.sock")

	server, err := daemon.NewServer(socketPath)
	if err != nil {
		t.Fatalf("Failed to create daemon: %v", err)
	}
	t.Cleanup(func() { _ = server.Shutdown() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = server.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(socketPath); err == nil {
			time.Sleep(10 * time.Millisecond)
			return server, socketPath
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Fatal("Timeout waiting for daemon socket")
	return nil, ""
}

func connectedClient(t *testing.T, socketPath string) *events.Client {
	t.Helper()

	client, err := events.NewClient(socketPath)
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("Connect() failed: %v", err)
	}
	return client
}

func waitForEvent(t *testing.T, eventChan <-chan events.Event, timeout time.Duration) events.Event {
	t.Helper()
	select {
	case event, ok := <-eventChan:
		if !ok {
			t.Fatal("Event channel closed unexpectedly")
		}
		return event
	case <-time.After(timeout):
		t.Fatal("Timeout waiting for event")
	}
	return events.Event{}
}

func TestListenReceivesBroadcast(t *testing.T) {
	server, socketPath := setupDaemon(t)

	client := connectedClient(t, socketPath)
	defer func() { _ = client.Close() }()

	// Let the daemon register the connection before broadcasting
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventChan, err := client.Listen(ctx)
	if err != nil {
		t.Fatalf("Listen() failed: %v", err)
	}

	if err := server.Broadcast(events.Event{
		Type:      events.EventTaskMoved,
		ProjectID: 1,
		TaskID:    7,
	}); err != nil {
		t.Fatalf("Broadcast() failed: %v", err)
	}

	event := waitForEvent(t, eventChan, 2*time.Second)
	if event.Type != events.EventTaskMoved {
		t.Errorf("Event type = %q, want %q", event.Type, events.EventTaskMoved)
	}
	if event.ProjectID != 1 || event.TaskID != 7 {
		t.Errorf("Event project/task = %d/%d, want 1/7", event.ProjectID, event.TaskID)
	}
	if event.SequenceID == 0 {
		t.Error("Expected the daemon to assign a sequence ID")
	}
}

func TestSubscribeScopesToProject(t *testing.T) {
	server, socketPath := setupDaemon(t)

	client := connectedClient(t, socketPath)
	defer func() { _ = client.Close() }()

	if err := client.Subscribe(2); err != nil {
		t.Fatalf("Subscribe() failed: %v", err)
	}
	// Let the daemon apply the subscription before broadcasting
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventChan, err := client.Listen(ctx)
	if err != nil {
		t.Fatalf("Listen() failed: %v", err)
	}

	if err := server.Broadcast(events.Event{Type: events.EventTaskMoved, ProjectID: 1, TaskID: 3}); err != nil {
		t.Fatalf("Broadcast() failed: %v", err)
	}
	if err := server.Broadcast(events.Event{Type: events.EventStatusChanged, ProjectID: 2}); err != nil {
		t.Fatalf("Broadcast() failed: %v", err)
	}

	event := waitForEvent(t, eventChan, 2*time.Second)
	if event.ProjectID != 2 {
		t.Errorf("Received event for project %d, want only project 2", event.ProjectID)
	}
	if event.Type != events.EventStatusChanged {
		t.Errorf("Event type = %q, want %q", event.Type, events.EventStatusChanged)
	}
}

func TestNotifyAfterClose(t *testing.T) {
	_, socketPath := setupDaemon(t)

	client := connectedClient(t, socketPath)

	if err := client.Notify(events.Event{Type: events.EventTaskMoved, ProjectID: 1, TaskID: 1}); err != nil {
		t.Fatalf("Notify() before close failed: %v", err)
	}

	if err := client.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if err := client.Notify(events.Event{Type: events.EventTaskMoved, ProjectID: 1, TaskID: 2}); err == nil {
		t.Error("Expected Notify() after Close() to fail")
	}

	if err := client.Close(); err != nil {
		t.Errorf("Repeated Close() should be a no-op, got %v", err)
	}
}
