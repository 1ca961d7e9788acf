package daemon

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quadrodev/quadro/internal/events"
)

func getTestSocketPath(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	return filepath.Join(tmpDir, "test-quadro.sock")
}

func setupTestDaemon(t *testing.T) (*Server, string) {
	t.Helper()
	socketPath := getTestSocketPath(t)

	server, err := NewServer(socketPath)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	t.Cleanup(func() {
		_ = server.Shutdown()
	})

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

func connectRawClient(t *testing.T, socketPath string) (net.Conn, *json.Encoder, *json.Decoder) {
	t.Helper()

	conn, err := (&net.Dialer{}).DialContext(context.Background(), "unix", socketPath)
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn, json.NewEncoder(conn), json.NewDecoder(conn)
}

func sendSubscribeMessage(t *testing.T, encoder *json.Encoder, projectID int) {
	t.Helper()
	msg := events.Message{
		Type:      "subscribe",
		Subscribe: &events.SubscribeMessage{ProjectID: projectID},
	}
	if err := encoder.Encode(msg); err != nil {
		t.Fatalf("Failed to send subscribe: %v", err)
	}
}

// readEventMessage reads messages until one carries an event, skipping pings
func readEventMessage(t *testing.T, conn net.Conn, decoder *json.Decoder, timeout time.Duration) *events.Event {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			t.Fatalf("Failed to read event message: %v", err)
		}
		if msg.Type == "event" && msg.Event != nil {
			return msg.Event
		}
	}
}

func TestNewServer_Success(t *testing.T) {
	socketPath := getTestSocketPath(t)

	server, err := NewServer(socketPath)
	if err != nil {
		t.Fatalf("Expected NewServer to succeed, got error: %v", err)
	}
	defer func() { _ = server.Shutdown() }()

	if _, err := os.Stat(socketPath); os.IsNotExist(err) {
		t.Error("Expected socket file to be created")
	}
}

func TestNewServer_DirectoryCreation(t *testing.T) {
	tmpDir := t.TempDir()
	nestedPath := filepath.Join(tmpDir, "nested", "subdirs", "quadro.sock")

	server, err := NewServer(nestedPath)
	if err != nil {
		t.Fatalf("Expected NewServer to create nested directories, got error: %v", err)
	}
	defer func() { _ = server.Shutdown() }()

	if _, err := os.Stat(nestedPath); os.IsNotExist(err) {
		t.Error("Expected socket file to be created in nested directory")
	}
}

func TestNewServer_StaleSocketCleanup(t *testing.T) {
	socketPath := getTestSocketPath(t)

	f, err := os.Create(socketPath)
	if err != nil {
		t.Fatalf("Failed to create stale socket file: %v", err)
	}
	_ = f.Close()

	server, err := NewServer(socketPath)
	if err != nil {
		t.Fatalf("Expected NewServer to succeed after removing stale socket, got error: %v", err)
	}
	defer func() { _ = server.Shutdown() }()

	if _, err := os.Stat(socketPath); os.IsNotExist(err) {
		t.Error("Expected new socket file to be created")
	}
}

func TestBroadcast_DeliveredToSubscriber(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	conn, encoder, decoder := connectRawClient(t, socketPath)
	sendSubscribeMessage(t, encoder, 0)
	time.Sleep(50 * time.Millisecond)

	if err := server.Broadcast(events.Event{
		Type:      events.EventTaskMoved,
		ProjectID: 1,
		TaskID:    7,
	}); err != nil {
		t.Fatalf("Broadcast() failed: %v", err)
	}

	event := readEventMessage(t, conn, decoder, 2*time.Second)
	if event.Type != events.EventTaskMoved {
		t.Errorf("Event type = %q, want task_moved", event.Type)
	}
	if event.TaskID != 7 {
		t.Errorf("Event task ID = %d, want 7", event.TaskID)
	}
	if event.SequenceID == 0 {
		t.Error("Expected a sequence ID to be assigned")
	}
}

func TestBroadcast_FiltersByProject(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	conn, encoder, decoder := connectRawClient(t, socketPath)
	sendSubscribeMessage(t, encoder, 2)
	time.Sleep(50 * time.Millisecond)

	// Event for project 1 must not reach a project-2 subscriber
	if err := server.Broadcast(events.Event{Type: events.EventTaskMoved, ProjectID: 1}); err != nil {
		t.Fatalf("Broadcast() failed: %v", err)
	}
	if err := server.Broadcast(events.Event{Type: events.EventColumnChanged, ProjectID: 2}); err != nil {
		t.Fatalf("Broadcast() failed: %v", err)
	}

	event := readEventMessage(t, conn, decoder, 2*time.Second)
	if event.Type != events.EventColumnChanged || event.ProjectID != 2 {
		t.Errorf("First delivered event = %+v, want the project-2 column_changed event", event)
	}
}

func TestBroadcast_EventFromClientRebroadcast(t *testing.T) {
	_, socketPath := setupTestDaemon(t)

	listenConn, listenEnc, listenDec := connectRawClient(t, socketPath)
	sendSubscribeMessage(t, listenEnc, 0)

	_, senderEnc, _ := connectRawClient(t, socketPath)
	sendSubscribeMessage(t, senderEnc, 0)
	time.Sleep(50 * time.Millisecond)

	msg := events.Message{
		Type: "event",
		Event: &events.Event{
			Type:      events.EventStatusChanged,
			ProjectID: 3,
		},
	}
	if err := senderEnc.Encode(msg); err != nil {
		t.Fatalf("Failed to send event: %v", err)
	}

	event := readEventMessage(t, listenConn, listenDec, 2*time.Second)
	if event.Type != events.EventStatusChanged || event.ProjectID != 3 {
		t.Errorf("Rebroadcast event = %+v, want status_changed for project 3", event)
	}
}

func TestShutdown_RemovesSocket(t *testing.T) {
	socketPath := getTestSocketPath(t)

	server, err := NewServer(socketPath)
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}

	if err := server.Shutdown(); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	if _, err := os.Stat(socketPath); !os.IsNotExist(err) {
		t.Error("Expected socket file to be removed on shutdown")
	}

	// Second shutdown is a no-op
	if err := server.Shutdown(); err != nil {
		t.Errorf("Repeated Shutdown() failed: %v", err)
	}
}
