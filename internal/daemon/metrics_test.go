package daemon

import (
	"sync"
	"testing"
)

func TestMetricsCounters(t *testing.T) {
	t.Parallel()
	m := NewMetrics()

	m.IncEventsSent()
	m.IncEventsSent()
	m.IncEventsReceived()
	m.IncEventsDropped()
	m.IncBroadcastsTotal()
	m.SetConnectedClients(3)

	if got := m.GetEventsSent(); got != 2 {
		t.Errorf("EventsSent = %d, want 2", got)
	}
	if got := m.GetEventsReceived(); got != 1 {
		t.Errorf("EventsReceived = %d, want 1", got)
	}
	if got := m.GetEventsDropped(); got != 1 {
		t.Errorf("EventsDropped = %d, want 1", got)
	}
	if got := m.GetBroadcastsTotal(); got != 1 {
		t.Errorf("BroadcastsTotal = %d, want 1", got)
	}
	if got := m.GetConnectedClients(); got != 3 {
		t.Errorf("ConnectedClients = %d, want 3", got)
	}
}

func TestMetricsConcurrentIncrements(t *testing.T) {
	t.Parallel()
	m := NewMetrics()

	const workers = 10
	const perWorker = 100

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.IncEventsSent()
			}
		}()
	}
	wg.Wait()

	if got := m.GetEventsSent(); got != workers*perWorker {
		t.Errorf("EventsSent = %d, want %d", got, workers*perWorker)
	}
}

func TestMetricsSnapshot(t *testing.T) {
	t.Parallel()
	m := NewMetrics()
	m.IncEventsSent()
	m.SetConnectedClients(1)

	snap := m.GetSnapshot()
	if snap.EventsSent != 1 {
		t.Errorf("Snapshot EventsSent = %d, want 1", snap.EventsSent)
	}
	if snap.ConnectedClients != 1 {
		t.Errorf("Snapshot ConnectedClients = %d, want 1", snap.ConnectedClients)
	}
	if snap.Uptime == "" {
		t.Error("Snapshot Uptime should not be empty")
	}
}
