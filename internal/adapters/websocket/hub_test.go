package websocket

import (
	"sync"
	"testing"
	"time"
)

func TestHub_BroadcastDropsSlowConsumer(t *testing.T) {
	hub := NewHub()

	slow := &Client{ID: "slow", Send: make(chan Event)}
	fast := &Client{ID: "fast", Send: make(chan Event, 8)}
	hub.clients[slow] = true
	hub.clients[fast] = true

	hub.broadcastEvent(Event{Type: "conversation.added", Timestamp: time.Now()})

	if hub.ConnectionCount() != 1 {
		t.Errorf("Expected the slow consumer to be dropped, got %d clients", hub.ConnectionCount())
	}
	if _, ok := hub.clients[fast]; !ok {
		t.Error("The fast consumer must survive the broadcast")
	}
	select {
	case _, open := <-slow.Send:
		if open {
			t.Error("Dropped client's channel should be closed, got an event")
		}
	default:
		t.Error("Dropped client's channel should be closed")
	}
	if got := <-fast.Send; got.Type != "conversation.added" {
		t.Errorf("Fast consumer received %q", got.Type)
	}
}

// Broadcasting while the health endpoint polls the connection count must be
// safe even when broadcasts are dropping slow consumers.
func TestHub_ConcurrentBroadcastAndConnectionCount(t *testing.T) {
	hub := NewHub()
	for i := 0; i < 32; i++ {
		hub.clients[&Client{ID: "c", Send: make(chan Event)}] = true
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			hub.broadcastEvent(Event{Type: "store.loaded", Timestamp: time.Now()})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			hub.ConnectionCount()
		}
	}()
	wg.Wait()

	if hub.ConnectionCount() != 0 {
		t.Errorf("All unbuffered clients should have been dropped, got %d", hub.ConnectionCount())
	}
}
