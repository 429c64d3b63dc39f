package websocket

import (
	"sync"
	"testing"
	"time"

	"angus-connect-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type silentLogger struct{}

func (silentLogger) Debug(module, message string, details map[string]interface{}) {}
func (silentLogger) Info(module, message string, details map[string]interface{})  {}
func (silentLogger) Warn(module, message string, details map[string]interface{})  {}
func (silentLogger) Error(module, message string, details map[string]interface{}) {}
func (silentLogger) Sync() error                                                  { return nil }

func newTestHub() *Hub {
	hub := NewHub(nil, silentLogger{})
	go hub.Run()
	return hub
}

func drain(c *Client) {
	for range c.Send {
	}
}

// waitForClients blocks until the hub's Run goroutine has inserted want
// distinct members into the clients map. register returns when Run receives
// the client, before the map insertion, so tests must barrier here before
// sending or broadcasting.
func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		hub.mu.RLock()
		n := len(hub.clients)
		hub.mu.RUnlock()
		if n >= want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("only saw fewer than %d registered clients after 1s", want)
}

func TestHubSendDeliversToRegisteredClient(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()
	client := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 4)}
	hub.register <- client
	waitForClients(t, hub, 1)

	hub.Send(userID, model.Notification{Title: "hola"})

	select {
	case data := <-client.Send:
		assert.Contains(t, string(data), "hola")
	case <-time.After(time.Second):
		t.Fatal("no frame delivered to the registered client")
	}

	// Another member's connections stay untouched.
	other := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	hub.register <- other
	waitForClients(t, hub, 2)
	hub.Send(userID, model.Notification{Title: "solo para uno"})
	assert.Empty(t, other.Send)
}

func TestHubBroadcastReachesEveryMember(t *testing.T) {
	hub := newTestHub()
	a := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	b := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 4)}
	hub.register <- a
	hub.register <- b
	waitForClients(t, hub, 2)

	hub.Broadcast(model.Notification{Title: "para todos"})

	for _, c := range []*Client{a, b} {
		select {
		case data := <-c.Send:
			assert.Contains(t, string(data), "para todos")
		case <-time.After(time.Second):
			t.Fatal("broadcast frame missing")
		}
	}
}

// Send must hold the read lock across the channel writes; Run closes Send
// channels under the write lock on unregister. Hammering both concurrently
// panics with "send on closed channel" if Send snapshots the clients slice
// and writes after releasing the lock.
func TestHubSendConcurrentWithUnregisterDoesNotPanic(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()

	for i := 0; i < 200; i++ {
		client := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
		hub.register <- client
		go drain(client)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				hub.Send(userID, model.Notification{Title: "carrera"})
			}
		}()
		go func() {
			defer wg.Done()
			hub.unregister <- client
		}()
		wg.Wait()
	}
}

func TestHubSlowConsumerIsDropped(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()
	// Unbuffered channel with no reader: the first send already overflows.
	client := &Client{Hub: hub, UserID: userID, Send: make(chan []byte)}
	hub.register <- client

	hub.Send(userID, model.Notification{Title: "uno"})

	// The hub unregisters the client asynchronously and closes its channel.
	select {
	case _, ok := <-client.Send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("slow consumer was never dropped")
	}

	hub.mu.RLock()
	_, stillThere := hub.clients[userID]
	hub.mu.RUnlock()
	assert.False(t, stillThere)
}
