package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"angus-connect-be/internal/model"
	"angus-connect-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// clusterChannel carries notification frames between portal instances.
const clusterChannel = "portal_cluster_events"

// Hub keeps the live member connections and fans notifications out to them.
// Redis pub/sub bridges instances so a member connected elsewhere still gets
// the frame.
type Hub struct {
	// UserID -> connections; one member can hold several devices open.
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

func frame(notification model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}

func (h *Hub) sendLocal(clients []*Client, data []byte) {
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer, drop the connection. Unregister runs on its
			// own goroutine since callers hold the read lock; Run closes
			// the channel.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// Broadcast pushes a notification to every connected member.
func (h *Hub) Broadcast(notification model.Notification) {
	data := frame(notification)

	h.mu.RLock()
	for _, clients := range h.clients {
		h.sendLocal(clients, data)
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		h.publishToRedis("*", data)
	}
}

// Send pushes a notification to one member's open connections, here and on
// other instances.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data := frame(notification)

	// The read lock must span the channel writes: Run closes Send channels
	// under the write lock, so holding RLock here excludes a send on a
	// freshly closed channel.
	h.mu.RLock()
	if clients, ok := h.clients[userID]; ok {
		h.sendLocal(clients, data)
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		h.publishToRedis(userID.String(), data)
	}
}

func (h *Hub) publishToRedis(target string, data []byte) {
	payload, _ := json.Marshal(map[string]interface{}{
		"target_user_id": target,
		"message":        json.RawMessage(data),
	})
	h.rdb.Publish(context.Background(), clusterChannel, payload)
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetUserID == "*" {
			h.mu.RLock()
			for _, clients := range h.clients {
				h.sendLocal(clients, payload.Message)
			}
			h.mu.RUnlock()
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		// Same locking rule as Send: the write must happen under RLock.
		h.mu.RLock()
		if clients, ok := h.clients[uid]; ok {
			h.sendLocal(clients, payload.Message)
		}
		h.mu.RUnlock()
	}
}
