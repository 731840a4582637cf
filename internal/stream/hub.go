package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

const refreshChannel = "stravamap:refresh"

// Hub fans refresh notifications out to connected map clients so the browser
// can re-fetch /strava without polling.
type Hub struct {
	redis   *redis.Client
	clients map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Send chan []byte
}

// RefreshEvent is broadcast after every successful scheduled refresh run.
type RefreshEvent struct {
	Activities  int   `json:"activities"`
	RefreshedAt int64 `json:"refreshed_at"`
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register() *Client {
	client := &Client{Send: make(chan []byte, 8)}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.Send)
	}
}

// BroadcastRefresh notifies every connected client, dropping the message for
// clients whose send buffer is full. With redis configured the event is also
// published so other instances reach their own clients.
func (h *Hub) BroadcastRefresh(event RefreshEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.broadcast(payload)

	if h.redis != nil {
		if err := h.redis.Publish(context.Background(), refreshChannel, payload).Err(); err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

func (h *Hub) broadcast(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	pubsub := h.redis.Subscribe(context.Background(), refreshChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.broadcast([]byte(msg.Payload))
	}
}
