package stream

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestHubBroadcastRefresh(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register()
	defer hub.Unregister(client)

	hub.BroadcastRefresh(RefreshEvent{Activities: 3, RefreshedAt: 1700000000})

	select {
	case msg := <-client.Send:
		var event RefreshEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if event.Activities != 3 || event.RefreshedAt != 1700000000 {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("timeout waiting for event")
	}
}

func TestUnregisterCloses(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register()
	hub.Unregister(client)
	if _, ok := <-client.Send; ok {
		t.Fatalf("expected channel closed")
	}
	// double unregister must not panic on the closed channel
	hub.Unregister(client)
}

func TestHubDropsWhenClientSlow(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register()
	defer hub.Unregister(client)

	for i := 0; i < 20; i++ {
		hub.BroadcastRefresh(RefreshEvent{Activities: i})
	}
	// buffer is 8; broadcast must never block
}

func TestHubRedisSubscribe(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	hub := NewHub(client)
	ws := hub.Register()
	defer hub.Unregister(ws)

	time.Sleep(20 * time.Millisecond)
	if err := client.Publish(context.Background(), refreshChannel, `{"activities":1,"refreshed_at":2}`).Err(); err != nil {
		t.Fatalf("publish error: %v", err)
	}

	select {
	case msg := <-ws.Send:
		if string(msg) != `{"activities":1,"refreshed_at":2}` {
			t.Fatalf("unexpected message from redis: %s", msg)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("timeout waiting for redis message")
	}
}

func TestHubRedisPublishError(t *testing.T) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	s.Close()
	defer client.Close()

	hub := NewHub(client)
	ws := hub.Register()
	defer hub.Unregister(ws)

	hub.BroadcastRefresh(RefreshEvent{Activities: 1})
}
