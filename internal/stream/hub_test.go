package stream

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func (h *Hub) clientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func expectMessage(t *testing.T, client *Client, want string) {
	t.Helper()
	select {
	case msg := <-client.Send:
		if string(msg) != want {
			t.Fatalf("unexpected message: %s", msg)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for %q", want)
	}
}

func TestHubBroadcastLocal(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("user-1")
	defer hub.Unregister(client)
	other := hub.Register("user-2")
	defer hub.Unregister(other)

	hub.Broadcast("user-1", []byte("hello"))
	expectMessage(t, client, "hello")

	select {
	case <-other.Send:
		t.Fatalf("message leaked to another user")
	default:
	}
}

func TestHubChannelHelpers(t *testing.T) {
	ch := channelFor("abc")
	if ch != "notifications:abc:stream" {
		t.Fatalf("unexpected channel: %s", ch)
	}
	if userIDFromChannel(ch) != "abc" {
		t.Fatalf("unexpected user id")
	}
	if userIDFromChannel("bad") != "" || userIDFromChannel("tracking:abc:broadcast") != "" {
		t.Fatalf("expected empty user id")
	}
}

func TestUnregisterClosesOnce(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("user-3")
	hub.Unregister(client)
	hub.Unregister(client)

	if _, ok := <-client.Send; ok {
		t.Fatalf("expected channel closed")
	}
	if hub.clientCount("user-3") != 0 {
		t.Fatalf("expected no clients")
	}
}

func TestHubFullBufferDropsMessage(t *testing.T) {
	hub := NewHub(nil)
	client := hub.Register("user-4")
	defer hub.Unregister(client)

	for i := 0; i < cap(client.Send)+5; i++ {
		hub.Broadcast("user-4", []byte("x"))
	}
	if len(client.Send) != cap(client.Send) {
		t.Fatalf("expected full buffer")
	}
}

func TestHubRedisFanOut(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer rdb.Close()

	first := NewHub(rdb)
	defer first.Close()
	second := NewHub(rdb)
	defer second.Close()

	local := first.Register("user-5")
	defer first.Unregister(local)
	remote := second.Register("user-5")
	defer second.Unregister(remote)

	first.Broadcast("user-5", []byte("ping"))
	expectMessage(t, local, "ping")
	expectMessage(t, remote, "ping")
}

func TestHubRedisUnavailable(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer rdb.Close()
	srv.Close()

	hub := NewHub(rdb)
	defer hub.Close()
	client := hub.Register("user-6")
	defer hub.Unregister(client)

	hub.Broadcast("user-6", []byte("local"))
	expectMessage(t, client, "local")
}
