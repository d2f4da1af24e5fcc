package realtime

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub, adminID string) *Client {
	return &Client{hub: h, send: make(chan []byte, 16), adminID: adminID}
}

func recv(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case raw, ok := <-c.send:
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Message{}
	}
}

func waitClosed(t *testing.T, c *Client) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-c.send:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("send channel was not closed")
		}
	}
}

func TestBroadcastReachesAllObservers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient(hub, "")
	b := newTestClient(hub, "")
	hub.register <- a
	hub.register <- b

	hub.Emit(EventPostDeleted, map[string]string{"postId": "abc"})

	for _, c := range []*Client{a, b} {
		msg := recv(t, c)
		require.Equal(t, EventPostDeleted, msg.Event)
	}
}

func TestEventsDeliveredInEmitOrder(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := newTestClient(hub, "")
	hub.register <- c

	for i := 0; i < 5; i++ {
		hub.Emit(EventReactionUpdate, map[string]int{"seq": i})
	}

	for i := 0; i < 5; i++ {
		msg := recv(t, c)
		data := msg.Data.(map[string]interface{})
		require.Equal(t, float64(i), data["seq"])
	}
}

func TestOperatorDisplacement(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := newTestClient(hub, "admin-1")
	second := newTestClient(hub, "admin-1")
	other := newTestClient(hub, "admin-2")

	hub.register <- first
	hub.register <- other
	hub.register <- second

	// The prior connection for admin-1 is forcibly closed
	waitClosed(t, first)

	// The new connection and the other operator still receive events
	hub.Emit(EventNewPost, map[string]string{"message": "New post submitted for review"})
	require.Equal(t, EventNewPost, recv(t, second).Event)
	require.Equal(t, EventNewPost, recv(t, other).Event)
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := newTestClient(hub, "")
	hub.register <- c
	hub.unregister <- c

	waitClosed(t, c)
}

func TestSlowConsumerDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := newTestClient(hub, "")
	hub.register <- slow

	// Overflow the client's buffer without draining it
	for i := 0; i < cap(slow.send)+1; i++ {
		hub.Emit(EventReactionUpdate, map[string]int{"seq": i})
	}

	waitClosed(t, slow)
}

func TestEmitUnmarshalablePayloadIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := newTestClient(hub, "")
	hub.register <- c

	hub.Emit(EventPostApproved, func() {}) // not JSON-marshalable

	hub.Emit(EventPostDeleted, map[string]string{"postId": fmt.Sprint(1)})
	require.Equal(t, EventPostDeleted, recv(t, c).Event)
}
