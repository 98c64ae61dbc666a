package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/skyops/aeroops-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("unexpected message: %s", msg)
	default:
	}
}

func TestBroadcastEventRoutesByTopic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	global := NewClient(hub, nil, "")
	maint := NewClient(hub, nil, "maintenance")
	incident := NewClient(hub, nil, "incident")
	hub.Register <- global
	hub.Register <- maint
	hub.Register <- incident

	hub.BroadcastEvent(models.Event{
		ID:      "e1",
		Type:    "maintenance.create",
		Level:   "info",
		Message: "Maintenance 'A-Check' logged for AP-BHA.",
	})

	// The global feed and the matching topic both see the event.
	for _, c := range []*Client{global, maint} {
		var msg Message
		require.NoError(t, json.Unmarshal(receive(t, c), &msg))
		assert.Equal(t, "event", msg.Action)
		payload, ok := msg.Payload.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "maintenance.create", payload["type"])
	}

	// A client on another topic sees nothing.
	assertSilent(t, incident)
}

func TestBroadcastToReachesSubscribers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	sub := NewClient(hub, nil, "system")
	other := NewClient(hub, nil, "flight")
	hub.Register <- sub
	hub.Register <- other

	hub.BroadcastTo("system", []byte(`{"action":"event"}`))

	assert.Equal(t, `{"action":"event"}`, string(receive(t, sub)))
	assertSilent(t, other)
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := NewClient(hub, nil, "auth")
	hub.Register <- c
	hub.Unregister <- c

	hub.BroadcastEvent(models.Event{ID: "e1", Type: "auth.login", Level: "info"})

	// The hub closed the channel on unregister; no message precedes the close.
	msg, ok := <-c.Send
	assert.False(t, ok)
	assert.Nil(t, msg)
}

// A burst larger than one in-flight message must not be dropped: the queue is
// buffered and the loop drains it.
func TestBroadcastQueueAbsorbsBursts(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := NewClient(hub, nil, "")
	hub.Register <- c

	const burst = 50
	for i := 0; i < burst; i++ {
		hub.BroadcastEvent(models.Event{ID: "e", Type: "system.summary", Level: "info"})
	}
	for i := 0; i < burst; i++ {
		receive(t, c)
	}
}

func TestNewErrorMessage(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal(NewErrorMessage("unknown topic"), &msg))
	assert.Equal(t, "error", msg.Action)
	assert.Equal(t, "unknown topic", msg.Payload)
}
