package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	ws "github.com/skyops/aeroops-be/internal/websocket"
)

// WebSocketHandler upgrades HTTP connections for the live activity feed.
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// feedTopics are the event-type prefixes a client can subscribe to.
var feedTopics = map[string]bool{
	"auth":        true,
	"maintenance": true,
	"incident":    true,
	"flight":      true,
	"system":      true,
}

// Serve handles the WebSocket connection request. An optional ?topic= query
// parameter narrows the feed to one event-type prefix; the default is the
// global event stream. An unknown topic gets an error message and falls back
// to the global feed.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	topic := r.URL.Query().Get("topic")
	var errMsg []byte
	if topic != "" && !feedTopics[topic] {
		errMsg = ws.NewErrorMessage(fmt.Sprintf("unknown topic %q, receiving the global feed", topic))
		topic = ""
	}

	client := ws.NewClient(h.hub, conn, topic)
	h.hub.Register <- client

	go client.WritePump()
	if errMsg != nil {
		client.Send <- errMsg
	}
	go func() {
		// The feed is one-way; inbound frames are ignored but the read loop
		// is what notices the peer going away.
		client.ReadPump(nil)
		h.hub.Unregister <- client
	}()
}
