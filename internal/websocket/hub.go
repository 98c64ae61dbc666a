package websocket

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/skyops/aeroops-be/internal/models"
)

// topicMessage is a payload addressed to one topic's subscribers plus the
// global-feed clients.
type topicMessage struct {
	topic   string
	payload []byte
}

// Hub maintains the set of active clients and fans event messages out to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Outbound messages queued for delivery by the hub loop.
	broadcast chan topicMessage

	// A map of topics to the set of clients subscribed to them.
	subscriptions map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		broadcast:     make(chan topicMessage, 256),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
			if client.Topic != "" {
				h.addSubscription(client, client.Topic)
			}
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// BroadcastEvent serializes an activity event and queues it for delivery. The
// event's topic is the segment before the first dot of its type, so a client
// subscribed to "maintenance" sees maintenance.* events only. Satisfies
// services.Broadcaster.
func (h *Hub) BroadcastEvent(event models.Event) {
	msg, err := json.Marshal(Message{Action: "event", Payload: event})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode event for broadcast")
		return
	}
	topic := event.Type
	if i := strings.Index(topic, "."); i > 0 {
		topic = topic[:i]
	}
	h.BroadcastTo(topic, msg)
}

// BroadcastTo queues a message for the topic's subscribers and for clients on
// the global feed.
func (h *Hub) BroadcastTo(topic string, message []byte) {
	select {
	case h.broadcast <- topicMessage{topic: topic, payload: message}:
	default:
		log.Warn().Str("topic", topic).Msg("Hub queue full, dropping broadcast")
	}
}

// deliver sends a queued message to the topic's subscribers and to every
// client with no topic filter. Runs on the hub loop.
func (h *Hub) deliver(msg topicMessage) {
	for client := range h.subscriptions[msg.topic] {
		h.send(client, msg.payload)
	}
	for client := range h.clients {
		if client.Topic == "" {
			h.send(client, msg.payload)
		}
	}
}

func (h *Hub) send(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		close(client.Send)
		delete(h.clients, client)
		h.removeSubscription(client)
	}
}

func (h *Hub) addSubscription(client *Client, topic string) {
	if h.subscriptions[topic] == nil {
		h.subscriptions[topic] = make(map[*Client]bool)
	}
	h.subscriptions[topic][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for topic, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, topic)
			}
		}
	}
}
