package realtime

import (
	"encoding/json"

	"github.com/katdzy/studentFreedomWall/internal/pkg/logger"
)

// Hub maintains the set of connected observers and broadcasts events to
// them. All mutations of the connection sets happen on the Run goroutine,
// and all events flow through a single broadcast channel, so events
// enqueued in commit order are delivered in commit order. Delivery is
// fire-and-forget: an observer that cannot keep up is dropped.
type Hub struct {
	// Registered observers, public and operator alike
	clients map[*Client]bool

	// Active operator connection per admin identity. A new connection for
	// the same identity displaces the previous one.
	operators map[string]*Client

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// NewHub creates an idle hub; call Run on its own goroutine to start it
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		operators:  make(map[string]*Client),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run processes register/unregister/broadcast events until the process exits
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client.adminID != "" {
				h.displace(client.adminID)
				h.operators[client.adminID] = client
			}
			h.clients[client] = true

		case client := <-h.unregister:
			h.drop(client)

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer: drop it rather than block the hub
					h.drop(client)
				}
			}
		}
	}
}

// displace forcibly closes any prior connection held by the given operator
// identity. It runs on the hub goroutine.
func (h *Hub) displace(adminID string) {
	prev, ok := h.operators[adminID]
	if !ok {
		return
	}
	logger.Info("realtime: displacing previous connection for operator %s", adminID)
	h.drop(prev)
}

// drop removes a client from both registries and closes its send channel
func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	if client.adminID != "" && h.operators[client.adminID] == client {
		delete(h.operators, client.adminID)
	}
	close(client.send)
}

// Emit broadcasts an event to every connected observer. It never blocks
// the caller: if the hub's queue is full the event is dropped.
func (h *Hub) Emit(event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		logger.Error("realtime: failed to marshal %s event: %v", event, err)
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		logger.Warn("realtime: broadcast queue full, dropping %s event", event)
	}
}
