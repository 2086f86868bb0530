// Package hub fans analysis updates out to dashboard websocket clients.
//
// Two traffic shapes share one hub type: JSON stat updates and binary
// JPEG frames. Clients are receive-only; a client that cannot keep up
// with the broadcast rate is dropped rather than allowed to stall the
// producing loop.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/affectlab/facemeter/internal/log"
)

// Message is one broadcast payload.
type Message struct {
	binary bool
	data   []byte
}

// Hub tracks connected clients and fans messages out to all of them.
type Hub struct {
	name string

	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client

	// Guards clients for the out-of-loop ClientCount reader.
	mu sync.RWMutex
}

// New creates a hub. The name only appears in logs.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's event loop. Call in a goroutine; runs forever.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mu.Unlock()
			log.Debug("viewer connected", "hub", h.name, "viewers", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			log.Debug("viewer disconnected", "hub", h.name, "viewers", n)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Full send buffer means the viewer stopped
					// draining. Cut it loose.
					close(c.send)
					delete(h.clients, c)
					log.Warn("dropped slow viewer", "hub", h.name)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastJSON encodes v and queues it for all clients.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.enqueue(Message{data: data})
	return nil
}

// BroadcastBinary queues raw bytes, typically a JPEG frame.
func (h *Hub) BroadcastBinary(data []byte) {
	h.enqueue(Message{binary: true, data: data})
}

func (h *Hub) enqueue(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		// The loop itself is behind. Dropping here keeps the sampling
		// cadence intact at the cost of a stale dashboard tick.
		log.Warn("broadcast queue full, dropping update", "hub", h.name)
	}
}

// ClientCount reports how many clients are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
