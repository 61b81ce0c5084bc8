// Package web serves the local debug dashboard: REST endpoints for view
// configuration and websocket streams of overlay geometry and camera frames.
// It is development tooling, not a product surface.
package web

import (
	"encoding/json"
	"sync"

	"github.com/dudu/starface/internal/log"
)

// messageKind indicates the websocket payload format.
type messageKind int

const (
	jsonMessage messageKind = iota
	binaryMessage
)

// message is one payload queued for broadcast.
type message struct {
	kind messageKind
	data []byte
}

// hub fans messages out to all connected websocket clients of one stream.
// Slow clients are dropped rather than allowed to stall the capture loop.
type hub struct {
	name string

	clients    map[*client]bool
	broadcast  chan message
	register   chan *client
	unregister chan *client
	done       chan struct{}

	mu       sync.RWMutex
	stopOnce sync.Once
}

func newHub(name string) *hub {
	return &hub{
		name:       name,
		clients:    make(map[*client]bool),
		broadcast:  make(chan message, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// run is the hub's main loop; call in a goroutine. It exits when stop is
// called, closing every connected client's send channel on the way out.
func (h *hub) run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("dashboard client connected", "stream", h.name, "client", c.id, "total", count)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("dashboard client disconnected", "stream", h.name, "client", c.id, "remaining", count)

		case msg := <-h.broadcast:
			// Full lock: dropping a slow client mutates the map, and
			// clientCount readers run concurrently on other goroutines.
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(h.clients, c)
					log.Warn("dropped slow dashboard client", "stream", h.name, "client", c.id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// stop terminates the run loop; safe to call more than once.
func (h *hub) stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// send queues a message for broadcast, dropping it if the queue is full.
func (h *hub) send(msg message) {
	select {
	case h.broadcast <- msg:
	default:
		log.Debug("dashboard broadcast queue full", "stream", h.name)
	}
}

// sendJSON encodes and broadcasts a JSON message.
func (h *hub) sendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.send(message{kind: jsonMessage, data: data})
	return nil
}

// sendBinary broadcasts binary data such as JPEG frames.
func (h *hub) sendBinary(data []byte) {
	h.send(message{kind: binaryMessage, data: data})
}

// clientCount returns the number of connected clients.
func (h *hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
