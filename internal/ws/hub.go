// Package ws pushes read-model updates to the panels over WebSocket. Each
// connection subscribes to one role channel (cocina, mesero, recepcion);
// panels treat every push as a hint to refresh, so a dropped message is
// recovered by the next one or by an explicit refetch.
package ws

import (
	"encoding/json"
	"sync"
)

// Role channels a client may subscribe to.
const (
	CanalCocina    = "cocina"
	CanalMesero    = "mesero"
	CanalRecepcion = "recepcion"
)

// Event types pushed to panels.
const (
	EventoMesas     = "mesas"     // occupancy map changed
	EventoCocina    = "cocina"    // kitchen screen/queue changed
	EventoNotificar = "notificar" // new order arrived: play the kitchen chime
	EventoRecepcion = "recepcion" // deferred charges / invoices / reports changed
	EventoUsuarios  = "usuarios"  // a user row changed: sessions check their own row
)

// Event is one WebSocket push.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type canalEvent struct {
	Canal string
	Event Event
}

// Hub maintains the set of active clients grouped by role channel.
type Hub struct {
	rooms map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *canalEvent

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *canalEvent, 256),
	}
}

// Run starts the hub's main loop. Call as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.rooms[client.canal] == nil {
				h.rooms[client.canal] = make(map[*Client]bool)
			}
			h.rooms[client.canal][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.canal]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.canal)
					}
				}
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			clients := h.rooms[ev.Canal]

			message, err := json.Marshal(ev.Event)
			if err != nil {
				h.mu.Unlock()
				continue
			}

			for client := range clients {
				select {
				case client.send <- message:
				default:
					// Send buffer full: the client is stuck, drop it.
					close(client.send)
					delete(h.rooms[ev.Canal], client)
					if len(h.rooms[ev.Canal]) == 0 {
						delete(h.rooms, ev.Canal)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an event to every client on a role channel.
func (h *Hub) Broadcast(canal string, tipo string, payload interface{}) {
	ev := Event{Type: tipo}
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return
		}
		ev.Payload = b
	}
	h.broadcast <- &canalEvent{Canal: canal, Event: ev}
}
