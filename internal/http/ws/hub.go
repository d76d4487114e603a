// README: Hub fanning live session snapshots out to websocket subscribers.
package ws

import "sync"

type Hub struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

func (h *Hub) AddClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

func (h *Hub) RemoveClient(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.Send)
	}
}

// Broadcast never blocks on a slow subscriber: a client whose queue is full
// is dropped instead of stalling the session ticker.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	var slow []string
	for id, client := range h.clients {
		select {
		case client.Send <- message:
		default:
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		h.RemoveClient(id)
	}
}
