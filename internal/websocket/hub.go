// Package websocket pushes live score updates to spectators. Every connection watches one
// competition; when a score is saved the recomputed leaderboard is sent to everyone
// watching that competition, so scoreboards update without polling.
package websocket

import (
	"context"
	"sync"
)

// sendBuffer is how many messages a client may fall behind before it is dropped.
const sendBuffer = 64

// Client is one connected spectator.
type Client struct {
	CompetitionID string      // Which competition's updates this client receives
	Send          chan []byte // Outgoing messages; closed by the Hub when the client is removed
}

// NewClient returns a client watching competitionID.
func NewClient(competitionID string) *Client {
	return &Client{CompetitionID: competitionID, Send: make(chan []byte, sendBuffer)}
}

// Message is one payload for every client of a competition.
type Message struct {
	CompetitionID string
	Data          []byte
}

// Broadcaster delivers a payload to the spectators of a competition. The Hub delivers
// locally; Relay fans out through NATS first.
type Broadcaster interface {
	Broadcast(competitionID string, data []byte)
}

// Hub tracks connected clients grouped by competition ID. Registration, removal and
// delivery all happen on the Run goroutine; the mutex only guards readers such as
// ClientCount.
type Hub struct {
	// competitionID -> set of clients
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{} // Closed when Run returns

	mu sync.RWMutex
}

// NewHub creates a Hub. Call Run before registering clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for _, clients := range h.clients {
				for client := range clients {
					close(client.Send)
				}
			}
			h.clients = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.CompetitionID] == nil {
				h.clients[client.CompetitionID] = make(map[*Client]bool)
			}
			h.clients[client.CompetitionID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			var slow []*Client
			h.mu.RLock()
			for client := range h.clients[msg.CompetitionID] {
				select {
				case client.Send <- msg.Data:
				default:
					slow = append(slow, client)
				}
			}
			h.mu.RUnlock()

			// A client whose buffer is full is dropped rather than stalling the others.
			// Removal happens here directly: sending on h.unregister from this goroutine
			// would block forever.
			if len(slow) > 0 {
				h.mu.Lock()
				for _, client := range slow {
					h.remove(client)
				}
				h.mu.Unlock()
			}
		}
	}
}

// remove must be called with the write lock held.
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.CompetitionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.CompetitionID)
	}
}

// Broadcast queues data for every client watching competitionID. It is a no-op once
// the hub has stopped.
func (h *Hub) Broadcast(competitionID string, data []byte) {
	select {
	case h.broadcast <- &Message{CompetitionID: competitionID, Data: data}:
	case <-h.done:
	}
}

// Register starts delivering broadcasts to client.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

// Unregister removes client and closes its Send channel. Removing a client twice is safe.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients across all competitions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}
