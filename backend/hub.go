package main

import (
	"context"
	"encoding/json"
	"sync"
)

// Hub fans board and status updates out to websocket clients.
type Hub struct {
	mu              sync.Mutex
	clients         map[*Client]struct{}
	broadcastBoard  chan boardPayload
	broadcastStatus chan StatusResponse
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type boardPayload struct {
	GameID     string  `json:"game_id"`
	Board      [][]int `json:"board"`
	NextPlayer int     `json:"next_player"`
	Winner     int     `json:"winner"`
	MoveCount  int     `json:"move_count"`
	Status     string  `json:"status"`
}

func NewHub() *Hub {
	return &Hub{
		clients:         make(map[*Client]struct{}),
		broadcastBoard:  make(chan boardPayload, 16),
		broadcastStatus: make(chan StatusResponse, 32),
	}
}

func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil
		case payload := <-h.broadcastBoard:
			h.broadcast(wsMessage{Type: "board", Payload: mustMarshal(payload)})
		case payload := <-h.broadcastStatus:
			h.broadcast(wsMessage{Type: "status", Payload: mustMarshal(payload)})
		}
	}
}

// Publish queues a status update and the matching board message. Updates are
// dropped when the queues are full.
func (h *Hub) Publish(status StatusResponse) {
	board := boardPayload{
		GameID:     status.GameID,
		Board:      status.Board,
		NextPlayer: status.NextPlayer,
		Winner:     status.Winner,
		MoveCount:  status.MoveCount,
		Status:     status.Status,
	}
	select {
	case h.broadcastBoard <- board:
	default:
	}
	select {
	case h.broadcastStatus <- status:
	default:
	}
}

func (h *Hub) broadcast(msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.sendJSON(msg)
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// SendTo delivers msg to one client if it is still registered.
func (h *Hub) SendTo(c *Client, msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		c.sendJSON(msg)
	}
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

// sendJSON must be called with the hub lock held.
func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
