// services/announcer.go - Live announcement hub
package services

import (
	"log"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Announcement is a broadcast event pushed to every connected client.
type Announcement struct {
	Type             string `json:"type"`
	Username         string `json:"username,omitempty"`
	PrizeDescription string `json:"prizeDescription,omitempty"`
	WeekNumber       int    `json:"weekNumber,omitempty"`
	Year             int    `json:"year,omitempty"`
	Message          string `json:"message,omitempty"`
}

// AnnouncementHub fans announcements out to websocket clients. Used by
// the admin lottery handler to announce a recorded winner site-wide.
type AnnouncementHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func NewAnnouncementHub() *AnnouncementHub {
	return &AnnouncementHub{
		clients: make(map[*websocket.Conn]bool),
	}
}

// Handle serves one websocket connection until the client hangs up.
// Clients only listen; inbound frames are drained and discarded.
func (h *AnnouncementHub) Handle(conn *websocket.Conn) {
	h.register(conn)
	defer h.unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Broadcast sends an announcement to every connected client. Clients
// that fail to receive are dropped.
func (h *AnnouncementHub) Broadcast(a Announcement) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(a); err != nil {
			log.Printf("announcement write failed, dropping client: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount reports the number of connected listeners.
func (h *AnnouncementHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *AnnouncementHub) register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *AnnouncementHub) unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[conn] {
		delete(h.clients, conn)
		conn.Close()
	}
}
