// handlers/handler.go - HTTP handler wiring
package handlers

import (
	"mariofun/services"
	"mariofun/storage"
)

// Handler bundles the dependencies of the public API handlers. The store
// is injected so tests can run against a fresh in-memory instance.
type Handler struct {
	Store   storage.Storage
	YouTube *services.YouTubeService
	Hub     *services.AnnouncementHub
}

func New(store storage.Storage, youtube *services.YouTubeService, hub *services.AnnouncementHub) *Handler {
	return &Handler{
		Store:   store,
		YouTube: youtube,
		Hub:     hub,
	}
}
