// handlers/youtube.go - YouTube Data API proxy
package handlers

import (
	"errors"
	"math/rand"

	"mariofun/services"

	"github.com/gofiber/fiber/v2"
)

// GetChannelVideos returns the channel's latest videos
// GET /api/youtube/videos
func (h *Handler) GetChannelVideos(c *fiber.Ctx) error {
	videos, err := h.YouTube.LatestVideos()
	if err != nil {
		if errors.Is(err, services.ErrYouTubeNotConfigured) {
			return c.Status(503).JSON(fiber.Map{"message": "API YouTube non configurée"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Impossible de récupérer les vidéos"})
	}

	return c.JSON(fiber.Map{"videos": videos})
}

// GetChannelStats returns subscriber/view/video counts for the channel
// GET /api/youtube/stats
func (h *Handler) GetChannelStats(c *fiber.Ctx) error {
	stats, err := h.YouTube.Stats()
	if err != nil {
		if errors.Is(err, services.ErrYouTubeNotConfigured) {
			return c.Status(503).JSON(fiber.Map{"message": "API YouTube non configurée"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Impossible de récupérer les statistiques"})
	}

	return c.JSON(fiber.Map{
		"subscribers": stats.SubscriberCount,
		"views":       stats.ViewCount,
		"videos":      stats.VideoCount,
	})
}

// CheckSubscription simulates a subscription check. A real check needs
// OAuth2 consent from the viewer, which the landing page doesn't have.
// GET /api/youtube/check-subscription/:channelId
func (h *Handler) CheckSubscription(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"isSubscribed": rand.Intn(2) == 1})
}
