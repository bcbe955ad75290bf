// handlers/routes.go - Route registration
package handlers

import (
	"time"

	"mariofun/handlers/admin"
	"mariofun/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes wires every API route onto the app. main.go and the
// handler tests share this wiring.
func (h *Handler) RegisterRoutes(app *fiber.App, adm *admin.Handler) {
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/login", h.Login)

	// User routes
	api.Get("/user/:id", h.GetUser)
	api.Put("/user/:id", h.UpdateUser)

	// YouTube proxy routes
	api.Get("/youtube/videos", h.GetChannelVideos)
	api.Get("/youtube/stats", h.GetChannelStats)
	api.Get("/youtube/check-subscription/:channelId", h.CheckSubscription)

	// Game routes
	api.Post("/games/score", h.SubmitScore)
	api.Get("/games/scores/:userId", h.GetUserScores)
	api.Get("/games/leaderboard/:gameType", h.GetLeaderboard)

	// VIP routes
	api.Get("/vip/rewards/:userId", h.GetUserRewards)
	api.Post("/vip/mystery-chest", h.OpenMysteryChest)

	// Lottery routes
	api.Post("/lottery/enter", h.EnterLottery)
	api.Get("/lottery/latest-winner", h.GetLatestWinner)

	// Mood system
	api.Post("/mood/update", h.UpdateMood)

	// AI personalization (simulated)
	api.Get("/ai/daily-message/:userId", h.GetDailyMessage)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRateLimitMiddleware())
	adminGroup.Post("/login", adm.Login)
	adminGroup.Post("/logout", adm.Logout)

	adminProtected := adminGroup.Group("")
	adminProtected.Use(middleware.AdminAuthMiddleware)
	adminProtected.Get("/verify", adm.VerifyToken)
	adminProtected.Get("/lottery/entries", adm.GetWeeklyEntries)
	adminProtected.Post("/lottery/winner", adm.RecordWinner)

	// Live announcements (lottery winners)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/announcements", websocket.New(h.Hub.Handle))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})
}
