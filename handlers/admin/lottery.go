// handlers/admin/lottery.go - Weekly draw administration
//
// Winner selection is deliberately manual: the admin reviews the week's
// entries and records the winner by explicit user id. Nothing in the
// server draws at random.
package admin

import (
	"errors"
	"time"

	"mariofun/models"
	"mariofun/services"
	"mariofun/storage"

	"github.com/gofiber/fiber/v2"
)

// Handler bundles the admin route dependencies.
type Handler struct {
	Store storage.Storage
	Hub   *services.AnnouncementHub
}

func New(store storage.Storage, hub *services.AnnouncementHub) *Handler {
	return &Handler{
		Store: store,
		Hub:   hub,
	}
}

type RecordWinnerRequest struct {
	UserID           uint   `json:"userId"`
	WeekNumber       int    `json:"weekNumber"`
	Year             int    `json:"year"`
	BlockchainTxHash string `json:"blockchainTxHash"`
	PrizeDescription string `json:"prizeDescription"`
}

// GetWeeklyEntries lists the lottery entries for a week, defaulting to
// the current pseudo-week.
// GET /api/admin/lottery/entries?week=&year=
func (h *Handler) GetWeeklyEntries(c *fiber.Ctx) error {
	currentWeek, currentYear := models.LotteryWeek(time.Now())
	week := c.QueryInt("week", currentWeek)
	year := c.QueryInt("year", currentYear)

	if week < 1 || week > 5 {
		return c.Status(400).JSON(fiber.Map{"error": "week must be between 1 and 5"})
	}

	entries, err := h.Store.GetWeeklyLotteryEntries(week, year)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch lottery entries"})
	}

	return c.JSON(fiber.Map{
		"entries": entries,
		"week":    week,
		"year":    year,
	})
}

// RecordWinner records the winner of a weekly draw and announces it to
// connected clients.
// POST /api/admin/lottery/winner
func (h *Handler) RecordWinner(c *fiber.Ctx) error {
	var req RecordWinnerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.UserID < 1 || req.PrizeDescription == "" {
		return c.Status(400).JSON(fiber.Map{"error": "userId and prizeDescription are required"})
	}

	week, year := req.WeekNumber, req.Year
	if week == 0 && year == 0 {
		week, year = models.LotteryWeek(time.Now())
	}
	if week < 1 || week > 5 {
		return c.Status(400).JSON(fiber.Map{"error": "week must be between 1 and 5"})
	}

	user, err := h.Store.GetUser(req.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record winner"})
	}

	winner, err := h.Store.AddLotteryWinner(storage.AddWinnerParams{
		UserID:           req.UserID,
		WeekNumber:       week,
		Year:             year,
		BlockchainTxHash: req.BlockchainTxHash,
		PrizeDescription: req.PrizeDescription,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record winner"})
	}

	if h.Hub != nil {
		h.Hub.Broadcast(services.Announcement{
			Type:             "lottery_winner",
			Username:         user.Username,
			PrizeDescription: winner.PrizeDescription,
			WeekNumber:       winner.WeekNumber,
			Year:             winner.Year,
		})
	}

	return c.JSON(fiber.Map{"winner": winner})
}
