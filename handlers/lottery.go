// handlers/lottery.go - Weekly VIP lottery
package handlers

import (
	"errors"
	"time"

	"mariofun/models"
	"mariofun/storage"

	"github.com/gofiber/fiber/v2"
)

type LotteryEnterRequest struct {
	UserID uint `json:"userId"`
}

// EnterLottery registers a subscribed user for the current pseudo-week's
// draw. One ticket per user per week.
// POST /api/lottery/enter
func (h *Handler) EnterLottery(c *fiber.Ctx) error {
	var req LotteryEnterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Données invalides"})
	}

	user, err := h.Store.GetUser(req.UserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return c.Status(500).JSON(fiber.Map{"message": "Erreur inscription tirage"})
	}
	if user == nil || !user.IsSubscribed {
		return c.Status(403).JSON(fiber.Map{"message": "Seuls les abonnés VIP peuvent participer"})
	}

	weekNumber, year := models.LotteryWeek(time.Now())

	entry, err := h.Store.EnterLottery(req.UserID, weekNumber, year)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateEntry) {
			return c.Status(400).JSON(fiber.Map{"message": "Déjà inscrit cette semaine"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Erreur inscription tirage"})
	}

	return c.JSON(fiber.Map{"entry": entry, "message": "Inscription au tirage réussie !"})
}

// GetLatestWinner returns the most recent lottery winner, or null when
// no draw has happened yet.
// GET /api/lottery/latest-winner
func (h *Handler) GetLatestWinner(c *fiber.Ctx) error {
	winner, err := h.Store.GetLatestWinner()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Erreur récupération gagnant"})
	}

	return c.JSON(fiber.Map{"winner": winner})
}
