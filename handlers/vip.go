// handlers/vip.go - VIP rewards and the mystery chest
package handlers

import (
	"errors"
	"math/rand"

	"mariofun/models"
	"mariofun/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type MysteryChestRequest struct {
	UserID uint `json:"userId"`
}

// The three chest outcomes and their fixed payloads.
var chestRewardTypes = []string{"badge", "image", "secret_link"}

var chestRewardData = map[string]models.RewardData{
	"badge":       {Name: "Explorateur VIP", Icon: "🎖️"},
	"image":       {Name: "Avatar Collector", URL: "/images/special-avatar.png"},
	"secret_link": {Name: "Lien Secret Gaming", URL: "https://secret-gaming-content.com"},
}

// GetUserRewards lists a user's rewards, most recent first
// GET /api/vip/rewards/:userId
func (h *Handler) GetUserRewards(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID < 1 {
		return c.Status(400).JSON(fiber.Map{"message": "Identifiant invalide"})
	}

	rewards, err := h.Store.GetUserRewards(uint(userID))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Erreur récupération récompenses"})
	}

	return c.JSON(fiber.Map{"rewards": rewards})
}

// OpenMysteryChest grants a random reward to a subscribed user. There is
// no cooldown: the chest can be opened any number of times.
// POST /api/vip/mystery-chest
func (h *Handler) OpenMysteryChest(c *fiber.Ctx) error {
	var req MysteryChestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Données invalides"})
	}

	user, err := h.Store.GetUser(req.UserID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return c.Status(500).JSON(fiber.Map{"message": "Erreur ouverture coffre"})
	}
	if user == nil || !user.IsSubscribed {
		return c.Status(403).JSON(fiber.Map{"message": "Accès VIP requis"})
	}

	rewardType := chestRewardTypes[rand.Intn(len(chestRewardTypes))]

	reward, err := h.Store.AddVipReward(storage.AddRewardParams{
		UserID:     req.UserID,
		RewardType: rewardType,
		RewardData: chestRewardData[rewardType],
		ClaimCode:  uuid.New().String()[:8],
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Erreur ouverture coffre"})
	}

	return c.JSON(fiber.Map{"reward": reward})
}
