// handlers/users.go
package handlers

import (
	"errors"

	"mariofun/models"
	"mariofun/storage"

	"github.com/gofiber/fiber/v2"
)

// UpdateUserRequest is the updatable subset of the user record. Identity
// fields (id, username, youtube id) are fixed after creation.
type UpdateUserRequest struct {
	IsSubscribed  *bool          `json:"isSubscribed"`
	PreferredMood *string        `json:"preferredMood"`
	Level         *int           `json:"level"`
	TotalPoints   *int           `json:"totalPoints"`
	VideosWatched *int           `json:"videosWatched"`
	GamesPlayed   *int           `json:"gamesPlayed"`
	BadgesEarned  *models.Badges `json:"badgesEarned"`
}

type UpdateMoodRequest struct {
	UserID uint   `json:"userId"`
	Mood   string `json:"mood"`
}

// GetUser returns a single user by id
// GET /api/user/:id
func (h *Handler) GetUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return c.Status(400).JSON(fiber.Map{"message": "Identifiant invalide"})
	}

	user, err := h.Store.GetUser(uint(userID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Utilisateur non trouvé"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Erreur serveur"})
	}

	return c.JSON(fiber.Map{"user": user})
}

// UpdateUser applies a partial update to a user
// PUT /api/user/:id
func (h *Handler) UpdateUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil || userID < 1 {
		return c.Status(400).JSON(fiber.Map{"message": "Identifiant invalide"})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Données invalides"})
	}

	user, err := h.Store.UpdateUser(uint(userID), storage.UserUpdate{
		IsSubscribed:  req.IsSubscribed,
		PreferredMood: req.PreferredMood,
		Level:         req.Level,
		TotalPoints:   req.TotalPoints,
		VideosWatched: req.VideosWatched,
		GamesPlayed:   req.GamesPlayed,
		BadgesEarned:  req.BadgesEarned,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Utilisateur non trouvé"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Erreur de mise à jour"})
	}

	return c.JSON(fiber.Map{"user": user})
}

// UpdateMood sets the user's preferred mood theme
// POST /api/mood/update
func (h *Handler) UpdateMood(c *fiber.Ctx) error {
	var req UpdateMoodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Données invalides"})
	}

	user, err := h.Store.UpdateUser(req.UserID, storage.UserUpdate{
		PreferredMood: &req.Mood,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Utilisateur non trouvé"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Erreur mise à jour humeur"})
	}

	return c.JSON(fiber.Map{"user": user, "message": "Humeur mise à jour !"})
}
