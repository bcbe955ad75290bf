// handlers/auth.go
package handlers

import (
	"mariofun/storage"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Username      string `json:"username"`
	YouTubeID     string `json:"youtubeId"`
	IsSubscribed  bool   `json:"isSubscribed"`
	PreferredMood string `json:"preferredMood"`
}

// Login signs a viewer in. The operation is an upsert keyed by the
// YouTube account id: the first login creates the user with defaults,
// repeat logins only refresh the subscription flag. A repeat login with
// a different username does not rename the user.
// POST /api/auth/login
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Données invalides"})
	}

	if req.Username == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Données invalides"})
	}

	user, err := h.Store.GetUserByYouTubeID(req.YouTubeID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Erreur serveur"})
	}

	if user == nil {
		user, err = h.Store.CreateUser(storage.CreateUserParams{
			Username:      req.Username,
			YouTubeID:     req.YouTubeID,
			IsSubscribed:  req.IsSubscribed,
			PreferredMood: req.PreferredMood,
		})
	} else {
		user, err = h.Store.UpdateUser(user.ID, storage.UserUpdate{
			IsSubscribed: &req.IsSubscribed,
		})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Erreur serveur"})
	}

	return c.JSON(fiber.Map{"user": user})
}
