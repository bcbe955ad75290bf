// handlers/daily.go - Personalized daily message
package handlers

import (
	"errors"
	"fmt"
	"math/rand"

	"mariofun/storage"

	"github.com/gofiber/fiber/v2"
)

// GetDailyMessage returns a personalized greeting for the user
// GET /api/ai/daily-message/:userId
func (h *Handler) GetDailyMessage(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID < 1 {
		return c.Status(400).JSON(fiber.Map{"message": "Identifiant invalide"})
	}

	user, err := h.Store.GetUser(uint(userID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Utilisateur non trouvé"})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Erreur génération message"})
	}

	messages := []string{
		fmt.Sprintf("Salut %s ! Tu as regardé %d vidéos cette semaine, c'est génial ! 🎉", user.Username, user.VideosWatched),
		fmt.Sprintf("Hey %s ! Prêt pour un nouveau défi gaming aujourd'hui ? 🎮", user.Username),
		fmt.Sprintf("%s, tes scores s'améliorent ! Continue comme ça ! 🏆", user.Username),
		fmt.Sprintf("Bonjour %s ! N'oublie pas de regarder la dernière vidéo de Youssef ! 📺", user.Username),
	}

	return c.JSON(fiber.Map{"message": messages[rand.Intn(len(messages))]})
}
