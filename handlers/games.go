// handlers/games.go
package handlers

import (
	"mariofun/storage"

	"github.com/gofiber/fiber/v2"
)

type SubmitScoreRequest struct {
	UserID    uint   `json:"userId"`
	GameType  string `json:"gameType"`
	Score     int    `json:"score"`
	TimeSpent *int   `json:"timeSpent"`
}

// SubmitScore records a finished mini-game run and cascades the score
// into the owner's aggregate stats (gamesPlayed, totalPoints).
// POST /api/games/score
func (h *Handler) SubmitScore(c *fiber.Ctx) error {
	var req SubmitScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Données de score invalides"})
	}

	if req.UserID < 1 || req.GameType == "" || req.Score < 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Données de score invalides"})
	}

	score, err := h.Store.RecordScore(storage.RecordScoreParams{
		UserID:    req.UserID,
		GameType:  req.GameType,
		Score:     req.Score,
		TimeSpent: req.TimeSpent,
	})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Erreur enregistrement score"})
	}

	return c.JSON(fiber.Map{"score": score})
}

// GetUserScores lists every score a user has recorded
// GET /api/games/scores/:userId
func (h *Handler) GetUserScores(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil || userID < 1 {
		return c.Status(400).JSON(fiber.Map{"message": "Identifiant invalide"})
	}

	scores, err := h.Store.GetGameScores(uint(userID))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Erreur récupération scores"})
	}

	return c.JSON(fiber.Map{"scores": scores})
}

// GetLeaderboard returns the top scores for one game type, highest
// first, joined with usernames
// GET /api/games/leaderboard/:gameType?limit=10
func (h *Handler) GetLeaderboard(c *fiber.Ctx) error {
	gameType := c.Params("gameType")
	limit := c.QueryInt("limit", storage.DefaultLeaderboardLimit)

	leaderboard, err := h.Store.GetTopScores(gameType, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Erreur récupération classement"})
	}

	return c.JSON(fiber.Map{"leaderboard": leaderboard})
}
