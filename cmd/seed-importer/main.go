// cmd/seed-importer - loads a JSON fixture of demo users and scores into
// the configured PostgreSQL database. Useful for staging environments;
// the in-memory backend starts empty by design.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"mariofun/database"
	"mariofun/models"

	"github.com/joho/godotenv"
)

type seedFile struct {
	Users  []seedUser  `json:"users"`
	Scores []seedScore `json:"scores"`
}

type seedUser struct {
	Username      string   `json:"username"`
	YouTubeID     string   `json:"youtubeId"`
	IsSubscribed  bool     `json:"isSubscribed"`
	PreferredMood string   `json:"preferredMood"`
	BadgesEarned  []string `json:"badgesEarned"`
}

type seedScore struct {
	Username  string `json:"username"`
	GameType  string `json:"gameType"`
	Score     int    `json:"score"`
	TimeSpent *int   `json:"timeSpent"`
}

func main() {
	path := flag.String("file", "./seed/demo.json", "path to the seed JSON file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Failed to read seed file:", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		log.Fatal("Failed to parse seed file:", err)
	}

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	fmt.Printf("Found %d users and %d scores\n\n", len(seed.Users), len(seed.Scores))

	userIDs := make(map[string]uint)

	for _, u := range seed.Users {
		mood := u.PreferredMood
		if mood == "" {
			mood = "mario"
		}
		user := models.User{
			Username:      u.Username,
			YouTubeID:     u.YouTubeID,
			IsSubscribed:  u.IsSubscribed,
			PreferredMood: mood,
			Level:         1,
			BadgesEarned:  models.Badges(u.BadgesEarned),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Error inserting user %q: %v\n", u.Username, err)
			continue
		}
		userIDs[u.Username] = user.ID
		fmt.Printf("Inserted user %s (id %d)\n", user.Username, user.ID)
	}

	var scores []models.GameScore
	for _, s := range seed.Scores {
		userID, ok := userIDs[s.Username]
		if !ok {
			log.Printf("Skipping score for unknown user %q\n", s.Username)
			continue
		}
		scores = append(scores, models.GameScore{
			UserID:    userID,
			GameType:  s.GameType,
			Score:     s.Score,
			TimeSpent: s.TimeSpent,
		})
	}

	batchSize := 500
	for i := 0; i < len(scores); i += batchSize {
		end := i + batchSize
		if end > len(scores) {
			end = len(scores)
		}

		batch := scores[i:end]
		if err := db.Create(&batch).Error; err != nil {
			log.Printf("Error inserting batch %d-%d: %v\n", i, end, err)
		} else {
			fmt.Printf("Inserted scores %d-%d\n", i+1, end)
		}
	}

	// Bring the aggregate stats in line with the imported scores.
	db.Exec(`
		UPDATE users SET
			games_played = sub.count,
			total_points = sub.total
		FROM (
			SELECT user_id, COUNT(*) AS count, SUM(score) AS total
			FROM game_scores GROUP BY user_id
		) AS sub
		WHERE users.id = sub.user_id
	`)

	fmt.Println("\n✓ Seed completed successfully!")

	var count int64
	db.Model(&models.GameScore{}).Count(&count)
	fmt.Printf("✓ Total scores in database: %d\n", count)
}
