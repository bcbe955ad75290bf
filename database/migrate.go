// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"mariofun/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.GameScore{},
		&models.VipReward{},
		&models.LotteryEntry{},
		&models.LotteryWinner{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes the aggregation queries rely on
func createIndexes() {
	db := GetDB()

	// User lookups
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_youtube ON users(youtube_id)")

	// Leaderboard: filter by game type, order by score
	db.Exec("CREATE INDEX IF NOT EXISTS idx_game_scores_user ON game_scores(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_game_scores_type_score ON game_scores(game_type, score DESC)")

	// Reward history, newest first
	db.Exec("CREATE INDEX IF NOT EXISTS idx_vip_rewards_user ON vip_rewards(user_id, earned_at DESC)")

	// Weekly lottery duplicate check and entry listing
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_lottery_entries_user_week ON lottery_entries(user_id, week_number, year)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_lottery_entries_week ON lottery_entries(week_number, year)")

	// Latest winner
	db.Exec("CREATE INDEX IF NOT EXISTS idx_lottery_winners_won ON lottery_winners(won_at DESC)")
}
