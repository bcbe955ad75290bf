// storage/database.go - PostgreSQL storage backend (GORM).
package storage

import (
	"errors"

	"mariofun/models"

	"gorm.io/gorm"
)

// DatabaseStorage implements Storage on top of PostgreSQL. Mutation
// sequences that the in-memory backend guards with its mutex run inside
// transactions here.
type DatabaseStorage struct {
	db *gorm.DB
}

func NewDatabaseStorage(db *gorm.DB) *DatabaseStorage {
	return &DatabaseStorage{db: db}
}

func (s *DatabaseStorage) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStorage) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStorage) GetUserByYouTubeID(youtubeID string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("youtube_id = ?", youtubeID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStorage) CreateUser(params CreateUserParams) (*models.User, error) {
	mood := params.PreferredMood
	if mood == "" {
		mood = "mario"
	}

	user := models.User{
		Username:      params.Username,
		YouTubeID:     params.YouTubeID,
		IsSubscribed:  params.IsSubscribed,
		PreferredMood: mood,
		Level:         1,
		BadgesEarned:  models.Badges{},
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStorage) UpdateUser(id uint, updates UserUpdate) (*models.User, error) {
	columns := map[string]interface{}{}
	if updates.IsSubscribed != nil {
		columns["is_subscribed"] = *updates.IsSubscribed
	}
	if updates.PreferredMood != nil {
		columns["preferred_mood"] = *updates.PreferredMood
	}
	if updates.Level != nil {
		columns["level"] = *updates.Level
	}
	if updates.TotalPoints != nil {
		columns["total_points"] = *updates.TotalPoints
	}
	if updates.VideosWatched != nil {
		columns["videos_watched"] = *updates.VideosWatched
	}
	if updates.GamesPlayed != nil {
		columns["games_played"] = *updates.GamesPlayed
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if len(columns) > 0 {
			if err := tx.Model(&user).Updates(columns).Error; err != nil {
				return err
			}
		}
		if updates.BadgesEarned != nil {
			user.BadgesEarned = *updates.BadgesEarned
			if err := tx.Model(&user).Update("badges_earned", user.BadgesEarned).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *DatabaseStorage) GetGameScores(userID uint) ([]models.GameScore, error) {
	scores := []models.GameScore{}
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *DatabaseStorage) GetTopScores(gameType string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	entries := []LeaderboardEntry{}
	err := s.db.Table("game_scores").
		Select("game_scores.*, COALESCE(users.username, ?) AS username", PlaceholderUsername).
		Joins("LEFT JOIN users ON users.id = game_scores.user_id").
		Where("game_scores.game_type = ?", gameType).
		Order("game_scores.score DESC, game_scores.id ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *DatabaseStorage) RecordScore(params RecordScoreParams) (*models.GameScore, error) {
	score := models.GameScore{
		UserID:    params.UserID,
		GameType:  params.GameType,
		Score:     params.Score,
		TimeSpent: params.TimeSpent,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&score).Error; err != nil {
			return err
		}
		// Stat cascade. Affecting zero rows is fine: the score keeps a
		// soft reference to a user that may not exist.
		return tx.Model(&models.User{}).
			Where("id = ?", params.UserID).
			Updates(map[string]interface{}{
				"games_played": gorm.Expr("games_played + 1"),
				"total_points": gorm.Expr("total_points + ?", params.Score),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (s *DatabaseStorage) GetUserRewards(userID uint) ([]models.VipReward, error) {
	rewards := []models.VipReward{}
	if err := s.db.Where("user_id = ?", userID).
		Order("earned_at DESC, id DESC").
		Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

func (s *DatabaseStorage) AddVipReward(params AddRewardParams) (*models.VipReward, error) {
	reward := models.VipReward{
		UserID:     params.UserID,
		RewardType: params.RewardType,
		RewardData: params.RewardData,
		ClaimCode:  params.ClaimCode,
	}
	if err := s.db.Create(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (s *DatabaseStorage) EnterLottery(userID uint, weekNumber, year int) (*models.LotteryEntry, error) {
	entry := models.LotteryEntry{
		UserID:     userID,
		WeekNumber: weekNumber,
		Year:       year,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.LotteryEntry{}).
			Where("user_id = ? AND week_number = ? AND year = ?", userID, weekNumber, year).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateEntry
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *DatabaseStorage) GetUserLotteryEntries(userID uint, weekNumber, year int) ([]models.LotteryEntry, error) {
	entries := []models.LotteryEntry{}
	if err := s.db.Where("user_id = ? AND week_number = ? AND year = ?", userID, weekNumber, year).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *DatabaseStorage) GetWeeklyLotteryEntries(weekNumber, year int) ([]models.LotteryEntry, error) {
	entries := []models.LotteryEntry{}
	if err := s.db.Where("week_number = ? AND year = ?", weekNumber, year).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *DatabaseStorage) AddLotteryWinner(params AddWinnerParams) (*models.LotteryWinner, error) {
	winner := models.LotteryWinner{
		UserID:           params.UserID,
		WeekNumber:       params.WeekNumber,
		Year:             params.Year,
		BlockchainTxHash: params.BlockchainTxHash,
		PrizeDescription: params.PrizeDescription,
	}
	if err := s.db.Create(&winner).Error; err != nil {
		return nil, err
	}
	return &winner, nil
}

func (s *DatabaseStorage) GetLatestWinner() (*WinnerWithUsername, error) {
	winner := WinnerWithUsername{}
	err := s.db.Table("lottery_winners").
		Select("lottery_winners.*, COALESCE(users.username, ?) AS username", PlaceholderUsername).
		Joins("LEFT JOIN users ON users.id = lottery_winners.user_id").
		Order("lottery_winners.won_at DESC, lottery_winners.id DESC").
		Limit(1).
		Take(&winner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &winner, nil
}
