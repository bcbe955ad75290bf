// models/models.go - Core Models (User defined in user.go)
package models

import (
	"time"
)

// GameScore represents a single finished mini-game run.
// Scores are append-only: they are never edited or deleted.
type GameScore struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"index"`
	GameType   string    `json:"gameType" gorm:"not null;size:50"` // 'quiz_mario', 'quiz_fortnite', 'memory', 'drag_drop'
	Score      int       `json:"score" gorm:"not null"`
	TimeSpent  *int      `json:"timeSpent" gorm:"column:time_spent"` // in seconds
	AchievedAt time.Time `json:"achievedAt" gorm:"autoCreateTime"`
}

// RewardData is the payload attached to a VIP reward. Which fields are
// set depends on the reward type (badge has an icon, image and
// secret_link have a URL).
type RewardData struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
	URL  string `json:"url,omitempty"`
}

// VipReward represents a reward earned through the VIP mystery chest.
type VipReward struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	UserID     uint       `json:"userId" gorm:"index"`
	RewardType string     `json:"rewardType" gorm:"not null;size:50"` // 'badge', 'image', 'secret_link'
	RewardData RewardData `json:"rewardData" gorm:"serializer:json;type:jsonb"`
	ClaimCode  string     `json:"claimCode" gorm:"size:20"`
	EarnedAt   time.Time  `json:"earnedAt" gorm:"autoCreateTime"`
}

// LotteryEntry represents one ticket in the weekly VIP lottery.
// WeekNumber is the day-of-month pseudo-week (1-5), not an ISO week.
type LotteryEntry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"index"`
	WeekNumber int       `json:"weekNumber" gorm:"not null"`
	Year       int       `json:"year" gorm:"not null"`
	EnteredAt  time.Time `json:"enteredAt" gorm:"autoCreateTime"`
}

// LotteryWinner records the outcome of a weekly draw. Winners are picked
// by an administrator, never automatically.
type LotteryWinner struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"userId" gorm:"index"`
	WeekNumber       int       `json:"weekNumber" gorm:"not null"`
	Year             int       `json:"year" gorm:"not null"`
	BlockchainTxHash string    `json:"blockchainTxHash,omitempty" gorm:"size:100"`
	PrizeDescription string    `json:"prizeDescription" gorm:"size:255"`
	WonAt            time.Time `json:"wonAt" gorm:"autoCreateTime"`
}

// LotteryWeek computes the pseudo-week and year for a point in time:
// ceil(day-of-month / 7), giving weeks 1-5 within the month.
func LotteryWeek(t time.Time) (weekNumber, year int) {
	return (t.Day() + 6) / 7, t.Year()
}

// TableName methods for custom table names
func (GameScore) TableName() string {
	return "game_scores"
}

func (VipReward) TableName() string {
	return "vip_rewards"
}

func (LotteryEntry) TableName() string {
	return "lottery_entries"
}

func (LotteryWinner) TableName() string {
	return "lottery_winners"
}
