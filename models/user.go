// models/user.go
package models

import (
	"time"
)

// Badges is the list of badge identifiers a user has earned.
// Stored as a JSON array so the set of badge kinds stays open.
type Badges []string

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null;size:100" json:"username"`
	YouTubeID    string `gorm:"column:youtube_id;index;size:100" json:"youtubeId"`
	IsSubscribed bool   `gorm:"default:false" json:"isSubscribed"`

	// Preferences
	PreferredMood string `gorm:"default:'mario';size:50" json:"preferredMood"`

	// Progression
	Level       int `gorm:"default:1" json:"level"`
	TotalPoints int `gorm:"default:0" json:"totalPoints"`

	// Stats
	VideosWatched int    `gorm:"default:0" json:"videosWatched"`
	GamesPlayed   int    `gorm:"default:0" json:"gamesPlayed"`
	BadgesEarned  Badges `gorm:"serializer:json;type:jsonb" json:"badgesEarned"`

	CreatedAt time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
