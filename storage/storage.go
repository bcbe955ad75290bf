// storage/storage.go - Storage interface shared by the in-memory and
// PostgreSQL backends.
package storage

import (
	"errors"

	"mariofun/models"
)

var (
	// ErrNotFound is returned when a record looked up by primary id is absent.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEntry is returned when a user already holds a lottery
	// ticket for the requested week and year.
	ErrDuplicateEntry = errors.New("duplicate lottery entry")
)

// PlaceholderUsername is substituted when a score or winner references a
// user that no longer resolves. Soft foreign keys are tolerated, not
// rejected.
const PlaceholderUsername = "Utilisateur inconnu"

// DefaultLeaderboardLimit is used when a caller asks for a leaderboard
// without an explicit limit.
const DefaultLeaderboardLimit = 10

// CreateUserParams carries the caller-supplied fields for a new user.
// Everything else is defaulted by the store.
type CreateUserParams struct {
	Username      string
	YouTubeID     string
	IsSubscribed  bool
	PreferredMood string // empty means "mario"
}

// UserUpdate is a partial user update. Nil fields are left unchanged.
// Only this subset of fields is updatable; anything else (id, username,
// youtube id, createdAt) is fixed after creation.
type UserUpdate struct {
	IsSubscribed  *bool
	PreferredMood *string
	Level         *int
	TotalPoints   *int
	VideosWatched *int
	GamesPlayed   *int
	BadgesEarned  *models.Badges
}

// RecordScoreParams carries a submitted mini-game score.
type RecordScoreParams struct {
	UserID    uint
	GameType  string
	Score     int
	TimeSpent *int
}

// AddRewardParams carries a mystery-chest reward to persist.
type AddRewardParams struct {
	UserID     uint
	RewardType string
	RewardData models.RewardData
	ClaimCode  string
}

// AddWinnerParams carries an admin-recorded lottery winner.
type AddWinnerParams struct {
	UserID           uint
	WeekNumber       int
	Year             int
	BlockchainTxHash string
	PrizeDescription string
}

// LeaderboardEntry is a score joined with the scoring user's username.
type LeaderboardEntry struct {
	models.GameScore
	Username string `json:"username"`
}

// WinnerWithUsername is a lottery winner joined with the winning
// user's username.
type WinnerWithUsername struct {
	models.LotteryWinner
	Username string `json:"username"`
}

// Storage is the persistence boundary of the application. The in-memory
// implementation is the default; a PostgreSQL implementation is selected
// when a database is configured. Both preserve the same semantics:
// per-kind ids start at 1 and are never reused, multi-step mutation
// sequences (score cascade, lottery check-then-insert) are atomic.
type Storage interface {
	// Users. GetUser returns ErrNotFound for an absent id; the two
	// secondary lookups return (nil, nil) when no user matches.
	GetUser(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByYouTubeID(youtubeID string) (*models.User, error)
	CreateUser(params CreateUserParams) (*models.User, error)
	UpdateUser(id uint, updates UserUpdate) (*models.User, error)

	// Game scores. RecordScore stores the score and, when the owning
	// user exists, increments gamesPlayed by 1 and totalPoints by the
	// score value in the same operation.
	GetGameScores(userID uint) ([]models.GameScore, error)
	GetTopScores(gameType string, limit int) ([]LeaderboardEntry, error)
	RecordScore(params RecordScoreParams) (*models.GameScore, error)

	// VIP rewards. GetUserRewards returns newest first.
	GetUserRewards(userID uint) ([]models.VipReward, error)
	AddVipReward(params AddRewardParams) (*models.VipReward, error)

	// Lottery. EnterLottery enforces at most one entry per
	// (user, week, year) and returns ErrDuplicateEntry otherwise.
	// GetLatestWinner returns (nil, nil) when no winner was ever recorded.
	EnterLottery(userID uint, weekNumber, year int) (*models.LotteryEntry, error)
	GetUserLotteryEntries(userID uint, weekNumber, year int) ([]models.LotteryEntry, error)
	GetWeeklyLotteryEntries(weekNumber, year int) ([]models.LotteryEntry, error)
	AddLotteryWinner(params AddWinnerParams) (*models.LotteryWinner, error)
	GetLatestWinner() (*WinnerWithUsername, error)
}
