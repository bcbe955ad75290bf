// storage/memory.go - In-memory storage backend.
//
// State lives only in process memory and is lost on restart. This is the
// default backend when no database is configured and the reference
// implementation for the storage semantics.
package storage

import (
	"sort"
	"sync"
	"time"

	"mariofun/models"
)

// MemStorage keeps every entity kind in a map keyed by its generated id,
// with a per-kind counter starting at 1. Ids are never reused; nothing is
// ever deleted, so scanning ids 1..next-1 visits records in insertion
// order. A single RWMutex guards all operations, which keeps the
// check-then-act sequences (lottery entry, score cascade) atomic under
// Fiber's concurrent runtime.
type MemStorage struct {
	mu sync.RWMutex

	users          map[uint]*models.User
	gameScores     map[uint]*models.GameScore
	vipRewards     map[uint]*models.VipReward
	lotteryEntries map[uint]*models.LotteryEntry
	lotteryWinners map[uint]*models.LotteryWinner

	nextUserID   uint
	nextScoreID  uint
	nextRewardID uint
	nextEntryID  uint
	nextWinnerID uint

	now func() time.Time
}

// NewMemStorage returns an empty in-memory store.
func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:          make(map[uint]*models.User),
		gameScores:     make(map[uint]*models.GameScore),
		vipRewards:     make(map[uint]*models.VipReward),
		lotteryEntries: make(map[uint]*models.LotteryEntry),
		lotteryWinners: make(map[uint]*models.LotteryWinner),
		nextUserID:     1,
		nextScoreID:    1,
		nextRewardID:   1,
		nextEntryID:    1,
		nextWinnerID:   1,
		now:            time.Now,
	}
}

func (m *MemStorage) GetUser(id uint) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(user), nil
}

func (m *MemStorage) GetUserByUsername(username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id := uint(1); id < m.nextUserID; id++ {
		if user, ok := m.users[id]; ok && user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

func (m *MemStorage) GetUserByYouTubeID(youtubeID string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id := uint(1); id < m.nextUserID; id++ {
		if user, ok := m.users[id]; ok && user.YouTubeID == youtubeID {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

func (m *MemStorage) CreateUser(params CreateUserParams) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	mood := params.PreferredMood
	if mood == "" {
		mood = "mario"
	}

	user := &models.User{
		ID:            m.nextUserID,
		Username:      params.Username,
		YouTubeID:     params.YouTubeID,
		IsSubscribed:  params.IsSubscribed,
		PreferredMood: mood,
		Level:         1,
		TotalPoints:   0,
		VideosWatched: 0,
		GamesPlayed:   0,
		BadgesEarned:  models.Badges{},
		CreatedAt:     m.now(),
	}
	m.users[user.ID] = user
	m.nextUserID++

	return copyUser(user), nil
}

func (m *MemStorage) UpdateUser(id uint, updates UserUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	applyUserUpdate(user, updates)

	return copyUser(user), nil
}

func (m *MemStorage) GetGameScores(userID uint) ([]models.GameScore, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	scores := []models.GameScore{}
	for id := uint(1); id < m.nextScoreID; id++ {
		if score, ok := m.gameScores[id]; ok && score.UserID == userID {
			scores = append(scores, *score)
		}
	}
	return scores, nil
}

func (m *MemStorage) GetTopScores(gameType string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matching []*models.GameScore
	for id := uint(1); id < m.nextScoreID; id++ {
		if score, ok := m.gameScores[id]; ok && score.GameType == gameType {
			matching = append(matching, score)
		}
	}

	// Stable sort: equal scores keep their insertion order, so the
	// earlier score ranks first.
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Score > matching[j].Score
	})

	if len(matching) > limit {
		matching = matching[:limit]
	}

	entries := []LeaderboardEntry{}
	for _, score := range matching {
		username := PlaceholderUsername
		if user, ok := m.users[score.UserID]; ok {
			username = user.Username
		}
		entries = append(entries, LeaderboardEntry{
			GameScore: *score,
			Username:  username,
		})
	}
	return entries, nil
}

func (m *MemStorage) RecordScore(params RecordScoreParams) (*models.GameScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	score := &models.GameScore{
		ID:         m.nextScoreID,
		UserID:     params.UserID,
		GameType:   params.GameType,
		Score:      params.Score,
		TimeSpent:  params.TimeSpent,
		AchievedAt: m.now(),
	}
	m.gameScores[score.ID] = score
	m.nextScoreID++

	// Cascade into the owner's aggregate stats. A missing user is not an
	// error: the score keeps a soft reference.
	if user, ok := m.users[params.UserID]; ok {
		user.GamesPlayed++
		user.TotalPoints += params.Score
	}

	result := *score
	return &result, nil
}

func (m *MemStorage) GetUserRewards(userID uint) ([]models.VipReward, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rewards := []models.VipReward{}
	for id := uint(1); id < m.nextRewardID; id++ {
		if reward, ok := m.vipRewards[id]; ok && reward.UserID == userID {
			rewards = append(rewards, *reward)
		}
	}

	// Most recent first.
	sort.SliceStable(rewards, func(i, j int) bool {
		return rewards[i].EarnedAt.After(rewards[j].EarnedAt)
	})
	return rewards, nil
}

func (m *MemStorage) AddVipReward(params AddRewardParams) (*models.VipReward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reward := &models.VipReward{
		ID:         m.nextRewardID,
		UserID:     params.UserID,
		RewardType: params.RewardType,
		RewardData: params.RewardData,
		ClaimCode:  params.ClaimCode,
		EarnedAt:   m.now(),
	}
	m.vipRewards[reward.ID] = reward
	m.nextRewardID++

	result := *reward
	return &result, nil
}

func (m *MemStorage) EnterLottery(userID uint, weekNumber, year int) (*models.LotteryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Check-then-insert under the same lock: two concurrent requests for
	// the same user cannot both pass the duplicate check.
	for id := uint(1); id < m.nextEntryID; id++ {
		if entry, ok := m.lotteryEntries[id]; ok &&
			entry.UserID == userID && entry.WeekNumber == weekNumber && entry.Year == year {
			return nil, ErrDuplicateEntry
		}
	}

	entry := &models.LotteryEntry{
		ID:         m.nextEntryID,
		UserID:     userID,
		WeekNumber: weekNumber,
		Year:       year,
		EnteredAt:  m.now(),
	}
	m.lotteryEntries[entry.ID] = entry
	m.nextEntryID++

	result := *entry
	return &result, nil
}

func (m *MemStorage) GetUserLotteryEntries(userID uint, weekNumber, year int) ([]models.LotteryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := []models.LotteryEntry{}
	for id := uint(1); id < m.nextEntryID; id++ {
		if entry, ok := m.lotteryEntries[id]; ok &&
			entry.UserID == userID && entry.WeekNumber == weekNumber && entry.Year == year {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func (m *MemStorage) GetWeeklyLotteryEntries(weekNumber, year int) ([]models.LotteryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := []models.LotteryEntry{}
	for id := uint(1); id < m.nextEntryID; id++ {
		if entry, ok := m.lotteryEntries[id]; ok &&
			entry.WeekNumber == weekNumber && entry.Year == year {
			entries = append(entries, *entry)
		}
	}
	return entries, nil
}

func (m *MemStorage) AddLotteryWinner(params AddWinnerParams) (*models.LotteryWinner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	winner := &models.LotteryWinner{
		ID:               m.nextWinnerID,
		UserID:           params.UserID,
		WeekNumber:       params.WeekNumber,
		Year:             params.Year,
		BlockchainTxHash: params.BlockchainTxHash,
		PrizeDescription: params.PrizeDescription,
		WonAt:            m.now(),
	}
	m.lotteryWinners[winner.ID] = winner
	m.nextWinnerID++

	result := *winner
	return &result, nil
}

func (m *MemStorage) GetLatestWinner() (*WinnerWithUsername, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *models.LotteryWinner
	for id := uint(1); id < m.nextWinnerID; id++ {
		winner, ok := m.lotteryWinners[id]
		if !ok {
			continue
		}
		if latest == nil || winner.WonAt.After(latest.WonAt) {
			latest = winner
		}
	}
	if latest == nil {
		return nil, nil
	}

	username := PlaceholderUsername
	if user, ok := m.users[latest.UserID]; ok {
		username = user.Username
	}
	return &WinnerWithUsername{
		LotteryWinner: *latest,
		Username:      username,
	}, nil
}

// copyUser returns a detached copy so callers can never mutate stored
// state without going through the store.
func copyUser(user *models.User) *models.User {
	result := *user
	result.BadgesEarned = append(models.Badges{}, user.BadgesEarned...)
	return &result
}

// applyUserUpdate merges the non-nil fields of an update onto a user.
// Shared with the database backend's column mapping in database.go.
func applyUserUpdate(user *models.User, updates UserUpdate) {
	if updates.IsSubscribed != nil {
		user.IsSubscribed = *updates.IsSubscribed
	}
	if updates.PreferredMood != nil {
		user.PreferredMood = *updates.PreferredMood
	}
	if updates.Level != nil {
		user.Level = *updates.Level
	}
	if updates.TotalPoints != nil {
		user.TotalPoints = *updates.TotalPoints
	}
	if updates.VideosWatched != nil {
		user.VideosWatched = *updates.VideosWatched
	}
	if updates.GamesPlayed != nil {
		user.GamesPlayed = *updates.GamesPlayed
	}
	if updates.BadgesEarned != nil {
		user.BadgesEarned = append(models.Badges{}, (*updates.BadgesEarned)...)
	}
}
