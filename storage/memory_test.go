package storage

import (
	"errors"
	"testing"
	"time"

	"mariofun/models"
)

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestCreateUserDefaults(t *testing.T) {
	store := NewMemStorage()

	user, err := store.CreateUser(CreateUserParams{
		Username:  "GamerPro",
		YouTubeID: "yt-1",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.ID != 1 {
		t.Errorf("first user id = %d, want 1", user.ID)
	}
	if user.PreferredMood != "mario" {
		t.Errorf("default mood = %q, want %q", user.PreferredMood, "mario")
	}
	if user.Level != 1 {
		t.Errorf("default level = %d, want 1", user.Level)
	}
	if user.TotalPoints != 0 || user.VideosWatched != 0 || user.GamesPlayed != 0 {
		t.Errorf("counters not zeroed: %+v", user)
	}
	if user.BadgesEarned == nil || len(user.BadgesEarned) != 0 {
		t.Errorf("badges = %v, want empty non-nil slice", user.BadgesEarned)
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	second, err := store.CreateUser(CreateUserParams{Username: "Luigi", YouTubeID: "yt-2"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if second.ID != 2 {
		t.Errorf("second user id = %d, want 2", second.ID)
	}
}

func TestCreateUserKeepsExplicitMood(t *testing.T) {
	store := NewMemStorage()

	user, err := store.CreateUser(CreateUserParams{
		Username:      "Peach",
		YouTubeID:     "yt-3",
		IsSubscribed:  true,
		PreferredMood: "peach",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.PreferredMood != "peach" {
		t.Errorf("mood = %q, want %q", user.PreferredMood, "peach")
	}
	if !user.IsSubscribed {
		t.Error("IsSubscribed not preserved")
	}
}

func TestGetUserNotFound(t *testing.T) {
	store := NewMemStorage()

	if _, err := store.GetUser(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser(42) err = %v, want ErrNotFound", err)
	}
}

func TestSecondaryLookupsReturnNilNil(t *testing.T) {
	store := NewMemStorage()

	user, err := store.GetUserByUsername("nobody")
	if err != nil || user != nil {
		t.Errorf("GetUserByUsername = (%v, %v), want (nil, nil)", user, err)
	}

	user, err = store.GetUserByYouTubeID("yt-missing")
	if err != nil || user != nil {
		t.Errorf("GetUserByYouTubeID = (%v, %v), want (nil, nil)", user, err)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	store := NewMemStorage()
	created, _ := store.CreateUser(CreateUserParams{Username: "Toad", YouTubeID: "yt-4"})

	badges := models.Badges{"Explorateur VIP"}
	updated, err := store.UpdateUser(created.ID, UserUpdate{
		IsSubscribed:  boolPtr(true),
		PreferredMood: strPtr("luigi"),
		VideosWatched: intPtr(7),
		BadgesEarned:  &badges,
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	if !updated.IsSubscribed || updated.PreferredMood != "luigi" || updated.VideosWatched != 7 {
		t.Errorf("update not applied: %+v", updated)
	}
	if len(updated.BadgesEarned) != 1 || updated.BadgesEarned[0] != "Explorateur VIP" {
		t.Errorf("badges = %v", updated.BadgesEarned)
	}
	// Untouched fields keep their values.
	if updated.Username != "Toad" || updated.Level != 1 {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	if _, err := store.UpdateUser(99, UserUpdate{Level: intPtr(2)}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateUser(99) err = %v, want ErrNotFound", err)
	}
}

func TestReturnedUserIsDetached(t *testing.T) {
	store := NewMemStorage()
	created, _ := store.CreateUser(CreateUserParams{Username: "Yoshi", YouTubeID: "yt-5"})

	created.Username = "Hacked"
	created.BadgesEarned = append(created.BadgesEarned, "fake")

	reread, _ := store.GetUser(created.ID)
	if reread.Username != "Yoshi" {
		t.Errorf("stored username mutated through returned copy: %q", reread.Username)
	}
	if len(reread.BadgesEarned) != 0 {
		t.Errorf("stored badges mutated through returned copy: %v", reread.BadgesEarned)
	}
}

func TestRecordScoreCascade(t *testing.T) {
	store := NewMemStorage()
	user, _ := store.CreateUser(CreateUserParams{Username: "Mario", YouTubeID: "yt-6"})

	score, err := store.RecordScore(RecordScoreParams{
		UserID:    user.ID,
		GameType:  "quiz",
		Score:     150,
		TimeSpent: intPtr(42),
	})
	if err != nil {
		t.Fatalf("RecordScore: %v", err)
	}
	if score.ID != 1 {
		t.Errorf("first score id = %d, want 1", score.ID)
	}
	if score.TimeSpent == nil || *score.TimeSpent != 42 {
		t.Errorf("TimeSpent = %v, want 42", score.TimeSpent)
	}

	if _, err := store.RecordScore(RecordScoreParams{UserID: user.ID, GameType: "memory", Score: 30}); err != nil {
		t.Fatalf("RecordScore: %v", err)
	}

	reread, _ := store.GetUser(user.ID)
	if reread.GamesPlayed != 2 {
		t.Errorf("GamesPlayed = %d, want 2", reread.GamesPlayed)
	}
	if reread.TotalPoints != 180 {
		t.Errorf("TotalPoints = %d, want 180", reread.TotalPoints)
	}
}

func TestRecordScoreUnknownUserTolerated(t *testing.T) {
	store := NewMemStorage()

	score, err := store.RecordScore(RecordScoreParams{UserID: 999, GameType: "quiz", Score: 50})
	if err != nil {
		t.Fatalf("RecordScore for unknown user: %v", err)
	}
	if score.UserID != 999 {
		t.Errorf("UserID = %d, want 999", score.UserID)
	}

	scores, _ := store.GetGameScores(999)
	if len(scores) != 1 {
		t.Errorf("stored scores = %d, want 1", len(scores))
	}
}

func TestGetGameScoresFiltersByUser(t *testing.T) {
	store := NewMemStorage()
	a, _ := store.CreateUser(CreateUserParams{Username: "A", YouTubeID: "yt-a"})
	b, _ := store.CreateUser(CreateUserParams{Username: "B", YouTubeID: "yt-b"})

	store.RecordScore(RecordScoreParams{UserID: a.ID, GameType: "quiz", Score: 10})
	store.RecordScore(RecordScoreParams{UserID: b.ID, GameType: "quiz", Score: 20})
	store.RecordScore(RecordScoreParams{UserID: a.ID, GameType: "memory", Score: 30})

	scores, err := store.GetGameScores(a.ID)
	if err != nil {
		t.Fatalf("GetGameScores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}
	// Insertion order.
	if scores[0].Score != 10 || scores[1].Score != 30 {
		t.Errorf("scores out of order: %+v", scores)
	}
}

func TestGetTopScoresOrderingAndLimit(t *testing.T) {
	store := NewMemStorage()
	mario, _ := store.CreateUser(CreateUserParams{Username: "Mario", YouTubeID: "yt-m"})
	luigi, _ := store.CreateUser(CreateUserParams{Username: "Luigi", YouTubeID: "yt-l"})

	store.RecordScore(RecordScoreParams{UserID: mario.ID, GameType: "quiz", Score: 100})
	store.RecordScore(RecordScoreParams{UserID: luigi.ID, GameType: "quiz", Score: 300})
	store.RecordScore(RecordScoreParams{UserID: mario.ID, GameType: "quiz", Score: 200})
	store.RecordScore(RecordScoreParams{UserID: luigi.ID, GameType: "memory", Score: 999})

	entries, err := store.GetTopScores("quiz", 2)
	if err != nil {
		t.Fatalf("GetTopScores: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Score != 300 || entries[0].Username != "Luigi" {
		t.Errorf("top entry = %+v", entries[0])
	}
	if entries[1].Score != 200 || entries[1].Username != "Mario" {
		t.Errorf("second entry = %+v", entries[1])
	}
}

func TestGetTopScoresStableTies(t *testing.T) {
	store := NewMemStorage()
	a, _ := store.CreateUser(CreateUserParams{Username: "First", YouTubeID: "yt-f"})
	b, _ := store.CreateUser(CreateUserParams{Username: "Second", YouTubeID: "yt-s"})

	store.RecordScore(RecordScoreParams{UserID: a.ID, GameType: "quiz", Score: 100})
	store.RecordScore(RecordScoreParams{UserID: b.ID, GameType: "quiz", Score: 100})

	entries, _ := store.GetTopScores("quiz", 10)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Equal scores rank by insertion order.
	if entries[0].Username != "First" || entries[1].Username != "Second" {
		t.Errorf("tie order wrong: %q then %q", entries[0].Username, entries[1].Username)
	}
}

func TestGetTopScoresPlaceholderUsername(t *testing.T) {
	store := NewMemStorage()

	store.RecordScore(RecordScoreParams{UserID: 123, GameType: "quiz", Score: 77})

	entries, _ := store.GetTopScores("quiz", 10)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Username != PlaceholderUsername {
		t.Errorf("username = %q, want %q", entries[0].Username, PlaceholderUsername)
	}
}

func TestGetTopScoresDefaultsLimit(t *testing.T) {
	store := NewMemStorage()
	user, _ := store.CreateUser(CreateUserParams{Username: "Grinder", YouTubeID: "yt-g"})

	for i := 0; i < 15; i++ {
		store.RecordScore(RecordScoreParams{UserID: user.ID, GameType: "quiz", Score: i})
	}

	entries, _ := store.GetTopScores("quiz", 0)
	if len(entries) != DefaultLeaderboardLimit {
		t.Errorf("got %d entries, want %d", len(entries), DefaultLeaderboardLimit)
	}
}

func TestGetUserRewardsNewestFirst(t *testing.T) {
	store := NewMemStorage()
	user, _ := store.CreateUser(CreateUserParams{Username: "VIP", YouTubeID: "yt-v"})

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	store.now = func() time.Time { return clock }

	store.AddVipReward(AddRewardParams{
		UserID:     user.ID,
		RewardType: "badge",
		RewardData: models.RewardData{Name: "Explorateur VIP", Icon: "🎖️"},
		ClaimCode:  "aaaa1111",
	})
	clock = base.Add(time.Hour)
	store.AddVipReward(AddRewardParams{
		UserID:     user.ID,
		RewardType: "image",
		RewardData: models.RewardData{Name: "Avatar Collector", URL: "/images/special-avatar.png"},
		ClaimCode:  "bbbb2222",
	})

	rewards, err := store.GetUserRewards(user.ID)
	if err != nil {
		t.Fatalf("GetUserRewards: %v", err)
	}
	if len(rewards) != 2 {
		t.Fatalf("got %d rewards, want 2", len(rewards))
	}
	if rewards[0].RewardType != "image" || rewards[1].RewardType != "badge" {
		t.Errorf("rewards not newest first: %q, %q", rewards[0].RewardType, rewards[1].RewardType)
	}
	if rewards[0].RewardData.Name != "Avatar Collector" {
		t.Errorf("reward data = %+v", rewards[0].RewardData)
	}
}

func TestEnterLotteryRejectsDuplicate(t *testing.T) {
	store := NewMemStorage()
	user, _ := store.CreateUser(CreateUserParams{Username: "Lucky", YouTubeID: "yt-lk", IsSubscribed: true})

	entry, err := store.EnterLottery(user.ID, 3, 2025)
	if err != nil {
		t.Fatalf("EnterLottery: %v", err)
	}
	if entry.WeekNumber != 3 || entry.Year != 2025 {
		t.Errorf("entry = %+v", entry)
	}

	if _, err := store.EnterLottery(user.ID, 3, 2025); !errors.Is(err, ErrDuplicateEntry) {
		t.Errorf("second entry err = %v, want ErrDuplicateEntry", err)
	}

	entries, _ := store.GetUserLotteryEntries(user.ID, 3, 2025)
	if len(entries) != 1 {
		t.Errorf("stored entries = %d, want 1", len(entries))
	}

	// A different week is a fresh ticket.
	if _, err := store.EnterLottery(user.ID, 4, 2025); err != nil {
		t.Errorf("entry for week 4 err = %v", err)
	}
	// Same week number in another year too.
	if _, err := store.EnterLottery(user.ID, 3, 2026); err != nil {
		t.Errorf("entry for 2026 err = %v", err)
	}
}

func TestGetWeeklyLotteryEntries(t *testing.T) {
	store := NewMemStorage()
	a, _ := store.CreateUser(CreateUserParams{Username: "A", YouTubeID: "yt-wa"})
	b, _ := store.CreateUser(CreateUserParams{Username: "B", YouTubeID: "yt-wb"})

	store.EnterLottery(a.ID, 2, 2025)
	store.EnterLottery(b.ID, 2, 2025)
	store.EnterLottery(a.ID, 3, 2025)

	entries, err := store.GetWeeklyLotteryEntries(2, 2025)
	if err != nil {
		t.Fatalf("GetWeeklyLotteryEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func TestGetLatestWinner(t *testing.T) {
	store := NewMemStorage()

	winner, err := store.GetLatestWinner()
	if err != nil || winner != nil {
		t.Errorf("empty store GetLatestWinner = (%v, %v), want (nil, nil)", winner, err)
	}

	user, _ := store.CreateUser(CreateUserParams{Username: "Champion", YouTubeID: "yt-c"})

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	store.now = func() time.Time { return clock }

	store.AddLotteryWinner(AddWinnerParams{
		UserID:           user.ID,
		WeekNumber:       1,
		Year:             2025,
		PrizeDescription: "0.01 ETH",
	})
	clock = base.Add(24 * time.Hour)
	store.AddLotteryWinner(AddWinnerParams{
		UserID:           42, // no such user anymore
		WeekNumber:       2,
		Year:             2025,
		BlockchainTxHash: "0xabc",
		PrizeDescription: "NFT Mario Edition",
	})

	winner, err = store.GetLatestWinner()
	if err != nil {
		t.Fatalf("GetLatestWinner: %v", err)
	}
	if winner == nil {
		t.Fatal("winner is nil")
	}
	if winner.WeekNumber != 2 || winner.PrizeDescription != "NFT Mario Edition" {
		t.Errorf("latest winner = %+v", winner)
	}
	if winner.Username != PlaceholderUsername {
		t.Errorf("username = %q, want %q", winner.Username, PlaceholderUsername)
	}
}

func TestLotteryWeekPseudoWeeks(t *testing.T) {
	cases := []struct {
		day  int
		week int
	}{
		{1, 1}, {7, 1}, {8, 2}, {14, 2}, {15, 3}, {21, 3}, {22, 4}, {28, 4}, {29, 5}, {31, 5},
	}
	for _, tc := range cases {
		date := time.Date(2025, 7, tc.day, 0, 0, 0, 0, time.UTC)
		week, year := models.LotteryWeek(date)
		if week != tc.week {
			t.Errorf("day %d: week = %d, want %d", tc.day, week, tc.week)
		}
		if year != 2025 {
			t.Errorf("day %d: year = %d, want 2025", tc.day, year)
		}
	}
}
