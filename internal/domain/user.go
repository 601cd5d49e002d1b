package domain

import "time"

// User represents a registered farmer account
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	TierKey   string    `json:"tier_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserProgress tracks a user's gamification state
type UserProgress struct {
	UserID                 string             `json:"user_id"`
	Level                  int                `json:"level"`
	Experience             int                `json:"experience"`
	FarmScore              float64            `json:"farm_score"`
	SustainabilityRating   float64            `json:"sustainability_rating"`
	CommunityContributions int                `json:"community_contributions"`
	Skills                 map[string]float64 `json:"skills"`
	Inventory              map[string]int     `json:"inventory"`
	UpdatedAt              time.Time          `json:"updated_at"`
}

// LeaderboardEntry is a ranked leaderboard row
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	Level      int    `json:"level"`
	Experience int    `json:"experience"`
}

// LevelReward describes items granted on reaching a new level
type LevelReward struct {
	Level int            `json:"level"`
	Items map[string]int `json:"items"`
}
