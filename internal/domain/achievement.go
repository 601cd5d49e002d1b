package domain

import "time"

// Achievement represents an achievement definition
type Achievement struct {
	AchievementKey string    `json:"achievement_key"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	Points         int       `json:"points"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserAchievement records an achievement held by a user
type UserAchievement struct {
	UserID         string    `json:"user_id"`
	AchievementKey string    `json:"achievement_key"`
	AwardedAt      time.Time `json:"awarded_at"`

	// Joined fields
	Name   string `json:"name,omitempty"`
	Points int    `json:"points,omitempty"`
}

// AchievementConfig is the achievements catalog file shape
type AchievementConfig struct {
	Version      string        `json:"version"`
	Achievements []Achievement `json:"achievements"`
}

// Achievement category constants
const (
	AchievementCategoryFarming   = "farming"
	AchievementCategoryCommunity = "community"
	AchievementCategoryLearning  = "learning"
	AchievementCategoryEquipment = "equipment"
)
