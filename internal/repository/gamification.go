package repository

import (
	"context"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
)

// Gamification defines persistence operations for achievements, quests and progress
type Gamification interface {
	// Achievements
	UpsertAchievement(ctx context.Context, a domain.Achievement) error
	GetAchievement(ctx context.Context, key string) (*domain.Achievement, error)
	ListAchievements(ctx context.Context) ([]domain.Achievement, error)
	GetUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error)
	HasAchievement(ctx context.Context, userID, key string) (bool, error)
	AwardAchievement(ctx context.Context, userID, key string) (*domain.UserAchievement, error)

	// Progress
	GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error)
	UpsertUserProgress(ctx context.Context, p *domain.UserProgress) error
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// Quests
	CreateQuest(ctx context.Context, template domain.QuestTemplate, questDate time.Time) (*domain.Quest, error)
	GetActiveQuests(ctx context.Context) ([]domain.Quest, error)
	DeactivateExpiredQuests(ctx context.Context, before time.Time) (int64, error)
	DeleteInactiveQuestProgress(ctx context.Context) (int64, error)
	GetUserQuestProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error)
	GetUserActiveQuestProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error)
	EnsureQuestProgress(ctx context.Context, userID string, questID int) error
	IncrementQuestProgress(ctx context.Context, userID string, questID, delta int) error
	CompleteQuest(ctx context.Context, userID string, questID int) error
	ClaimQuestReward(ctx context.Context, userID string, questID int) error
	GetUnclaimedCompletedQuests(ctx context.Context, userID string) ([]domain.QuestProgress, error)
}
