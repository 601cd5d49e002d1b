package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmfit/farmfit/internal/domain"
)

// GamificationRepository implements the gamification repository for PostgreSQL
type GamificationRepository struct {
	db *pgxpool.Pool
}

// NewGamificationRepository creates a new GamificationRepository
func NewGamificationRepository(db *pgxpool.Pool) *GamificationRepository {
	return &GamificationRepository{db: db}
}

// UpsertAchievement inserts or updates an achievement definition
func (r *GamificationRepository) UpsertAchievement(ctx context.Context, a domain.Achievement) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO achievements (achievement_key, name, description, category, points)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (achievement_key) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    category = EXCLUDED.category,
		    points = EXCLUDED.points
	`, a.AchievementKey, a.Name, a.Description, a.Category, a.Points)
	if err != nil {
		return fmt.Errorf("failed to upsert achievement: %w", err)
	}
	return nil
}

// GetAchievement retrieves an achievement definition by key
func (r *GamificationRepository) GetAchievement(ctx context.Context, key string) (*domain.Achievement, error) {
	var a domain.Achievement
	err := r.db.QueryRow(ctx, `
		SELECT achievement_key, name, description, category, points, created_at
		FROM achievements
		WHERE achievement_key = $1
	`, key).Scan(&a.AchievementKey, &a.Name, &a.Description, &a.Category, &a.Points, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAchievementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get achievement: %w", err)
	}
	return &a, nil
}

// ListAchievements returns all achievement definitions
func (r *GamificationRepository) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT achievement_key, name, description, category, points, created_at
		FROM achievements
		ORDER BY category, achievement_key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	var achievements []domain.Achievement
	for rows.Next() {
		var a domain.Achievement
		if err := rows.Scan(&a.AchievementKey, &a.Name, &a.Description, &a.Category, &a.Points, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// GetUserAchievements returns the achievements a user holds, newest first
func (r *GamificationRepository) GetUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT ua.user_id, ua.achievement_key, ua.awarded_at, a.name, a.points
		FROM user_achievements ua
		JOIN achievements a ON a.achievement_key = ua.achievement_key
		WHERE ua.user_id = $1
		ORDER BY ua.awarded_at DESC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user achievements: %w", err)
	}
	defer rows.Close()

	var awards []domain.UserAchievement
	for rows.Next() {
		var ua domain.UserAchievement
		if err := rows.Scan(&ua.UserID, &ua.AchievementKey, &ua.AwardedAt, &ua.Name, &ua.Points); err != nil {
			return nil, fmt.Errorf("failed to scan user achievement: %w", err)
		}
		awards = append(awards, ua)
	}
	return awards, rows.Err()
}

// HasAchievement reports whether the user already holds the achievement
func (r *GamificationRepository) HasAchievement(ctx context.Context, userID, key string) (bool, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return false, err
	}

	var exists bool
	err = r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_achievements WHERE user_id = $1 AND achievement_key = $2
		)
	`, id, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check achievement: %w", err)
	}
	return exists, nil
}

// AwardAchievement grants the achievement to the user. The conflict clause
// makes repeat awards a no-op so callers can award without a prior check.
func (r *GamificationRepository) AwardAchievement(ctx context.Context, userID, key string) (*domain.UserAchievement, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	var ua domain.UserAchievement
	err = r.db.QueryRow(ctx, `
		WITH award AS (
			INSERT INTO user_achievements (user_id, achievement_key)
			VALUES ($1, $2)
			ON CONFLICT (user_id, achievement_key) DO NOTHING
			RETURNING user_id, achievement_key, awarded_at
		)
		SELECT w.user_id, w.achievement_key, w.awarded_at, a.name, a.points
		FROM award w
		JOIN achievements a ON a.achievement_key = w.achievement_key
	`, id, key).Scan(&ua.UserID, &ua.AchievementKey, &ua.AwardedAt, &ua.Name, &ua.Points)
	if errors.Is(err, pgx.ErrNoRows) {
		// Already held, nothing inserted
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to award achievement: %w", err)
	}
	return &ua, nil
}

// GetUserProgress retrieves a user's progression row
func (r *GamificationRepository) GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	var (
		p            domain.UserProgress
		skillsRaw    []byte
		inventoryRaw []byte
	)
	err = r.db.QueryRow(ctx, `
		SELECT user_id, level, experience, farm_score, sustainability_rating,
		       community_contributions, skills, inventory, updated_at
		FROM user_progress
		WHERE user_id = $1
	`, id).Scan(
		&p.UserID,
		&p.Level,
		&p.Experience,
		&p.FarmScore,
		&p.SustainabilityRating,
		&p.CommunityContributions,
		&skillsRaw,
		&inventoryRaw,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user progress: %w", err)
	}

	if err := json.Unmarshal(skillsRaw, &p.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if err := json.Unmarshal(inventoryRaw, &p.Inventory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inventory: %w", err)
	}
	return &p, nil
}

// UpsertUserProgress writes the full progression row
func (r *GamificationRepository) UpsertUserProgress(ctx context.Context, p *domain.UserProgress) error {
	id, err := parseUserID(p.UserID)
	if err != nil {
		return err
	}

	skillsRaw, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	inventoryRaw, err := json.Marshal(p.Inventory)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO user_progress (user_id, level, experience, farm_score, sustainability_rating,
		                           community_contributions, skills, inventory, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET level = EXCLUDED.level,
		    experience = EXCLUDED.experience,
		    farm_score = EXCLUDED.farm_score,
		    sustainability_rating = EXCLUDED.sustainability_rating,
		    community_contributions = EXCLUDED.community_contributions,
		    skills = EXCLUDED.skills,
		    inventory = EXCLUDED.inventory,
		    updated_at = NOW()
	`, id, p.Level, p.Experience, p.FarmScore, p.SustainabilityRating,
		p.CommunityContributions, skillsRaw, inventoryRaw)
	if err != nil {
		return fmt.Errorf("failed to upsert user progress: %w", err)
	}
	return nil
}

// GetLeaderboard returns the top users by experience
func (r *GamificationRepository) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.user_id, u.username, p.level, p.experience
		FROM user_progress p
		JOIN users u ON u.user_id = p.user_id
		ORDER BY p.experience DESC, u.username ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Level, &e.Experience); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CreateQuest instantiates a quest from a template for the given date.
// The unique constraint on (quest_key, quest_date) keeps reset runs idempotent.
func (r *GamificationRepository) CreateQuest(ctx context.Context, template domain.QuestTemplate, questDate time.Time) (*domain.Quest, error) {
	var q domain.Quest
	err := r.db.QueryRow(ctx, `
		INSERT INTO quests (quest_key, quest_type, description, target_key,
		                    base_requirement, base_reward_xp, base_reward_coins, quest_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (quest_key, quest_date) DO UPDATE SET active = TRUE
		RETURNING quest_id, quest_key, quest_type, description, target_key,
		          base_requirement, base_reward_xp, base_reward_coins, active, quest_date, created_at
	`, template.QuestKey, template.QuestType, template.Description, template.TargetKey,
		template.BaseRequirement, template.BaseRewardXP, template.BaseRewardCoins, questDate).Scan(
		&q.QuestID,
		&q.QuestKey,
		&q.QuestType,
		&q.Description,
		&q.TargetKey,
		&q.BaseRequirement,
		&q.BaseRewardXP,
		&q.BaseRewardCoins,
		&q.Active,
		&q.QuestDate,
		&q.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create quest: %w", err)
	}
	return &q, nil
}

// GetActiveQuests returns all currently active quests
func (r *GamificationRepository) GetActiveQuests(ctx context.Context) ([]domain.Quest, error) {
	rows, err := r.db.Query(ctx, `
		SELECT quest_id, quest_key, quest_type, description, target_key,
		       base_requirement, base_reward_xp, base_reward_coins, active, quest_date, created_at
		FROM quests
		WHERE active
		ORDER BY quest_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get active quests: %w", err)
	}
	defer rows.Close()

	var quests []domain.Quest
	for rows.Next() {
		var q domain.Quest
		if err := rows.Scan(
			&q.QuestID, &q.QuestKey, &q.QuestType, &q.Description, &q.TargetKey,
			&q.BaseRequirement, &q.BaseRewardXP, &q.BaseRewardCoins, &q.Active, &q.QuestDate, &q.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quest: %w", err)
		}
		quests = append(quests, q)
	}
	return quests, rows.Err()
}

// DeactivateExpiredQuests marks quests dated before the cutoff as inactive
func (r *GamificationRepository) DeactivateExpiredQuests(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE quests SET active = FALSE WHERE active AND quest_date < $1
	`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate quests: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteInactiveQuestProgress removes unclaimed progress rows attached to
// inactive quests. Claimed rows stay for history.
func (r *GamificationRepository) DeleteInactiveQuestProgress(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM quest_progress qp
		USING quests q
		WHERE q.quest_id = qp.quest_id
		  AND NOT q.active
		  AND qp.claimed_at IS NULL
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete inactive quest progress: %w", err)
	}
	return tag.RowsAffected(), nil
}

const questProgressSelect = `
	SELECT qp.user_id, qp.quest_id, qp.progress_current, qp.progress_required,
	       qp.reward_xp, qp.reward_coins, qp.started_at, qp.completed_at, qp.claimed_at,
	       q.quest_key, q.quest_type, q.description, q.target_key
	FROM quest_progress qp
	JOIN quests q ON q.quest_id = qp.quest_id
`

func scanQuestProgress(rows pgx.Rows) ([]domain.QuestProgress, error) {
	var progress []domain.QuestProgress
	for rows.Next() {
		var qp domain.QuestProgress
		if err := rows.Scan(
			&qp.UserID, &qp.QuestID, &qp.ProgressCurrent, &qp.ProgressRequired,
			&qp.RewardXP, &qp.RewardCoins, &qp.StartedAt, &qp.CompletedAt, &qp.ClaimedAt,
			&qp.QuestKey, &qp.QuestType, &qp.Description, &qp.TargetKey,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quest progress: %w", err)
		}
		progress = append(progress, qp)
	}
	return progress, rows.Err()
}

// GetUserQuestProgress returns all of a user's quest progress rows
func (r *GamificationRepository) GetUserQuestProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, questProgressSelect+`
		WHERE qp.user_id = $1
		ORDER BY qp.quest_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get quest progress: %w", err)
	}
	defer rows.Close()
	return scanQuestProgress(rows)
}

// GetUserActiveQuestProgress returns the user's progress on active quests only
func (r *GamificationRepository) GetUserActiveQuestProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, questProgressSelect+`
		WHERE qp.user_id = $1 AND q.active
		ORDER BY qp.quest_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get active quest progress: %w", err)
	}
	defer rows.Close()
	return scanQuestProgress(rows)
}

// EnsureQuestProgress creates a progress row for the quest if none exists,
// copying the quest's requirement and rewards at creation time.
func (r *GamificationRepository) EnsureQuestProgress(ctx context.Context, userID string, questID int) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO quest_progress (user_id, quest_id, progress_required, reward_xp, reward_coins)
		SELECT $1, q.quest_id, q.base_requirement, q.base_reward_xp, q.base_reward_coins
		FROM quests q
		WHERE q.quest_id = $2 AND q.active
		ON CONFLICT (user_id, quest_id) DO NOTHING
	`, id, questID)
	if err != nil {
		return fmt.Errorf("failed to ensure quest progress: %w", err)
	}
	return nil
}

// IncrementQuestProgress advances a user's progress, capped at the requirement
func (r *GamificationRepository) IncrementQuestProgress(ctx context.Context, userID string, questID, delta int) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE quest_progress
		SET progress_current = LEAST(progress_current + $3, progress_required)
		WHERE user_id = $1 AND quest_id = $2 AND completed_at IS NULL
	`, id, questID, delta)
	if err != nil {
		return fmt.Errorf("failed to increment quest progress: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestNotFound
	}
	return nil
}

// CompleteQuest marks the quest completed once progress meets the requirement
func (r *GamificationRepository) CompleteQuest(ctx context.Context, userID string, questID int) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE quest_progress
		SET completed_at = NOW()
		WHERE user_id = $1 AND quest_id = $2
		  AND completed_at IS NULL
		  AND progress_current >= progress_required
	`, id, questID)
	if err != nil {
		return fmt.Errorf("failed to complete quest: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuestNotClaimable
	}
	return nil
}

// ClaimQuestReward marks a completed quest's reward as claimed
func (r *GamificationRepository) ClaimQuestReward(ctx context.Context, userID string, questID int) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE quest_progress
		SET claimed_at = NOW()
		WHERE user_id = $1 AND quest_id = $2
		  AND completed_at IS NOT NULL
		  AND claimed_at IS NULL
	`, id, questID)
	if err != nil {
		return fmt.Errorf("failed to claim quest reward: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish double-claim from not-completed for the caller
		var claimed *time.Time
		err := r.db.QueryRow(ctx, `
			SELECT claimed_at FROM quest_progress WHERE user_id = $1 AND quest_id = $2
		`, id, questID).Scan(&claimed)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrQuestNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to inspect quest progress: %w", err)
		}
		if claimed != nil {
			return domain.ErrAlreadyClaimed
		}
		return domain.ErrQuestNotClaimable
	}
	return nil
}

// GetUnclaimedCompletedQuests returns completed quests whose reward is unclaimed
func (r *GamificationRepository) GetUnclaimedCompletedQuests(ctx context.Context, userID string) ([]domain.QuestProgress, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, questProgressSelect+`
		WHERE qp.user_id = $1
		  AND qp.completed_at IS NOT NULL
		  AND qp.claimed_at IS NULL
		ORDER BY qp.completed_at
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get unclaimed quests: %w", err)
	}
	defer rows.Close()
	return scanQuestProgress(rows)
}
