package gamification

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/farmfit/farmfit/internal/config"
	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/event"
	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/repository"
)

type Service interface {
	// Achievements
	ListAchievements(ctx context.Context) ([]domain.Achievement, error)
	GetUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error)
	AwardAchievement(ctx context.Context, userID, achievementKey string) (*domain.UserAchievement, error)
	SyncAchievements(ctx context.Context) error

	// Progress
	GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error)
	AwardExperience(ctx context.Context, userID string, amount int, reason string) (*domain.UserProgress, error)
	UpdateSustainability(ctx context.Context, userID string, rating float64) error
	GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)

	// Quests
	GetActiveQuests(ctx context.Context) ([]domain.Quest, error)
	GetUserQuestProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error)
	ClaimQuestReward(ctx context.Context, userID string, questID int) (xp, coins int, err error)

	// Progress tracking (called by handlers/services)
	RecordAction(ctx context.Context, userID, actionType, targetKey string, quantity int) error

	// Daily reset (called by worker)
	ResetDailyQuests(ctx context.Context) error
	GenerateDailyQuests(ctx context.Context, questDate time.Time) error

	// Lifecycle
	Shutdown(ctx context.Context) error
}

type service struct {
	repo             repository.Gamification
	publisher        *event.ResilientPublisher
	questPool        []domain.QuestTemplate
	achievements     []domain.Achievement
	leaderboardCache *expirable.LRU[int, []domain.LeaderboardEntry]
	wg               sync.WaitGroup
	mu               sync.RWMutex
}

func NewService(repo repository.Gamification, publisher *event.ResilientPublisher) (Service, error) {
	s := &service{
		repo:      repo,
		publisher: publisher,
		leaderboardCache: expirable.NewLRU[int, []domain.LeaderboardEntry](
			LeaderboardCacheSize, nil, LeaderboardCacheTTL),
	}

	if err := s.loadQuestPool(); err != nil {
		return nil, fmt.Errorf("failed to load quest pool: %w", err)
	}
	if err := s.loadAchievementCatalog(); err != nil {
		return nil, fmt.Errorf("failed to load achievement catalog: %w", err)
	}

	return s, nil
}

// loadQuestPool loads quest templates from config
func (s *service) loadQuestPool() error {
	data, err := os.ReadFile(config.ConfigPathQuestPool)
	if err != nil {
		return err
	}

	var cfg domain.QuestPoolConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.questPool = cfg.QuestPool
	s.mu.Unlock()

	return nil
}

// loadAchievementCatalog loads achievement definitions from config
func (s *service) loadAchievementCatalog() error {
	data, err := os.ReadFile(config.ConfigPathAchievements)
	if err != nil {
		return err
	}

	var cfg domain.AchievementConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}

	s.mu.Lock()
	s.achievements = cfg.Achievements
	s.mu.Unlock()

	return nil
}

// SyncAchievements upserts the catalog into the database. Called at startup
// so awards always reference a known definition.
func (s *service) SyncAchievements(ctx context.Context) error {
	s.mu.RLock()
	catalog := make([]domain.Achievement, len(s.achievements))
	copy(catalog, s.achievements)
	s.mu.RUnlock()

	for _, a := range catalog {
		if err := s.repo.UpsertAchievement(ctx, a); err != nil {
			return fmt.Errorf("failed to sync achievement %s: %w", a.AchievementKey, err)
		}
	}
	return nil
}

// ListAchievements returns all achievement definitions
func (s *service) ListAchievements(ctx context.Context) ([]domain.Achievement, error) {
	return s.repo.ListAchievements(ctx)
}

// GetUserAchievements returns the achievements a user holds
func (s *service) GetUserAchievements(ctx context.Context, userID string) ([]domain.UserAchievement, error) {
	return s.repo.GetUserAchievements(ctx, userID)
}

// AwardAchievement grants an achievement. Awarding one the user already
// holds is a no-op: no event fires and the existing award is returned.
func (s *service) AwardAchievement(ctx context.Context, userID, achievementKey string) (*domain.UserAchievement, error) {
	log := logger.FromContext(ctx)

	if _, err := s.repo.GetAchievement(ctx, achievementKey); err != nil {
		return nil, err
	}

	awarded, err := s.repo.AwardAchievement(ctx, userID, achievementKey)
	if err != nil {
		return nil, err
	}
	if awarded == nil {
		// Already held
		held, err := s.repo.GetUserAchievements(ctx, userID)
		if err != nil {
			return nil, err
		}
		for i := range held {
			if held[i].AchievementKey == achievementKey {
				return &held[i], nil
			}
		}
		return nil, domain.ErrAchievementNotFound
	}

	log.Info(LogMsgAchievementAwarded, "user_id", userID, "achievement_key", achievementKey, "points", awarded.Points)

	if s.publisher != nil {
		evt := event.NewAchievementAwardedEvent(userID, achievementKey, awarded.Name, awarded.Points)
		s.publisher.Publish(ctx, evt) //nolint:errcheck
	}

	return awarded, nil
}

// GetUserProgress returns a user's progression state
func (s *service) GetUserProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	return s.repo.GetUserProgress(ctx, userID)
}

// AwardExperience adds experience, handles level-ups with their rewards and
// recomputes the farm score.
func (s *service) AwardExperience(ctx context.Context, userID string, amount int, reason string) (*domain.UserProgress, error) {
	log := logger.FromContext(ctx)

	if amount <= 0 {
		return nil, fmt.Errorf("%w: experience amount must be positive", domain.ErrInvalidInput)
	}

	progress, err := s.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	oldLevel := progress.Level
	progress.Experience += amount
	progress.Level = LevelFromExperience(progress.Experience)

	if progress.Inventory == nil {
		progress.Inventory = make(map[string]int)
	}

	var rewards map[string]int
	if progress.Level > oldLevel {
		rewards = make(map[string]int)
		for lvl := oldLevel + 1; lvl <= progress.Level; lvl++ {
			for item, qty := range LevelRewards(lvl) {
				rewards[item] += qty
			}
		}
		for item, qty := range rewards {
			progress.Inventory[item] += qty
		}
	}

	if err := s.recomputeFarmScore(ctx, userID, progress); err != nil {
		return nil, err
	}

	if err := s.repo.UpsertUserProgress(ctx, progress); err != nil {
		return nil, err
	}

	if progress.Level > oldLevel {
		log.Info(LogMsgLevelUp, "user_id", userID, "old_level", oldLevel, "new_level", progress.Level, "reason", reason)
		if s.publisher != nil {
			evt := event.NewLevelUpEvent(userID, oldLevel, progress.Level, rewards)
			s.publisher.Publish(ctx, evt) //nolint:errcheck
		}
	}

	return progress, nil
}

// UpdateSustainability sets the sustainability rating and recomputes the farm score
func (s *service) UpdateSustainability(ctx context.Context, userID string, rating float64) error {
	if rating < 0 || rating > 100 {
		return fmt.Errorf("%w: sustainability rating must be within [0,100]", domain.ErrInvalidInput)
	}

	progress, err := s.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return err
	}

	progress.SustainabilityRating = rating
	if err := s.recomputeFarmScore(ctx, userID, progress); err != nil {
		return err
	}

	return s.repo.UpsertUserProgress(ctx, progress)
}

// recomputeFarmScore refreshes the composite score on the progress row
func (s *service) recomputeFarmScore(ctx context.Context, userID string, progress *domain.UserProgress) error {
	held, err := s.repo.GetUserAchievements(ctx, userID)
	if err != nil {
		return err
	}

	questProgress, err := s.repo.GetUserQuestProgress(ctx, userID)
	if err != nil {
		return err
	}
	completed := 0
	for _, qp := range questProgress {
		if qp.CompletedAt != nil {
			completed++
		}
	}

	progress.FarmScore = ComputeFarmScore(
		progress.SustainabilityRating,
		progress.Skills,
		len(held),
		completed,
		progress.CommunityContributions,
	)
	return nil
}

// GetLeaderboard returns the top users by experience. Results are cached
// briefly since the leaderboard is the hottest read path.
func (s *service) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit < LeaderboardMinLimit || limit > LeaderboardMaxLimit {
		return nil, fmt.Errorf("%w: leaderboard limit must be within [%d,%d]",
			domain.ErrInvalidInput, LeaderboardMinLimit, LeaderboardMaxLimit)
	}

	if cached, ok := s.leaderboardCache.Get(limit); ok {
		return cached, nil
	}

	entries, err := s.repo.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	s.leaderboardCache.Add(limit, entries)
	return entries, nil
}

// GetActiveQuests returns all active quests
func (s *service) GetActiveQuests(ctx context.Context) ([]domain.Quest, error) {
	return s.repo.GetActiveQuests(ctx)
}

// GetUserQuestProgress returns user's quest progress
func (s *service) GetUserQuestProgress(ctx context.Context, userID string) ([]domain.QuestProgress, error) {
	return s.repo.GetUserQuestProgress(ctx, userID)
}

// GenerateDailyQuests picks quests for the date, seeded by the date so
// every instance generates the same set.
func (s *service) GenerateDailyQuests(ctx context.Context, questDate time.Time) error {
	log := logger.FromContext(ctx)

	s.mu.RLock()
	poolCopy := make([]domain.QuestTemplate, len(s.questPool))
	copy(poolCopy, s.questPool)
	s.mu.RUnlock()

	if len(poolCopy) < DailyQuestCount {
		return fmt.Errorf("quest pool has fewer than %d templates", DailyQuestCount)
	}

	day := questDate.UTC().Truncate(24 * time.Hour)
	seed := int64(day.Year()*10000 + int(day.Month())*100 + day.Day())
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec

	rng.Shuffle(len(poolCopy), func(i, j int) {
		poolCopy[i], poolCopy[j] = poolCopy[j], poolCopy[i]
	})

	for _, template := range poolCopy[:DailyQuestCount] {
		if _, err := s.repo.CreateQuest(ctx, template, day); err != nil {
			log.Error(LogMsgFailedToCreateQuest, "quest_key", template.QuestKey, "error", err)
			return err
		}
	}

	log.Info(LogMsgGeneratedDailyQuests, "quest_date", day.Format("2006-01-02"), "count", DailyQuestCount)
	return nil
}

// ResetDailyQuests deactivates yesterday's quests, clears unclaimed progress
// and generates today's set.
func (s *service) ResetDailyQuests(ctx context.Context) error {
	log := logger.FromContext(ctx)

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	if _, err := s.repo.DeactivateExpiredQuests(ctx, today); err != nil {
		return fmt.Errorf("failed to deactivate quests: %w", err)
	}

	progressReset, err := s.repo.DeleteInactiveQuestProgress(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset quest progress: %w", err)
	}

	if err := s.GenerateDailyQuests(ctx, today); err != nil {
		return fmt.Errorf("failed to generate quests: %w", err)
	}

	if s.publisher != nil {
		evt := event.NewDailyQuestResetEvent(now, DailyQuestCount, progressReset)
		s.publisher.Publish(ctx, evt) //nolint:errcheck
	}

	log.Info(LogMsgDailyResetCompleted, "quest_date", today.Format("2006-01-02"), "progress_reset", progressReset)
	return nil
}

// RecordAction advances any active quests matching the action, trains the
// related skill and grants base experience for the action itself.
func (s *service) RecordAction(ctx context.Context, userID, actionType, targetKey string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: action quantity must be positive", domain.ErrInvalidInput)
	}
	baseXP, ok := actionExperience[actionType]
	if !ok {
		return fmt.Errorf("%w: unknown action type %q", domain.ErrInvalidInput, actionType)
	}

	// Make sure progress rows exist for every active quest this action touches
	active, err := s.repo.GetActiveQuests(ctx)
	if err != nil {
		return err
	}
	for _, q := range active {
		if q.QuestType != actionType {
			continue
		}
		if !s.matchesTargetFilter(targetKey, q.TargetKey) {
			continue
		}
		if err := s.repo.EnsureQuestProgress(ctx, userID, q.QuestID); err != nil {
			return err
		}
	}

	quests, err := s.repo.GetUserActiveQuestProgress(ctx, userID)
	if err != nil {
		return err
	}

	for _, qp := range quests {
		if qp.CompletedAt != nil {
			continue
		}
		if qp.QuestType != actionType {
			continue
		}
		if !s.matchesTargetFilter(targetKey, qp.TargetKey) {
			continue
		}
		if err := s.incrementAndCheckCompletion(ctx, userID, qp, quantity); err != nil {
			return err
		}
	}

	// Skill training
	progress, err := s.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return err
	}
	if progress.Skills == nil {
		progress.Skills = make(map[string]float64)
	}
	skill := actionSkill[actionType]
	progress.Skills[skill] += SkillGainPerAction * float64(quantity)
	if progress.Skills[skill] > SkillMax {
		progress.Skills[skill] = SkillMax
	}
	if err := s.repo.UpsertUserProgress(ctx, progress); err != nil {
		return err
	}

	_, err = s.AwardExperience(ctx, userID, baseXP*quantity, actionType)
	return err
}

// incrementAndCheckCompletion increments progress and auto-completes if threshold reached
func (s *service) incrementAndCheckCompletion(ctx context.Context, userID string, qp domain.QuestProgress, incrementBy int) error {
	log := logger.FromContext(ctx)

	newProgress := qp.ProgressCurrent + incrementBy
	if newProgress > qp.ProgressRequired {
		newProgress = qp.ProgressRequired
	}

	if err := s.repo.IncrementQuestProgress(ctx, userID, qp.QuestID, incrementBy); err != nil {
		return err
	}

	if newProgress >= qp.ProgressRequired {
		if err := s.repo.CompleteQuest(ctx, userID, qp.QuestID); err != nil {
			return err
		}

		log.Info(LogMsgQuestAutoCompleted, "user_id", userID, "quest_id", qp.QuestID, "quest_key", qp.QuestKey)

		if s.publisher != nil {
			evt := event.NewQuestCompletedEvent(userID, qp.QuestID, qp.QuestKey)
			s.publisher.Publish(ctx, evt) //nolint:errcheck
		}
	}

	return nil
}

// matchesTargetFilter checks if the action target matches the quest filter.
// A nil filter matches everything.
func (s *service) matchesTargetFilter(targetKey string, filter *string) bool {
	if filter == nil {
		return true
	}
	return strings.EqualFold(targetKey, *filter)
}

// ClaimQuestReward claims a completed quest reward. Experience is granted
// asynchronously so the claim responds fast.
func (s *service) ClaimQuestReward(ctx context.Context, userID string, questID int) (xp, coins int, err error) {
	log := logger.FromContext(ctx)

	unclaimed, err := s.repo.GetUnclaimedCompletedQuests(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	var target *domain.QuestProgress
	for i := range unclaimed {
		if unclaimed[i].QuestID == questID {
			target = &unclaimed[i]
			break
		}
	}
	if target == nil {
		return 0, 0, domain.ErrQuestNotClaimable
	}

	if err := s.repo.ClaimQuestReward(ctx, userID, questID); err != nil {
		return 0, 0, err
	}

	// Coins land in the inventory synchronously, XP follows in the background
	progress, err := s.repo.GetUserProgress(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	if progress.Inventory == nil {
		progress.Inventory = make(map[string]int)
	}
	progress.Inventory[RewardItemCoins] += target.RewardCoins
	if err := s.repo.UpsertUserProgress(ctx, progress); err != nil {
		return 0, 0, err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		bgCtx := context.Background()
		if _, err := s.AwardExperience(bgCtx, userID, target.RewardXP, "quest_reward"); err != nil {
			log.Error(LogMsgFailedToAwardXP, "user_id", userID, "quest_id", questID, "error", err)
		}
	}()

	if s.publisher != nil {
		evt := event.NewQuestClaimedEvent(userID, questID, target.QuestKey, target.RewardXP, target.RewardCoins)
		s.publisher.Publish(ctx, evt) //nolint:errcheck
	}

	log.Info(LogMsgQuestRewardClaimed, "user_id", userID, "quest_id", questID,
		"xp", target.RewardXP, "coins", target.RewardCoins)

	return target.RewardXP, target.RewardCoins, nil
}

func (s *service) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
