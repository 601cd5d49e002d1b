package gamification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/event"
)

// fakeGamificationRepo is an in-memory repository for service tests
type fakeGamificationRepo struct {
	mu               sync.Mutex
	achievements     map[string]domain.Achievement
	userAchievements map[string]map[string]domain.UserAchievement
	progress         map[string]*domain.UserProgress
	quests           map[int]domain.Quest
	questProgress    map[string]map[int]*domain.QuestProgress
	nextQuestID      int
	leaderboard      []domain.LeaderboardEntry
	leaderboardCalls int
	createdKeys      []string
}

func newFakeGamificationRepo() *fakeGamificationRepo {
	return &fakeGamificationRepo{
		achievements:     make(map[string]domain.Achievement),
		userAchievements: make(map[string]map[string]domain.UserAchievement),
		progress:         make(map[string]*domain.UserProgress),
		quests:           make(map[int]domain.Quest),
		questProgress:    make(map[string]map[int]*domain.QuestProgress),
		nextQuestID:      1,
	}
}

func (f *fakeGamificationRepo) UpsertAchievement(_ context.Context, a domain.Achievement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.achievements[a.AchievementKey] = a
	return nil
}

func (f *fakeGamificationRepo) GetAchievement(_ context.Context, key string) (*domain.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.achievements[key]
	if !ok {
		return nil, domain.ErrAchievementNotFound
	}
	return &a, nil
}

func (f *fakeGamificationRepo) ListAchievements(_ context.Context) ([]domain.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Achievement, 0, len(f.achievements))
	for _, a := range f.achievements {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeGamificationRepo) GetUserAchievements(_ context.Context, userID string) ([]domain.UserAchievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.UserAchievement
	for _, ua := range f.userAchievements[userID] {
		out = append(out, ua)
	}
	return out, nil
}

func (f *fakeGamificationRepo) HasAchievement(_ context.Context, userID, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.userAchievements[userID][key]
	return ok, nil
}

func (f *fakeGamificationRepo) AwardAchievement(_ context.Context, userID, key string) (*domain.UserAchievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.userAchievements[userID][key]; ok {
		return nil, nil
	}
	if f.userAchievements[userID] == nil {
		f.userAchievements[userID] = make(map[string]domain.UserAchievement)
	}
	a := f.achievements[key]
	ua := domain.UserAchievement{
		UserID:         userID,
		AchievementKey: key,
		AwardedAt:      time.Now(),
		Name:           a.Name,
		Points:         a.Points,
	}
	f.userAchievements[userID][key] = ua
	return &ua, nil
}

func (f *fakeGamificationRepo) GetUserProgress(_ context.Context, userID string) (*domain.UserProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.progress[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeGamificationRepo) UpsertUserProgress(_ context.Context, p *domain.UserProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.progress[p.UserID] = &cp
	return nil
}

func (f *fakeGamificationRepo) GetLeaderboard(_ context.Context, _ int) ([]domain.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leaderboardCalls++
	return f.leaderboard, nil
}

func (f *fakeGamificationRepo) CreateQuest(_ context.Context, template domain.QuestTemplate, questDate time.Time) (*domain.Quest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	q := domain.Quest{
		QuestID:          f.nextQuestID,
		QuestKey:         template.QuestKey,
		QuestType:        template.QuestType,
		Description:      template.Description,
		TargetKey:        template.TargetKey,
		BaseRequirement:  template.BaseRequirement,
		BaseRewardXP:     template.BaseRewardXP,
		BaseRewardCoins:  template.BaseRewardCoins,
		Active:           true,
		QuestDate:        questDate,
	}
	f.nextQuestID++
	f.quests[q.QuestID] = q
	f.createdKeys = append(f.createdKeys, q.QuestKey)
	return &q, nil
}

func (f *fakeGamificationRepo) GetActiveQuests(_ context.Context) ([]domain.Quest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Quest
	for _, q := range f.quests {
		if q.Active {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeGamificationRepo) DeactivateExpiredQuests(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, q := range f.quests {
		if q.Active && q.QuestDate.Before(before) {
			q.Active = false
			f.quests[id] = q
			n++
		}
	}
	return n, nil
}

func (f *fakeGamificationRepo) DeleteInactiveQuestProgress(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for userID, byQuest := range f.questProgress {
		for id, qp := range byQuest {
			if q, ok := f.quests[id]; ok && !q.Active && qp.ClaimedAt == nil {
				delete(f.questProgress[userID], id)
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeGamificationRepo) GetUserQuestProgress(_ context.Context, userID string) ([]domain.QuestProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.QuestProgress
	for _, qp := range f.questProgress[userID] {
		out = append(out, *qp)
	}
	return out, nil
}

func (f *fakeGamificationRepo) GetUserActiveQuestProgress(_ context.Context, userID string) ([]domain.QuestProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.QuestProgress
	for id, qp := range f.questProgress[userID] {
		if q, ok := f.quests[id]; ok && q.Active {
			cp := *qp
			cp.QuestKey = q.QuestKey
			cp.QuestType = q.QuestType
			cp.TargetKey = q.TargetKey
			out = append(out, cp)
		}
	}
	return out, nil
}

func (f *fakeGamificationRepo) EnsureQuestProgress(_ context.Context, userID string, questID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.questProgress[userID] == nil {
		f.questProgress[userID] = make(map[int]*domain.QuestProgress)
	}
	if _, ok := f.questProgress[userID][questID]; ok {
		return nil
	}
	q := f.quests[questID]
	f.questProgress[userID][questID] = &domain.QuestProgress{
		UserID:           userID,
		QuestID:          questID,
		ProgressRequired: q.BaseRequirement,
		RewardXP:         q.BaseRewardXP,
		RewardCoins:      q.BaseRewardCoins,
		StartedAt:        time.Now(),
	}
	return nil
}

func (f *fakeGamificationRepo) IncrementQuestProgress(_ context.Context, userID string, questID, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	qp, ok := f.questProgress[userID][questID]
	if !ok {
		return domain.ErrQuestNotFound
	}
	qp.ProgressCurrent += delta
	if qp.ProgressCurrent > qp.ProgressRequired {
		qp.ProgressCurrent = qp.ProgressRequired
	}
	return nil
}

func (f *fakeGamificationRepo) CompleteQuest(_ context.Context, userID string, questID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	qp, ok := f.questProgress[userID][questID]
	if !ok || qp.ProgressCurrent < qp.ProgressRequired {
		return domain.ErrQuestNotClaimable
	}
	now := time.Now()
	qp.CompletedAt = &now
	return nil
}

func (f *fakeGamificationRepo) ClaimQuestReward(_ context.Context, userID string, questID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	qp, ok := f.questProgress[userID][questID]
	if !ok || qp.CompletedAt == nil {
		return domain.ErrQuestNotClaimable
	}
	if qp.ClaimedAt != nil {
		return domain.ErrAlreadyClaimed
	}
	now := time.Now()
	qp.ClaimedAt = &now
	return nil
}

func (f *fakeGamificationRepo) GetUnclaimedCompletedQuests(_ context.Context, userID string) ([]domain.QuestProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.QuestProgress
	for _, qp := range f.questProgress[userID] {
		if qp.CompletedAt != nil && qp.ClaimedAt == nil {
			out = append(out, *qp)
		}
	}
	return out, nil
}

func newTestService(repo *fakeGamificationRepo, pool []domain.QuestTemplate, publisher *event.ResilientPublisher) *service {
	return &service{
		repo:      repo,
		publisher: publisher,
		questPool: pool,
		leaderboardCache: expirable.NewLRU[int, []domain.LeaderboardEntry](
			LeaderboardCacheSize, nil, LeaderboardCacheTTL),
	}
}

func seedUser(repo *fakeGamificationRepo, userID string) {
	repo.progress[userID] = &domain.UserProgress{
		UserID: userID,
		Level:  1,
		Skills: make(map[string]float64),
	}
}

func TestSyncAchievements(t *testing.T) {
	ctx := context.Background()
	repo := newFakeGamificationRepo()
	seedUser(repo, "u1")

	svc := newTestService(repo, nil, nil)
	svc.achievements = []domain.Achievement{
		{AchievementKey: "first_planting", Name: "First Planting", Points: 10},
		{AchievementKey: "green_thumb", Name: "Green Thumb", Points: 25},
	}

	// Nothing can be awarded before the catalog reaches the database
	_, err := svc.AwardAchievement(ctx, "u1", "green_thumb")
	require.ErrorIs(t, err, domain.ErrAchievementNotFound)

	require.NoError(t, svc.SyncAchievements(ctx))
	assert.Len(t, repo.achievements, 2)

	awarded, err := svc.AwardAchievement(ctx, "u1", "green_thumb")
	require.NoError(t, err)
	require.NotNil(t, awarded)
	assert.Equal(t, 25, awarded.Points)

	// Syncing again is idempotent
	require.NoError(t, svc.SyncAchievements(ctx))
	assert.Len(t, repo.achievements, 2)
}

func TestAwardAchievement(t *testing.T) {
	ctx := context.Background()
	repo := newFakeGamificationRepo()
	seedUser(repo, "u1")
	repo.achievements["first_planting"] = domain.Achievement{
		AchievementKey: "first_planting", Name: "First Planting", Points: 10,
	}

	bus := event.NewMemoryBus()
	var published int
	bus.Subscribe(event.Type(domain.EventTypeAchievementAwarded), func(_ context.Context, _ event.Event) error {
		published++
		return nil
	})
	publisher := event.NewResilientPublisher(bus, event.DefaultResilientConfig(), nil)

	svc := newTestService(repo, nil, publisher)

	awarded, err := svc.AwardAchievement(ctx, "u1", "first_planting")
	require.NoError(t, err)
	require.NotNil(t, awarded)
	assert.Equal(t, 10, awarded.Points)
	assert.Equal(t, 1, published)

	// Repeat award is a no-op: same award back, no new event
	again, err := svc.AwardAchievement(ctx, "u1", "first_planting")
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, "first_planting", again.AchievementKey)
	assert.Equal(t, 1, published)

	_, err = svc.AwardAchievement(ctx, "u1", "does_not_exist")
	assert.ErrorIs(t, err, domain.ErrAchievementNotFound)
}

func TestAwardExperience_LevelUp(t *testing.T) {
	ctx := context.Background()
	repo := newFakeGamificationRepo()
	seedUser(repo, "u1")

	svc := newTestService(repo, nil, nil)

	progress, err := svc.AwardExperience(ctx, "u1", 1000, "test")
	require.NoError(t, err)
	assert.Equal(t, 2, progress.Level)
	assert.Equal(t, 200, progress.Inventory[RewardItemCoins])
	assert.Equal(t, 20, progress.Inventory[RewardItemEnergy])

	_, err = svc.AwardExperience(ctx, "u1", 0, "test")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordAction_QuestCompletion(t *testing.T) {
	ctx := context.Background()
	repo := newFakeGamificationRepo()
	seedUser(repo, "u1")

	quest, err := repo.CreateQuest(ctx, domain.QuestTemplate{
		QuestKey:        "plant_three",
		QuestType:       domain.QuestTypePlantCrop,
		BaseRequirement: 3,
		BaseRewardXP:    50,
		BaseRewardCoins: 20,
	}, time.Now().UTC())
	require.NoError(t, err)

	bus := event.NewMemoryBus()
	var completions int
	bus.Subscribe(event.Type(domain.EventTypeQuestCompleted), func(_ context.Context, _ event.Event) error {
		completions++
		return nil
	})
	publisher := event.NewResilientPublisher(bus, event.DefaultResilientConfig(), nil)
	svc := newTestService(repo, nil, publisher)

	require.NoError(t, svc.RecordAction(ctx, "u1", ActionPlantCrop, "hemp", 2))
	assert.Zero(t, completions)

	require.NoError(t, svc.RecordAction(ctx, "u1", ActionPlantCrop, "hemp", 1))
	assert.Equal(t, 1, completions)

	qp := repo.questProgress["u1"][quest.QuestID]
	require.NotNil(t, qp.CompletedAt)

	// Skill and experience followed the actions
	progress, err := svc.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, progress.Skills["planting"], 0.0001)
	assert.Equal(t, 75, progress.Experience)

	assert.ErrorIs(t, svc.RecordAction(ctx, "u1", "unknown_action", "", 1), domain.ErrInvalidInput)
}

func TestClaimQuestReward(t *testing.T) {
	ctx := context.Background()
	repo := newFakeGamificationRepo()
	seedUser(repo, "u1")

	quest, err := repo.CreateQuest(ctx, domain.QuestTemplate{
		QuestKey:        "harvest_two",
		QuestType:       domain.QuestTypeHarvestCrop,
		BaseRequirement: 2,
		BaseRewardXP:    80,
		BaseRewardCoins: 40,
	}, time.Now().UTC())
	require.NoError(t, err)

	bus := event.NewMemoryBus()
	var claims int
	bus.Subscribe(event.Type(domain.EventTypeQuestClaimed), func(_ context.Context, _ event.Event) error {
		claims++
		return nil
	})
	publisher := event.NewResilientPublisher(bus, event.DefaultResilientConfig(), nil)

	svc := newTestService(repo, nil, publisher)
	require.NoError(t, svc.RecordAction(ctx, "u1", ActionHarvestCrop, "", 2))

	xp, coins, err := svc.ClaimQuestReward(ctx, "u1", quest.QuestID)
	require.NoError(t, err)
	assert.Equal(t, 80, xp)
	assert.Equal(t, 40, coins)
	assert.Equal(t, 1, claims)

	// Drain the background XP grant before asserting on progress
	require.NoError(t, svc.Shutdown(ctx))
	progress, err := svc.GetUserProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 40, progress.Inventory[RewardItemCoins])
	assert.Equal(t, 80+80, progress.Experience) // action XP + quest reward

	_, _, err = svc.ClaimQuestReward(ctx, "u1", quest.QuestID)
	assert.ErrorIs(t, err, domain.ErrQuestNotClaimable)
}

func TestGetLeaderboard_Cached(t *testing.T) {
	ctx := context.Background()
	repo := newFakeGamificationRepo()
	repo.leaderboard = []domain.LeaderboardEntry{
		{Rank: 1, UserID: "u1", Username: "alice", Level: 5, Experience: 12000},
	}

	svc := newTestService(repo, nil, nil)

	first, err := svc.GetLeaderboard(ctx, 10)
	require.NoError(t, err)
	second, err := svc.GetLeaderboard(ctx, 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.leaderboardCalls)

	_, err = svc.GetLeaderboard(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.GetLeaderboard(ctx, LeaderboardMaxLimit+1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateDailyQuests_Deterministic(t *testing.T) {
	ctx := context.Background()
	pool := []domain.QuestTemplate{
		{QuestKey: "q1", QuestType: domain.QuestTypePlantCrop, BaseRequirement: 1},
		{QuestKey: "q2", QuestType: domain.QuestTypeHarvestCrop, BaseRequirement: 1},
		{QuestKey: "q3", QuestType: domain.QuestTypeLogReading, BaseRequirement: 1},
		{QuestKey: "q4", QuestType: domain.QuestTypeCompleteLesson, BaseRequirement: 1},
		{QuestKey: "q5", QuestType: domain.QuestTypeMaintainEquipment, BaseRequirement: 1},
	}
	day := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)

	repoA := newFakeGamificationRepo()
	require.NoError(t, newTestService(repoA, pool, nil).GenerateDailyQuests(ctx, day))

	repoB := newFakeGamificationRepo()
	require.NoError(t, newTestService(repoB, pool, nil).GenerateDailyQuests(ctx, day))

	assert.Len(t, repoA.createdKeys, DailyQuestCount)
	assert.Equal(t, repoA.createdKeys, repoB.createdKeys)

	// A short pool cannot satisfy the daily count
	svc := newTestService(newFakeGamificationRepo(), pool[:2], nil)
	assert.Error(t, svc.GenerateDailyQuests(ctx, day))
}
