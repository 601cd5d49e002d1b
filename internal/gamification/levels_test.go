package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromExperience(t *testing.T) {
	tests := []struct {
		name       string
		experience int
		wantLevel  int
	}{
		{"fresh user", 0, 1},
		{"just below first threshold", 999, 1},
		{"first threshold", 1000, 2},
		{"one level per thousand", 2000, 3},
		{"mid level", 2500, 3},
		{"level 4 boundary", 3000, 4},
		{"level 6 boundary", 5000, 6},
		{"deep progression", 15000, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLevel, LevelFromExperience(tt.experience))
		})
	}
}

func TestLevelRewards(t *testing.T) {
	t.Run("scales with level", func(t *testing.T) {
		rewards := LevelRewards(3)
		assert.Equal(t, 300, rewards[RewardItemCoins])
		assert.Equal(t, 30, rewards[RewardItemEnergy])
		assert.Equal(t, 1, rewards[RewardItemSkillPoints])
		assert.NotContains(t, rewards, RewardItemPremiumSeeds)
		assert.NotContains(t, rewards, RewardItemRareTools)
		assert.NotContains(t, rewards, RewardItemKnowledgeScrolls)
	})

	t.Run("fifth level bonus", func(t *testing.T) {
		rewards := LevelRewards(5)
		assert.Equal(t, 500, rewards[RewardItemCoins])
		assert.Equal(t, 2, rewards[RewardItemSkillPoints])
		assert.Equal(t, 1, rewards[RewardItemPremiumSeeds])
		assert.Equal(t, 1, rewards[RewardItemRareTools])
		assert.Equal(t, 2, rewards[RewardItemKnowledgeScrolls])
	})

	t.Run("bonus seeds scale with level", func(t *testing.T) {
		rewards := LevelRewards(10)
		assert.Equal(t, 1000, rewards[RewardItemCoins])
		assert.Equal(t, 3, rewards[RewardItemSkillPoints])
		assert.Equal(t, 2, rewards[RewardItemPremiumSeeds])
		assert.Equal(t, 1, rewards[RewardItemRareTools])
		assert.Equal(t, 2, rewards[RewardItemKnowledgeScrolls])
	})
}

func TestComputeFarmScore(t *testing.T) {
	t.Run("zero state", func(t *testing.T) {
		score := ComputeFarmScore(0, nil, 0, 0, 0)
		assert.Zero(t, score)
	})

	t.Run("all components maxed", func(t *testing.T) {
		skills := map[string]float64{"planting": 100, "harvesting": 100}
		score := ComputeFarmScore(100, skills, 100, 50, 100)
		assert.InDelta(t, 100.0, score, 0.0001)
	})

	t.Run("sustainability only", func(t *testing.T) {
		score := ComputeFarmScore(100, nil, 0, 0, 0)
		assert.InDelta(t, 30.0, score, 0.0001)
	})

	t.Run("components are capped", func(t *testing.T) {
		// Holding 500 achievements counts the same as 100
		score := ComputeFarmScore(0, nil, 500, 0, 0)
		assert.InDelta(t, 15.0, score, 0.0001)
	})
}
