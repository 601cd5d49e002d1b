package gamification

// ExperienceForNextLevel returns the experience threshold to advance past
// the given level. The threshold grows linearly with the level.
func ExperienceForNextLevel(level int) int {
	return level * 1000
}

// LevelFromExperience derives the level reached with the given total
// experience, starting from level 1. Total experience is compared against
// the threshold directly, so each 1000 XP is one level.
func LevelFromExperience(experience int) int {
	level := 1
	for experience >= ExperienceForNextLevel(level) {
		level++
	}
	return level
}

// LevelRewards returns the items granted on reaching the given level.
// Every fifth level carries a bonus bundle on top of the base grant.
func LevelRewards(level int) map[string]int {
	rewards := map[string]int{
		RewardItemCoins:       level * 100,
		RewardItemEnergy:      level * 10,
		RewardItemSkillPoints: level/5 + 1,
	}
	if level%5 == 0 {
		rewards[RewardItemPremiumSeeds] = level / 5
		rewards[RewardItemRareTools] = 1
		rewards[RewardItemKnowledgeScrolls] = 2
	}
	return rewards
}

// Farm score component weights
const (
	farmScoreWeightSustainability = 0.3
	farmScoreWeightSkills         = 0.2
	farmScoreWeightAchievements   = 0.15
	farmScoreWeightQuests         = 0.15
	farmScoreWeightContributions  = 0.2

	farmScoreAchievementScale  = 100.0
	farmScoreQuestScale        = 50.0
	farmScoreContributionScale = 100.0
)

// ComputeFarmScore combines a user's sustainability rating, mean skill
// level, achievements held, completed quests and community contributions
// into a 0..100 score.
func ComputeFarmScore(sustainability float64, skills map[string]float64, achievementsHeld, questsCompleted, contributions int) float64 {
	meanSkill := 0.0
	if len(skills) > 0 {
		for _, v := range skills {
			meanSkill += v
		}
		meanSkill /= float64(len(skills))
	}

	achievementFactor := clamp01(float64(achievementsHeld) / farmScoreAchievementScale)
	questFactor := clamp01(float64(questsCompleted) / farmScoreQuestScale)
	contributionFactor := clamp01(float64(contributions) / farmScoreContributionScale)

	score := clamp01(sustainability/100)*farmScoreWeightSustainability +
		clamp01(meanSkill/100)*farmScoreWeightSkills +
		achievementFactor*farmScoreWeightAchievements +
		questFactor*farmScoreWeightQuests +
		contributionFactor*farmScoreWeightContributions

	return score * 100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
