package gamification

import (
	"time"

	"github.com/farmfit/farmfit/internal/domain"
)

// Action type constants mirror the quest types they advance
const (
	ActionPlantCrop         = domain.QuestTypePlantCrop
	ActionHarvestCrop       = domain.QuestTypeHarvestCrop
	ActionLogReading        = domain.QuestTypeLogReading
	ActionCompleteLesson    = domain.QuestTypeCompleteLesson
	ActionMaintainEquipment = domain.QuestTypeMaintainEquipment
)

// Experience granted per unit of each action
var actionExperience = map[string]int{
	ActionPlantCrop:         25,
	ActionHarvestCrop:       40,
	ActionLogReading:        10,
	ActionCompleteLesson:    30,
	ActionMaintainEquipment: 35,
}

// Skill trained by each action
var actionSkill = map[string]string{
	ActionPlantCrop:         "planting",
	ActionHarvestCrop:       "harvesting",
	ActionLogReading:        "monitoring",
	ActionCompleteLesson:    "agronomy",
	ActionMaintainEquipment: "maintenance",
}

// Skill progression
const (
	SkillGainPerAction = 0.5
	SkillMax           = 100.0
)

// Daily quest generation
const DailyQuestCount = 3

// Leaderboard cache
const (
	LeaderboardCacheSize = 8
	LeaderboardCacheTTL  = 30 * time.Second
	LeaderboardMaxLimit  = 100
	LeaderboardMinLimit  = 1
)

// Reward item keys
const (
	RewardItemCoins            = "coins"
	RewardItemEnergy           = "energy"
	RewardItemSkillPoints      = "skill_points"
	RewardItemPremiumSeeds     = "premium_seeds"
	RewardItemRareTools        = "rare_tools"
	RewardItemKnowledgeScrolls = "knowledge_scrolls"
)

// Log message constants
const (
	LogMsgAchievementAwarded   = "Achievement awarded"
	LogMsgQuestAutoCompleted   = "Quest auto-completed"
	LogMsgQuestRewardClaimed   = "Quest reward claimed"
	LogMsgLevelUp              = "User leveled up"
	LogMsgDailyResetCompleted  = "Daily quest reset completed"
	LogMsgGeneratedDailyQuests = "Generated daily quests"
	LogMsgFailedToCreateQuest  = "Failed to create quest"
	LogMsgFailedToAwardXP      = "Failed to award quest XP"
)
