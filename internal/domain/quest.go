package domain

import "time"

// Quest represents a daily quest definition
type Quest struct {
	QuestID         int       `json:"quest_id"`
	QuestKey        string    `json:"quest_key"`
	QuestType       string    `json:"quest_type"` // 'plant_crop', 'harvest_crop', 'log_reading', 'complete_lesson', 'maintain_equipment'
	Description     string    `json:"description"`
	TargetKey       *string   `json:"target_key,omitempty"` // crop/equipment/lesson key the quest is scoped to
	BaseRequirement int       `json:"base_requirement"`
	BaseRewardXP    int       `json:"base_reward_xp"`
	BaseRewardCoins int       `json:"base_reward_coins"`
	Active          bool      `json:"active"`
	QuestDate       time.Time `json:"quest_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// QuestProgress represents user progress on a quest
type QuestProgress struct {
	UserID           string     `json:"user_id"`
	QuestID          int        `json:"quest_id"`
	ProgressCurrent  int        `json:"progress_current"`
	ProgressRequired int        `json:"progress_required"`
	RewardXP         int        `json:"reward_xp"`
	RewardCoins      int        `json:"reward_coins"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	ClaimedAt        *time.Time `json:"claimed_at,omitempty"`

	// Joined fields
	QuestKey    string  `json:"quest_key,omitempty"`
	QuestType   string  `json:"quest_type,omitempty"`
	Description string  `json:"description,omitempty"`
	TargetKey   *string `json:"target_key,omitempty"`
}

// QuestTemplate represents a quest template from config
type QuestTemplate struct {
	QuestKey        string  `json:"quest_key"`
	QuestType       string  `json:"quest_type"`
	Description     string  `json:"description"`
	TargetKey       *string `json:"target_key,omitempty"`
	BaseRequirement int     `json:"base_requirement"`
	BaseRewardXP    int     `json:"base_reward_xp"`
	BaseRewardCoins int     `json:"base_reward_coins"`
}

// QuestPoolConfig represents the quest pool configuration
type QuestPoolConfig struct {
	Version   string          `json:"version"`
	QuestPool []QuestTemplate `json:"quest_pool"`
}

// Quest type constants
const (
	QuestTypePlantCrop         = "plant_crop"         // Plant X crops
	QuestTypeHarvestCrop       = "harvest_crop"       // Harvest X crops
	QuestTypeLogReading        = "log_reading"        // Submit X sensor readings
	QuestTypeCompleteLesson    = "complete_lesson"    // Finish X learning lessons
	QuestTypeMaintainEquipment = "maintain_equipment" // Complete X maintenance tasks
)
