package domain

// Difficulty levels for plant guides and user experience
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Growth stages in canonical order
const (
	StageGermination = "germination"
	StageSeedling    = "seedling"
	StageVegetative  = "vegetative"
	StageFlowering   = "flowering"
	StageFruiting    = "fruiting"
	StageHarvest     = "harvest"
)

// GuideRequirement describes one environmental need of a plant
type GuideRequirement struct {
	MinValue       float64  `json:"min"`
	MaxValue       float64  `json:"max"`
	OptimalMin     float64  `json:"optimal_min"`
	OptimalMax     float64  `json:"optimal_max"`
	Unit           string   `json:"unit"`
	Importance     int      `json:"importance" validate:"min=1,max=10"`
	Tips           []string `json:"tips"`
	CommonMistakes []string `json:"common_mistakes"`
	WarningSigns   []string `json:"warning_signs"`
}

// StageGuide covers one growth stage of a plant
type StageGuide struct {
	Stage           string   `json:"stage" validate:"required"`
	DurationMinDays int      `json:"duration_min_days"`
	DurationMaxDays int      `json:"duration_max_days"`
	Description     string   `json:"description"`
	KeyIndicators   []string `json:"key_indicators"`
	CommonProblems  []string `json:"common_problems"`
	Solutions       []string `json:"solutions"`
	Tips            []string `json:"tips"`
}

// PlantGuide is the full learning entry for one plant
type PlantGuide struct {
	Key               string           `json:"key" validate:"required"`
	Name              string           `json:"name" validate:"required"`
	ScientificName    string           `json:"scientific_name"`
	Difficulty        string           `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Description       string           `json:"description"`
	GrowthTimeMinDays int              `json:"growth_time_min_days" validate:"min=1"`
	GrowthTimeMaxDays int              `json:"growth_time_max_days" validate:"min=1"`
	SpaceNeededMinCm  int              `json:"space_needed_min_cm"`
	SpaceNeededMaxCm  int              `json:"space_needed_max_cm"`
	Light             GuideRequirement `json:"light"`
	Temperature       GuideRequirement `json:"temperature"`
	Water             GuideRequirement `json:"water"`
	GrowthStages      []StageGuide     `json:"growth_stages" validate:"required,min=1,dive"`
	CompanionPlants   []string         `json:"companion_plants"`
	Pests             []string         `json:"pests"`
	Diseases          []string         `json:"diseases"`
	Benefits          []string         `json:"benefits"`
	Tips              []string         `json:"tips"`
	Warnings          []string         `json:"warnings"`
	SuccessRate       float64          `json:"success_rate" validate:"min=0,max=1"`
	MaintenanceLevel  int              `json:"maintenance_level" validate:"min=1,max=10"`
}

// NextStagePreview is a short look ahead at the following growth stage
type NextStagePreview struct {
	Stage           string   `json:"stage"`
	Description     string   `json:"description"`
	PreparationTips []string `json:"preparation_tips"`
}

// StageAdvice bundles the current stage guide with the upcoming stage
type StageAdvice struct {
	PlantKey  string            `json:"plant_key"`
	Current   StageGuide        `json:"current"`
	NextStage *NextStagePreview `json:"next_stage,omitempty"`
}

// GuideRecommendation scores how well a guide matches a user's conditions
type GuideRecommendation struct {
	Guide PlantGuide `json:"guide"`
	Score float64    `json:"score"`
}
