package domain

// Tier is a subscription pricing level gating feature availability
type Tier struct {
	TierKey      string        `json:"tier_key"`
	Name         string        `json:"name"`
	PriceMonthly float64       `json:"price_monthly"`
	Rank         int           `json:"rank"` // higher rank includes lower tiers' features
	Features     []TierFeature `json:"features"`
}

// TierFeature describes one feature included in a tier
type TierFeature struct {
	FeatureKey  string `json:"feature_key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FarmingModule is a catalog entry describing a themed bundle of farming tools
type FarmingModule struct {
	ModuleKey   string   `json:"module_key"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Method      string   `json:"method"` // farming method the module targets
	MinTierKey  string   `json:"min_tier_key"`
	Tools       []string `json:"tools"`
}

// HempVariety is a hemp cultivar catalog entry
type HempVariety struct {
	VarietyKey    string  `json:"variety_key"`
	Name          string  `json:"name"`
	CBDContent    float64 `json:"cbd_content"`    // percent
	THCContent    float64 `json:"thc_content"`    // percent
	DaysToHarvest int     `json:"days_to_harvest"`
	Notes         string  `json:"notes,omitempty"`
}

// HeritageCrop is a historical crop catalog entry
type HeritageCrop struct {
	CropKey string `json:"crop_key"`
	Name    string `json:"name"`
	Origin  string `json:"origin"`
	History string `json:"history"`
}

// ResourceLink points at an external learning or funding resource
type ResourceLink struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Kind        string `json:"kind"` // "grant", "video_channel", "learning"
}

// Farming method constants
const (
	MethodTraditional  = "traditional"
	MethodOrganic      = "organic"
	MethodHydroponic   = "hydroponic"
	MethodAquaponic    = "aquaponic"
	MethodVertical     = "vertical"
	MethodGreenhouse   = "greenhouse"
	MethodUrban        = "urban"
	MethodPermaculture = "permaculture"
	MethodPrecision    = "precision"
	MethodRegenerative = "regenerative"
)

// Resource kind constants
const (
	ResourceKindGrant        = "grant"
	ResourceKindVideoChannel = "video_channel"
	ResourceKindLearning     = "learning"
)
