package domain

import "time"

// HempSample carries the measured parameters of a hemp crop
type HempSample struct {
	CBDContent      float64 `json:"cbd_content"`      // percent
	THCContent      float64 `json:"thc_content"`      // percent
	MoistureContent float64 `json:"moisture_content"` // percent
	PlantHeight     float64 `json:"plant_height"`     // cm
	PlantDensity    float64 `json:"plant_density"`    // plants per square foot
	DaysToHarvest   int     `json:"days_to_harvest"`
}

// HempQualityReport is the result of a quality analysis
type HempQualityReport struct {
	QualityScore     float64  `json:"quality_score"` // 0-100
	ComplianceStatus string   `json:"compliance_status"`
	MoistureStatus   string   `json:"moisture_status"`
	Recommendations  []string `json:"recommendations"`
}

// HempComplianceReport is the result of a regulatory compliance check
type HempComplianceReport struct {
	Compliant         bool               `json:"compliant"`
	ProductionType    string             `json:"production_type"`
	THCContent        float64            `json:"thc_content"`
	LegalLimit        float64            `json:"legal_limit"`
	Margin            float64            `json:"margin"`
	GrowingConditions map[string]float64 `json:"growing_conditions"`
	Recommendations   []string           `json:"recommendations"`
	CheckedAt         time.Time          `json:"checked_at"`
}

// HarvestWindow estimates when a crop should be harvested
type HarvestWindow struct {
	DaysToHarvest int    `json:"days_to_harvest"`
	WindowStart   int    `json:"window_start"` // days from now
	WindowEnd     int    `json:"window_end"`
	RiskLevel     string `json:"risk_level"`
}

// CannabinoidPlan recommends growing-condition adjustments for a target compound
type CannabinoidPlan struct {
	TargetCompound    string             `json:"target_compound"`
	OptimalConditions map[string]float64 `json:"optimal_conditions"`
	CurrentConditions map[string]float64 `json:"current_conditions"`
	Recommendations   []string           `json:"recommendations"`
	EstimatedWeeks    string             `json:"estimated_optimization_time"`
}

// Hemp compliance constants (US federal hemp program limits)
const (
	THCLegalLimit       = 0.3
	THCWarningThreshold = 0.25
	THCHarvestRisk      = 0.28
	MoistureOptimalLow  = 10.0
	MoistureOptimalHigh = 14.0
)

// Compliance status values
const (
	ComplianceCompliant    = "compliant"
	ComplianceNonCompliant = "non-compliant"
)

// Moisture status values
const (
	MoistureOptimal    = "optimal"
	MoistureSuboptimal = "suboptimal"
)

// Harvest risk levels
const (
	RiskNormal = "normal"
	RiskHigh   = "high"
)
