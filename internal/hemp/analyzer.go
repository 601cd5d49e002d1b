package hemp

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
)

// Quality score component weights. CBD potency carries the most weight,
// followed by THC compliance margin and moisture condition.
const (
	qualityWeightCBD      = 0.4
	qualityWeightTHC      = 0.3
	qualityWeightMoisture = 0.3

	cbdReferenceContent = 20.0
	moistureIdeal       = 12.0

	harvestWindowDays = 5
)

// optimalConditions maps each supported cannabinoid to the growing
// conditions that maximize it.
var optimalConditions = map[string]map[string]float64{
	"cbd": {
		"temperature": 24.0,
		"humidity":    55.0,
		"light_hours": 18.0,
		"soil_ph":     6.5,
	},
	"cbg": {
		"temperature": 26.0,
		"humidity":    50.0,
		"light_hours": 20.0,
		"soil_ph":     6.2,
	},
	"cbn": {
		"temperature": 22.0,
		"humidity":    60.0,
		"light_hours": 16.0,
		"soil_ph":     6.8,
	},
}

// AnalyzeQuality scores a hemp sample 0-100 and flags compliance and
// moisture problems with recommendations.
func AnalyzeQuality(sample domain.HempSample) (*domain.HempQualityReport, error) {
	if sample.CBDContent < 0 || sample.THCContent < 0 || sample.MoistureContent < 0 {
		return nil, fmt.Errorf("%w: sample contents must be non-negative", domain.ErrInvalidInput)
	}

	cbdFactor := clamp01(sample.CBDContent / cbdReferenceContent)
	thcFactor := clamp01(1 - sample.THCContent/domain.THCLegalLimit)
	moistureFactor := clamp01(1 - math.Abs(sample.MoistureContent-moistureIdeal)/moistureIdeal)

	score := (cbdFactor*qualityWeightCBD + thcFactor*qualityWeightTHC + moistureFactor*qualityWeightMoisture) * 100

	report := &domain.HempQualityReport{
		QualityScore:     math.Round(score*100) / 100,
		ComplianceStatus: domain.ComplianceCompliant,
		MoistureStatus:   domain.MoistureOptimal,
	}

	if sample.THCContent > domain.THCLegalLimit {
		report.ComplianceStatus = domain.ComplianceNonCompliant
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("THC %.2f%% exceeds the %.1f%% legal limit. Crop cannot be sold as hemp.", sample.THCContent, domain.THCLegalLimit))
	} else if sample.THCContent >= domain.THCWarningThreshold {
		report.Recommendations = append(report.Recommendations,
			fmt.Sprintf("THC %.2f%% is approaching the legal limit. Test again before harvest.", sample.THCContent))
	}

	if sample.MoistureContent < domain.MoistureOptimalLow || sample.MoistureContent > domain.MoistureOptimalHigh {
		report.MoistureStatus = domain.MoistureSuboptimal
		if sample.MoistureContent > domain.MoistureOptimalHigh {
			report.Recommendations = append(report.Recommendations,
				"Moisture above optimal range. Improve drying to avoid mold during storage.")
		} else {
			report.Recommendations = append(report.Recommendations,
				"Moisture below optimal range. Over-dried material loses cannabinoid content.")
		}
	}

	return report, nil
}

// CheckCompliance runs the regulatory check for a production type
func CheckCompliance(thcContent float64, productionType string, growingConditions map[string]float64) (*domain.HempComplianceReport, error) {
	if thcContent < 0 {
		return nil, fmt.Errorf("%w: thc content must be non-negative", domain.ErrInvalidInput)
	}

	report := &domain.HempComplianceReport{
		Compliant:         thcContent <= domain.THCLegalLimit,
		ProductionType:    productionType,
		THCContent:        thcContent,
		LegalLimit:        domain.THCLegalLimit,
		Margin:            math.Round((domain.THCLegalLimit-thcContent)*10000) / 10000,
		GrowingConditions: growingConditions,
		CheckedAt:         time.Now().UTC(),
	}

	switch {
	case !report.Compliant:
		report.Recommendations = append(report.Recommendations,
			"Destroy or remediate the lot per the regulator's non-compliance procedure.")
	case thcContent >= domain.THCHarvestRisk:
		report.Recommendations = append(report.Recommendations,
			"THC is within the harvest risk band. Harvest immediately to avoid crossing the limit.")
	case thcContent >= domain.THCWarningThreshold:
		report.Recommendations = append(report.Recommendations,
			"THC is elevated. Schedule weekly compliance testing until harvest.")
	}

	return report, nil
}

// EstimateHarvestWindow places a +/- window around the expected harvest day.
// THC near the limit raises the risk level since each extra day in the field
// increases THC accumulation.
func EstimateHarvestWindow(daysToHarvest int, thcContent float64) (*domain.HarvestWindow, error) {
	if daysToHarvest < 0 {
		return nil, fmt.Errorf("%w: days to harvest must be non-negative", domain.ErrInvalidInput)
	}

	start := daysToHarvest - harvestWindowDays
	if start < 0 {
		start = 0
	}

	risk := domain.RiskNormal
	end := daysToHarvest + harvestWindowDays
	if thcContent >= domain.THCHarvestRisk {
		risk = domain.RiskHigh
		// No grace period past the expected date when THC is already high
		end = daysToHarvest
	}

	return &domain.HarvestWindow{
		DaysToHarvest: daysToHarvest,
		WindowStart:   start,
		WindowEnd:     end,
		RiskLevel:     risk,
	}, nil
}

// OptimizeCannabinoid compares current growing conditions against the
// optimum for the target compound and recommends adjustments.
func OptimizeCannabinoid(targetCompound string, current map[string]float64) (*domain.CannabinoidPlan, error) {
	optimal, ok := optimalConditions[strings.ToLower(targetCompound)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedCompound, targetCompound)
	}

	plan := &domain.CannabinoidPlan{
		TargetCompound:    strings.ToLower(targetCompound),
		OptimalConditions: optimal,
		CurrentConditions: current,
		EstimatedWeeks:    "2-4 weeks",
	}

	for param, target := range optimal {
		value, measured := current[param]
		if !measured {
			plan.Recommendations = append(plan.Recommendations,
				fmt.Sprintf("Start measuring %s; target is %.1f", param, target))
			continue
		}
		diff := value - target
		if math.Abs(diff) < 0.5 {
			continue
		}
		direction := "Increase"
		if diff > 0 {
			direction = "Decrease"
		}
		plan.Recommendations = append(plan.Recommendations,
			fmt.Sprintf("%s %s from %.1f toward %.1f", direction, param, value, target))
	}

	return plan, nil
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
