package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/farmfit/farmfit/internal/config"
	"github.com/farmfit/farmfit/internal/domain"
)

// Feature keys referenced by gated endpoints. They must match the
// feature_key values in the tiers config file.
const (
	FeatureBasicTracking = "basic_tracking"
	FeatureTelemetry     = "telemetry"
	FeatureHempAnalytics = "hemp_analytics"
	FeatureMarketData    = "market_data"
)

// Catalog holds the static product content loaded from config files.
// It is immutable after load.
type Catalog struct {
	Tiers          []domain.Tier
	FarmingModules []domain.FarmingModule
	HempVarieties  []domain.HempVariety
	HeritageCrops  []domain.HeritageCrop
	Resources      []domain.ResourceLink
}

// Config file shapes. Validation tags guard against a half-edited catalog
// making it into a deploy.

type tiersFile struct {
	Version string        `json:"version" validate:"required"`
	Tiers   []domain.Tier `json:"tiers" validate:"required,min=1,dive"`
}

type farmingModulesFile struct {
	Version string                 `json:"version" validate:"required"`
	Modules []domain.FarmingModule `json:"modules" validate:"required,min=1,dive"`
}

type hempVarietiesFile struct {
	Version   string               `json:"version" validate:"required"`
	Varieties []domain.HempVariety `json:"varieties" validate:"required,min=1,dive"`
}

type heritageCropsFile struct {
	Version string                `json:"version" validate:"required"`
	Crops   []domain.HeritageCrop `json:"crops" validate:"required,min=1,dive"`
}

type resourcesFile struct {
	Version   string                `json:"version" validate:"required"`
	Resources []domain.ResourceLink `json:"resources" validate:"required,min=1,dive"`
}

// Load reads and validates every catalog config file
func Load() (*Catalog, error) {
	v := validator.New()
	c := &Catalog{}

	var tiers tiersFile
	if err := loadFile(config.ConfigPathTiers, v, &tiers); err != nil {
		return nil, err
	}
	c.Tiers = tiers.Tiers

	var modules farmingModulesFile
	if err := loadFile(config.ConfigPathFarmingModules, v, &modules); err != nil {
		return nil, err
	}
	c.FarmingModules = modules.Modules

	var varieties hempVarietiesFile
	if err := loadFile(config.ConfigPathHempVarieties, v, &varieties); err != nil {
		return nil, err
	}
	c.HempVarieties = varieties.Varieties

	var crops heritageCropsFile
	if err := loadFile(config.ConfigPathHeritageCrops, v, &crops); err != nil {
		return nil, err
	}
	c.HeritageCrops = crops.Crops

	var resources resourcesFile
	if err := loadFile(config.ConfigPathResources, v, &resources); err != nil {
		return nil, err
	}
	c.Resources = resources.Resources

	if err := c.validateReferences(); err != nil {
		return nil, err
	}
	return c, nil
}

func loadFile(path string, v *validator.Validate, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := v.Struct(out); err != nil {
		return fmt.Errorf("invalid catalog file %s: %w", path, err)
	}
	return nil
}

// validateReferences checks cross-file integrity: every module must gate on
// a tier that exists.
func (c *Catalog) validateReferences() error {
	tiers := make(map[string]bool, len(c.Tiers))
	for _, t := range c.Tiers {
		tiers[t.TierKey] = true
	}
	for _, m := range c.FarmingModules {
		if !tiers[m.MinTierKey] {
			return fmt.Errorf("farming module %s references unknown tier %s", m.ModuleKey, m.MinTierKey)
		}
	}
	return nil
}
