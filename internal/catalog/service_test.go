package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmfit/farmfit/internal/domain"
)

func testCatalog() *Catalog {
	return &Catalog{
		Tiers: []domain.Tier{
			{
				TierKey: "free", Name: "Free", Rank: 0,
				Features: []domain.TierFeature{
					{FeatureKey: "basic_tracking", Name: "Basic tracking"},
				},
			},
			{
				TierKey: "grower", Name: "Grower", PriceMonthly: 9.99, Rank: 1,
				Features: []domain.TierFeature{
					{FeatureKey: "telemetry", Name: "Sensor telemetry"},
					{FeatureKey: "hemp_analytics", Name: "Hemp analytics"},
				},
			},
			{
				TierKey: "estate", Name: "Estate", PriceMonthly: 29.99, Rank: 2,
				Features: []domain.TierFeature{
					{FeatureKey: "market_data", Name: "Market data"},
				},
			},
		},
		FarmingModules: []domain.FarmingModule{
			{ModuleKey: "hydro_starter", Method: domain.MethodHydroponic, MinTierKey: "free"},
			{ModuleKey: "precision_pro", Method: domain.MethodPrecision, MinTierKey: "grower"},
			{ModuleKey: "estate_suite", Method: domain.MethodRegenerative, MinTierKey: "estate"},
		},
		HempVarieties: []domain.HempVariety{
			{VarietyKey: "cherry_wine", Name: "Cherry Wine", CBDContent: 15.4, THCContent: 0.27, DaysToHarvest: 70},
		},
		HeritageCrops: []domain.HeritageCrop{
			{CropKey: "red_fife", Name: "Red Fife Wheat", Origin: "Canada"},
		},
		Resources: []domain.ResourceLink{
			{Name: "Hemp grant", URL: "https://example.com/grant", Kind: domain.ResourceKindGrant},
			{Name: "Soil course", URL: "https://example.com/course", Kind: domain.ResourceKindLearning},
		},
	}
}

func TestFeatureEnabled(t *testing.T) {
	svc := NewService(testCatalog())

	tests := []struct {
		name       string
		tierKey    string
		featureKey string
		want       bool
	}{
		{"own feature", "free", "basic_tracking", true},
		{"locked above", "free", "telemetry", false},
		{"tier feature", "grower", "telemetry", true},
		{"inherits lower rank", "estate", "basic_tracking", true},
		{"inherits mid rank", "estate", "hemp_analytics", true},
		{"case insensitive", "grower", "Telemetry", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FeatureEnabled(tt.tierKey, tt.featureKey)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown tier", func(t *testing.T) {
		_, err := svc.FeatureEnabled("platinum", "telemetry")
		assert.ErrorIs(t, err, domain.ErrTierNotFound)
	})
}

func TestRequireFeature(t *testing.T) {
	svc := NewService(testCatalog())

	assert.NoError(t, svc.RequireFeature("grower", "telemetry"))
	assert.ErrorIs(t, svc.RequireFeature("free", "telemetry"), domain.ErrFeatureLocked)
	assert.ErrorIs(t, svc.RequireFeature("platinum", "telemetry"), domain.ErrTierNotFound)
}

func TestModulesForTier(t *testing.T) {
	svc := NewService(testCatalog())

	free, err := svc.ModulesForTier("free")
	require.NoError(t, err)
	assert.Len(t, free, 1)

	estate, err := svc.ModulesForTier("estate")
	require.NoError(t, err)
	assert.Len(t, estate, 3)

	_, err = svc.ModulesForTier("platinum")
	assert.ErrorIs(t, err, domain.ErrTierNotFound)
}

func TestListFarmingModules(t *testing.T) {
	svc := NewService(testCatalog())

	assert.Len(t, svc.ListFarmingModules(""), 3)

	hydro := svc.ListFarmingModules(domain.MethodHydroponic)
	require.Len(t, hydro, 1)
	assert.Equal(t, "hydro_starter", hydro[0].ModuleKey)
}

func TestVarietyAndResourceLookups(t *testing.T) {
	svc := NewService(testCatalog())

	v, err := svc.GetHempVariety("cherry_wine")
	require.NoError(t, err)
	assert.Equal(t, 15.4, v.CBDContent)

	_, err = svc.GetHempVariety("unknown")
	assert.ErrorIs(t, err, domain.ErrVarietyNotFound)

	grants := svc.ListResources(domain.ResourceKindGrant)
	require.Len(t, grants, 1)
	assert.Equal(t, "Hemp grant", grants[0].Name)
}

func TestValidateReferences(t *testing.T) {
	c := testCatalog()
	c.FarmingModules = append(c.FarmingModules, domain.FarmingModule{
		ModuleKey: "broken", MinTierKey: "missing_tier",
	})
	assert.Error(t, c.validateReferences())
}
