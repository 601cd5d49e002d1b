package catalog

import (
	"strings"

	"github.com/farmfit/farmfit/internal/domain"
)

type Service interface {
	// Tiers
	ListTiers() []domain.Tier
	GetTier(tierKey string) (*domain.Tier, error)

	// FeatureEnabled reports whether a tier includes a feature. Higher-rank
	// tiers inherit every lower tier's features.
	FeatureEnabled(tierKey, featureKey string) (bool, error)

	// RequireFeature returns ErrFeatureLocked when the tier lacks the feature
	RequireFeature(tierKey, featureKey string) error

	// Farming modules
	ListFarmingModules(method string) []domain.FarmingModule
	ModulesForTier(tierKey string) ([]domain.FarmingModule, error)

	// Hemp varieties
	ListHempVarieties() []domain.HempVariety
	GetHempVariety(varietyKey string) (*domain.HempVariety, error)

	// Content
	ListHeritageCrops() []domain.HeritageCrop
	ListResources(kind string) []domain.ResourceLink
}

type service struct {
	catalog      *Catalog
	tiersByKey   map[string]domain.Tier
	varietyByKey map[string]domain.HempVariety
}

// NewService wraps a loaded catalog with lookup and gating logic
func NewService(catalog *Catalog) Service {
	s := &service{
		catalog:      catalog,
		tiersByKey:   make(map[string]domain.Tier, len(catalog.Tiers)),
		varietyByKey: make(map[string]domain.HempVariety, len(catalog.HempVarieties)),
	}
	for _, t := range catalog.Tiers {
		s.tiersByKey[t.TierKey] = t
	}
	for _, v := range catalog.HempVarieties {
		s.varietyByKey[v.VarietyKey] = v
	}
	return s
}

func (s *service) ListTiers() []domain.Tier {
	return s.catalog.Tiers
}

func (s *service) GetTier(tierKey string) (*domain.Tier, error) {
	t, ok := s.tiersByKey[tierKey]
	if !ok {
		return nil, domain.ErrTierNotFound
	}
	return &t, nil
}

func (s *service) FeatureEnabled(tierKey, featureKey string) (bool, error) {
	tier, ok := s.tiersByKey[tierKey]
	if !ok {
		return false, domain.ErrTierNotFound
	}

	// A tier grants its own features plus those of every lower rank
	for _, t := range s.catalog.Tiers {
		if t.Rank > tier.Rank {
			continue
		}
		for _, f := range t.Features {
			if strings.EqualFold(f.FeatureKey, featureKey) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *service) RequireFeature(tierKey, featureKey string) error {
	enabled, err := s.FeatureEnabled(tierKey, featureKey)
	if err != nil {
		return err
	}
	if !enabled {
		return domain.ErrFeatureLocked
	}
	return nil
}

func (s *service) ListFarmingModules(method string) []domain.FarmingModule {
	if method == "" {
		return s.catalog.FarmingModules
	}
	var out []domain.FarmingModule
	for _, m := range s.catalog.FarmingModules {
		if strings.EqualFold(m.Method, method) {
			out = append(out, m)
		}
	}
	return out
}

func (s *service) ModulesForTier(tierKey string) ([]domain.FarmingModule, error) {
	tier, ok := s.tiersByKey[tierKey]
	if !ok {
		return nil, domain.ErrTierNotFound
	}

	var out []domain.FarmingModule
	for _, m := range s.catalog.FarmingModules {
		min, ok := s.tiersByKey[m.MinTierKey]
		if !ok {
			continue
		}
		if tier.Rank >= min.Rank {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *service) ListHempVarieties() []domain.HempVariety {
	return s.catalog.HempVarieties
}

func (s *service) GetHempVariety(varietyKey string) (*domain.HempVariety, error) {
	v, ok := s.varietyByKey[varietyKey]
	if !ok {
		return nil, domain.ErrVarietyNotFound
	}
	return &v, nil
}

func (s *service) ListHeritageCrops() []domain.HeritageCrop {
	return s.catalog.HeritageCrops
}

func (s *service) ListResources(kind string) []domain.ResourceLink {
	if kind == "" {
		return s.catalog.Resources
	}
	var out []domain.ResourceLink
	for _, r := range s.catalog.Resources {
		if strings.EqualFold(r.Kind, kind) {
			out = append(out, r)
		}
	}
	return out
}
