package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/farmfit/farmfit/internal/catalog"
	"github.com/farmfit/farmfit/internal/domain"
)

// testCatalogService builds a catalog with a free tier and a premium tier
// that includes hemp analytics.
func testCatalogService() catalog.Service {
	return catalog.NewService(&catalog.Catalog{
		Tiers: []domain.Tier{
			{
				TierKey: "free",
				Name:    "Free",
				Rank:    1,
				Features: []domain.TierFeature{
					{FeatureKey: catalog.FeatureBasicTracking, Name: "Basic tracking"},
				},
			},
			{
				TierKey: "premium",
				Name:    "Premium",
				Rank:    2,
				Features: []domain.TierFeature{
					{FeatureKey: catalog.FeatureHempAnalytics, Name: "Hemp analytics"},
					{FeatureKey: catalog.FeatureTelemetry, Name: "Sensor telemetry"},
				},
			},
		},
	})
}

func TestHandleAnalyzeQuality(t *testing.T) {
	InitValidator()
	catalogSvc := testCatalogService()

	sample := AnalyzeQualityRequest{
		UserID:          "u-1",
		CBDContent:      15.0,
		THCContent:      0.2,
		MoistureContent: 12.0,
		DaysToHarvest:   30,
	}

	t.Run("Success for premium tier", func(t *testing.T) {
		mockUsers := &MockUserService{}
		mockUsers.On("GetByID", mock.Anything, "u-1").
			Return(&domain.User{ID: "u-1", TierKey: "premium"}, nil)

		h := NewHempHandler(mockUsers, catalogSvc)
		body, _ := json.Marshal(sample)
		req := httptest.NewRequest("POST", "/hemp/quality", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		h.HandleAnalyzeQuality(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "quality_score")
		mockUsers.AssertExpectations(t)
	})

	t.Run("Locked for free tier", func(t *testing.T) {
		mockUsers := &MockUserService{}
		mockUsers.On("GetByID", mock.Anything, "u-1").
			Return(&domain.User{ID: "u-1", TierKey: "free"}, nil)

		h := NewHempHandler(mockUsers, catalogSvc)
		body, _ := json.Marshal(sample)
		req := httptest.NewRequest("POST", "/hemp/quality", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		h.HandleAnalyzeQuality(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgFeatureLockedError)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockUsers := &MockUserService{}
		mockUsers.On("GetByID", mock.Anything, "missing").
			Return(nil, domain.ErrUserNotFound)

		h := NewHempHandler(mockUsers, catalogSvc)
		reqBody := sample
		reqBody.UserID = "missing"
		body, _ := json.Marshal(reqBody)
		req := httptest.NewRequest("POST", "/hemp/quality", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		h.HandleAnalyzeQuality(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUsers.AssertExpectations(t)
	})
}

func TestHandleOptimizeCannabinoid(t *testing.T) {
	InitValidator()
	catalogSvc := testCatalogService()

	t.Run("Unsupported compound", func(t *testing.T) {
		mockUsers := &MockUserService{}
		mockUsers.On("GetByID", mock.Anything, "u-1").
			Return(&domain.User{ID: "u-1", TierKey: "premium"}, nil)

		h := NewHempHandler(mockUsers, catalogSvc)
		body, _ := json.Marshal(OptimizeCannabinoidRequest{
			UserID:         "u-1",
			TargetCompound: "thc",
		})
		req := httptest.NewRequest("POST", "/hemp/optimize", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		h.HandleOptimizeCannabinoid(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUnsupportedCompoundError)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Success", func(t *testing.T) {
		mockUsers := &MockUserService{}
		mockUsers.On("GetByID", mock.Anything, "u-1").
			Return(&domain.User{ID: "u-1", TierKey: "premium"}, nil)

		h := NewHempHandler(mockUsers, catalogSvc)
		body, _ := json.Marshal(OptimizeCannabinoidRequest{
			UserID:         "u-1",
			TargetCompound: "CBD",
			CurrentConditions: map[string]float64{
				"temperature": 20.0,
				"humidity":    55.0,
			},
		})
		req := httptest.NewRequest("POST", "/hemp/optimize", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		h.HandleOptimizeCannabinoid(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"target_compound":"cbd"`)
		mockUsers.AssertExpectations(t)
	})
}
