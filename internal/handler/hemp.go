package handler

import (
	"net/http"

	"github.com/farmfit/farmfit/internal/catalog"
	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/hemp"
	"github.com/farmfit/farmfit/internal/user"
)

// AnalyzeQualityRequest carries a hemp sample for quality scoring
type AnalyzeQualityRequest struct {
	UserID          string  `json:"user_id" validate:"required"`
	CBDContent      float64 `json:"cbd_content" validate:"min=0"`
	THCContent      float64 `json:"thc_content" validate:"min=0"`
	MoistureContent float64 `json:"moisture_content" validate:"min=0"`
	PlantHeight     float64 `json:"plant_height" validate:"min=0"`
	PlantDensity    float64 `json:"plant_density" validate:"min=0"`
	DaysToHarvest   int     `json:"days_to_harvest" validate:"min=0"`
}

// CheckComplianceRequest carries a compliance check
type CheckComplianceRequest struct {
	UserID            string             `json:"user_id" validate:"required"`
	THCContent        float64            `json:"thc_content" validate:"min=0"`
	ProductionType    string             `json:"production_type" validate:"required"`
	GrowingConditions map[string]float64 `json:"growing_conditions"`
}

// HarvestWindowRequest estimates the harvest window for a crop
type HarvestWindowRequest struct {
	UserID        string  `json:"user_id" validate:"required"`
	DaysToHarvest int     `json:"days_to_harvest" validate:"min=0"`
	THCContent    float64 `json:"thc_content" validate:"min=0"`
}

// OptimizeCannabinoidRequest asks for growing condition adjustments
type OptimizeCannabinoidRequest struct {
	UserID            string             `json:"user_id" validate:"required"`
	TargetCompound    string             `json:"target_compound" validate:"required"`
	CurrentConditions map[string]float64 `json:"current_conditions"`
}

// HempHandler handles hemp analytics requests. All endpoints are gated on
// the hemp_analytics feature.
type HempHandler struct {
	users      user.Service
	catalogSvc catalog.Service
}

// NewHempHandler creates a new hemp analytics handler
func NewHempHandler(users user.Service, catalogSvc catalog.Service) *HempHandler {
	return &HempHandler{users: users, catalogSvc: catalogSvc}
}

// HandleAnalyzeQuality scores a hemp sample
// @Summary Analyze hemp sample quality
// @Tags hemp
// @Accept json
// @Produce json
// @Param request body AnalyzeQualityRequest true "Sample"
// @Success 200 {object} domain.HempQualityReport
// @Failure 403 {object} ErrorResponse
// @Router /hemp/quality [post]
func (h *HempHandler) HandleAnalyzeQuality(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeQualityRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Analyze quality"); err != nil {
		return
	}
	if CheckFeatureLocked(w, r, h.users, h.catalogSvc, req.UserID, catalog.FeatureHempAnalytics) {
		return
	}

	report, err := hemp.AnalyzeQuality(domain.HempSample{
		CBDContent:      req.CBDContent,
		THCContent:      req.THCContent,
		MoistureContent: req.MoistureContent,
		PlantHeight:     req.PlantHeight,
		PlantDensity:    req.PlantDensity,
		DaysToHarvest:   req.DaysToHarvest,
	})
	if err != nil {
		respondServiceError(w, r, "Analyze quality", err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// HandleCheckCompliance runs the regulatory THC check
// @Summary Check hemp compliance
// @Tags hemp
// @Accept json
// @Produce json
// @Param request body CheckComplianceRequest true "Compliance check"
// @Success 200 {object} domain.HempComplianceReport
// @Failure 403 {object} ErrorResponse
// @Router /hemp/compliance [post]
func (h *HempHandler) HandleCheckCompliance(w http.ResponseWriter, r *http.Request) {
	var req CheckComplianceRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Check compliance"); err != nil {
		return
	}
	if CheckFeatureLocked(w, r, h.users, h.catalogSvc, req.UserID, catalog.FeatureHempAnalytics) {
		return
	}

	report, err := hemp.CheckCompliance(req.THCContent, req.ProductionType, req.GrowingConditions)
	if err != nil {
		respondServiceError(w, r, "Check compliance", err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// HandleHarvestWindow estimates the harvest window
// @Summary Estimate harvest window
// @Tags hemp
// @Accept json
// @Produce json
// @Param request body HarvestWindowRequest true "Harvest estimate"
// @Success 200 {object} domain.HarvestWindow
// @Failure 403 {object} ErrorResponse
// @Router /hemp/harvest-window [post]
func (h *HempHandler) HandleHarvestWindow(w http.ResponseWriter, r *http.Request) {
	var req HarvestWindowRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Harvest window"); err != nil {
		return
	}
	if CheckFeatureLocked(w, r, h.users, h.catalogSvc, req.UserID, catalog.FeatureHempAnalytics) {
		return
	}

	window, err := hemp.EstimateHarvestWindow(req.DaysToHarvest, req.THCContent)
	if err != nil {
		respondServiceError(w, r, "Harvest window", err)
		return
	}
	respondJSON(w, http.StatusOK, window)
}

// HandleOptimizeCannabinoid recommends growing condition adjustments
// @Summary Optimize cannabinoid production
// @Tags hemp
// @Accept json
// @Produce json
// @Param request body OptimizeCannabinoidRequest true "Optimization target"
// @Success 200 {object} domain.CannabinoidPlan
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /hemp/optimize [post]
func (h *HempHandler) HandleOptimizeCannabinoid(w http.ResponseWriter, r *http.Request) {
	var req OptimizeCannabinoidRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Optimize cannabinoid"); err != nil {
		return
	}
	if CheckFeatureLocked(w, r, h.users, h.catalogSvc, req.UserID, catalog.FeatureHempAnalytics) {
		return
	}

	plan, err := hemp.OptimizeCannabinoid(req.TargetCompound, req.CurrentConditions)
	if err != nil {
		respondServiceError(w, r, "Optimize cannabinoid", err)
		return
	}
	respondJSON(w, http.StatusOK, plan)
}
