package handler

import (
	"net/http"

	"github.com/farmfit/farmfit/internal/learning"
	"github.com/farmfit/farmfit/internal/logger"
)

// RecommendPlantsRequest describes the grower's constraints
type RecommendPlantsRequest struct {
	SpaceCm    int    `json:"space_cm" validate:"required,gt=0"`
	LightLevel string `json:"light_level" validate:"required"`
	TimeDays   int    `json:"time_days" validate:"required,gt=0"`
	Experience string `json:"experience" validate:"required"`
}

// CompleteLessonRequest marks a learning lesson as completed
type CompleteLessonRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	LessonKey string `json:"lesson_key" validate:"required"`
}

// LearningHandler handles plant guide and learning HTTP requests
type LearningHandler struct {
	svc learning.Service
}

// NewLearningHandler creates a new learning handler
func NewLearningHandler(svc learning.Service) *LearningHandler {
	return &LearningHandler{svc: svc}
}

// HandleListGuides returns every plant guide
// @Summary List plant guides
// @Tags learning
// @Produce json
// @Success 200 {array} domain.PlantGuide
// @Router /learning/guides [get]
func (h *LearningHandler) HandleListGuides(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.ListGuides())
}

// HandleGetGuide returns one plant guide by key
// @Summary Get plant guide
// @Tags learning
// @Produce json
// @Param plant_key query string true "Plant key"
// @Success 200 {object} domain.PlantGuide
// @Failure 404 {object} ErrorResponse
// @Router /learning/guides/detail [get]
func (h *LearningHandler) HandleGetGuide(w http.ResponseWriter, r *http.Request) {
	plantKey, ok := GetQueryParam(r, w, "plant_key")
	if !ok {
		return
	}

	guide, err := h.svc.Guide(plantKey)
	if err != nil {
		respondServiceError(w, r, "Get guide", err)
		return
	}
	respondJSON(w, http.StatusOK, guide)
}

// HandleBeginnerPlants returns guides suitable for first-time growers
// @Summary List beginner plants
// @Tags learning
// @Produce json
// @Success 200 {array} domain.PlantGuide
// @Router /learning/guides/beginner [get]
func (h *LearningHandler) HandleBeginnerPlants(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.BeginnerPlants())
}

// HandleRecommend scores guides against the grower's constraints
// @Summary Recommend plants
// @Tags learning
// @Accept json
// @Produce json
// @Param request body RecommendPlantsRequest true "Constraints"
// @Success 200 {array} domain.GuideRecommendation
// @Failure 400 {object} ErrorResponse
// @Router /learning/recommend [post]
func (h *LearningHandler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendPlantsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Recommend plants"); err != nil {
		return
	}

	recommendations, err := h.svc.Recommend(req.SpaceCm, req.LightLevel, req.TimeDays, req.Experience)
	if err != nil {
		respondServiceError(w, r, "Recommend plants", err)
		return
	}
	respondJSON(w, http.StatusOK, recommendations)
}

// HandleStageGuide returns care advice for a plant's growth stage
// @Summary Get stage guide
// @Tags learning
// @Produce json
// @Param plant_key query string true "Plant key"
// @Param stage query string true "Growth stage"
// @Success 200 {object} domain.StageAdvice
// @Failure 404 {object} ErrorResponse
// @Router /learning/guides/stage [get]
func (h *LearningHandler) HandleStageGuide(w http.ResponseWriter, r *http.Request) {
	plantKey, ok := GetQueryParam(r, w, "plant_key")
	if !ok {
		return
	}
	stage, ok := GetQueryParam(r, w, "stage")
	if !ok {
		return
	}

	advice, err := h.svc.StageGuide(plantKey, stage)
	if err != nil {
		respondServiceError(w, r, "Get stage guide", err)
		return
	}
	respondJSON(w, http.StatusOK, advice)
}

// HandleCompleteLesson records a completed lesson for quest progression
// @Summary Complete lesson
// @Tags learning
// @Accept json
// @Produce json
// @Param request body CompleteLessonRequest true "Lesson"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /learning/lessons/complete [post]
func (h *LearningHandler) HandleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	var req CompleteLessonRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete lesson"); err != nil {
		return
	}

	if err := h.svc.CompleteLesson(r.Context(), req.UserID, req.LessonKey); err != nil {
		respondServiceError(w, r, "Complete lesson", err)
		return
	}

	logger.FromContext(r.Context()).Info("Lesson completed",
		"user_id", req.UserID, "lesson_key", req.LessonKey)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "lesson completed"})
}
