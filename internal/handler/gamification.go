package handler

import (
	"net/http"

	"github.com/farmfit/farmfit/internal/gamification"
	"github.com/farmfit/farmfit/internal/logger"
)

// Leaderboard query defaults
const defaultLeaderboardLimit = 10

// RecordActionRequest represents a farming action to feed into quest and
// skill progression.
type RecordActionRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	ActionType string `json:"action_type" validate:"required"`
	TargetKey  string `json:"target_key"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

// ClaimQuestRequest represents a quest reward claim
type ClaimQuestRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	QuestID int    `json:"quest_id" validate:"required,gt=0"`
}

// UpdateSustainabilityRequest updates a user's sustainability rating
type UpdateSustainabilityRequest struct {
	UserID string  `json:"user_id" validate:"required"`
	Rating float64 `json:"rating" validate:"min=0,max=100"`
}

// ClaimQuestResponse reports the rewards granted by a claim
type ClaimQuestResponse struct {
	Experience int `json:"experience"`
	Coins      int `json:"coins"`
}

// GamificationHandler handles progression, achievements and quests
type GamificationHandler struct {
	svc gamification.Service
}

// NewGamificationHandler creates a new gamification handler
func NewGamificationHandler(svc gamification.Service) *GamificationHandler {
	return &GamificationHandler{svc: svc}
}

// HandleListAchievements returns the achievement catalog
// @Summary List achievements
// @Tags gamification
// @Produce json
// @Success 200 {array} domain.Achievement
// @Router /gamification/achievements [get]
func (h *GamificationHandler) HandleListAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.svc.ListAchievements(r.Context())
	if err != nil {
		respondServiceError(w, r, "List achievements", err)
		return
	}
	respondJSON(w, http.StatusOK, achievements)
}

// HandleGetUserAchievements returns the achievements a user holds
// @Summary Get user achievements
// @Tags gamification
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.UserAchievement
// @Router /gamification/achievements/user [get]
func (h *GamificationHandler) HandleGetUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	achievements, err := h.svc.GetUserAchievements(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get user achievements", err)
		return
	}
	respondJSON(w, http.StatusOK, achievements)
}

// HandleGetProgress returns a user's level, experience, skills and farm score
// @Summary Get user progress
// @Tags gamification
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} domain.UserProgress
// @Router /gamification/progress [get]
func (h *GamificationHandler) HandleGetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	progress, err := h.svc.GetUserProgress(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get progress", err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// HandleGetLeaderboard returns the experience leaderboard
// @Summary Get leaderboard
// @Tags gamification
// @Produce json
// @Param limit query int false "Number of entries (1-100)"
// @Success 200 {array} domain.LeaderboardEntry
// @Router /gamification/leaderboard [get]
func (h *GamificationHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := GetOptionalIntParam(r, "limit", defaultLeaderboardLimit)

	entries, err := h.svc.GetLeaderboard(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, "Get leaderboard", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// HandleGetActiveQuests returns today's quest set
// @Summary Get active quests
// @Tags gamification
// @Produce json
// @Success 200 {array} domain.Quest
// @Router /gamification/quests [get]
func (h *GamificationHandler) HandleGetActiveQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := h.svc.GetActiveQuests(r.Context())
	if err != nil {
		respondServiceError(w, r, "Get active quests", err)
		return
	}
	respondJSON(w, http.StatusOK, quests)
}

// HandleGetQuestProgress returns a user's quest progress
// @Summary Get quest progress
// @Tags gamification
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {array} domain.QuestProgress
// @Router /gamification/quests/progress [get]
func (h *GamificationHandler) HandleGetQuestProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	progress, err := h.svc.GetUserQuestProgress(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get quest progress", err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// HandleClaimQuest claims a completed quest's reward
// @Summary Claim quest reward
// @Tags gamification
// @Accept json
// @Produce json
// @Param request body ClaimQuestRequest true "Claim request"
// @Success 200 {object} ClaimQuestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /gamification/quests/claim [post]
func (h *GamificationHandler) HandleClaimQuest(w http.ResponseWriter, r *http.Request) {
	var req ClaimQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim quest"); err != nil {
		return
	}

	xp, coins, err := h.svc.ClaimQuestReward(r.Context(), req.UserID, req.QuestID)
	if err != nil {
		respondServiceError(w, r, "Claim quest", err)
		return
	}

	logger.FromContext(r.Context()).Info("Quest reward claimed",
		"user_id", req.UserID, "quest_id", req.QuestID, "xp", xp, "coins", coins)
	respondJSON(w, http.StatusOK, ClaimQuestResponse{Experience: xp, Coins: coins})
}

// HandleRecordAction records a farming action for quest and skill progression
// @Summary Record farming action
// @Tags gamification
// @Accept json
// @Produce json
// @Param request body RecordActionRequest true "Action"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /gamification/actions [post]
func (h *GamificationHandler) HandleRecordAction(w http.ResponseWriter, r *http.Request) {
	var req RecordActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record action"); err != nil {
		return
	}

	if err := h.svc.RecordAction(r.Context(), req.UserID, req.ActionType, req.TargetKey, req.Quantity); err != nil {
		respondServiceError(w, r, "Record action", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "action recorded"})
}

// HandleUpdateSustainability updates a user's sustainability rating
// @Summary Update sustainability rating
// @Tags gamification
// @Accept json
// @Produce json
// @Param request body UpdateSustainabilityRequest true "Rating"
// @Success 200 {object} SuccessResponse
// @Router /gamification/sustainability [post]
func (h *GamificationHandler) HandleUpdateSustainability(w http.ResponseWriter, r *http.Request) {
	var req UpdateSustainabilityRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update sustainability"); err != nil {
		return
	}

	if err := h.svc.UpdateSustainability(r.Context(), req.UserID, req.Rating); err != nil {
		respondServiceError(w, r, "Update sustainability", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: "sustainability updated"})
}
