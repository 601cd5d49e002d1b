package handler

import (
	"net/http"

	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/user"
)

// RegisterUserRequest represents the request to register a new user
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// ChangeTierRequest represents the request to move a user to another tier
type ChangeTierRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	TierKey string `json:"tier_key" validate:"required"`
}

// UserHandler handles user account HTTP requests
type UserHandler struct {
	userSvc user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(userSvc user.Service) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// HandleRegister registers a new user account
// @Summary Register user
// @Description Create a new farmer account on the free tier
// @Tags user
// @Accept json
// @Produce json
// @Param request body RegisterUserRequest true "Registration request"
// @Success 201 {object} domain.User
// @Failure 400 {object} ErrorResponse
// @Router /user/register [post]
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
		return
	}

	u, err := h.userSvc.Register(r.Context(), req.Username, req.Email)
	if err != nil {
		respondServiceError(w, r, "Register user", err)
		return
	}

	logger.FromContext(r.Context()).Info("User registration handled", "username", u.Username)
	respondJSON(w, http.StatusCreated, u)
}

// HandleGetProfile returns the user by id or username
// @Summary Get user profile
// @Tags user
// @Produce json
// @Param user_id query string false "User ID"
// @Param username query string false "Username"
// @Success 200 {object} domain.User
// @Failure 404 {object} ErrorResponse
// @Router /user/profile [get]
func (h *UserHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		u, err := h.userSvc.GetByID(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get profile", err)
			return
		}
		respondJSON(w, http.StatusOK, u)
		return
	}

	username, ok := GetQueryParam(r, w, "username")
	if !ok {
		return
	}
	u, err := h.userSvc.GetByUsername(r.Context(), username)
	if err != nil {
		respondServiceError(w, r, "Get profile", err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// HandleChangeTier moves a user to another subscription tier
// @Summary Change subscription tier
// @Tags user
// @Accept json
// @Produce json
// @Param request body ChangeTierRequest true "Tier change request"
// @Success 200 {object} domain.User
// @Failure 404 {object} ErrorResponse
// @Router /user/tier [post]
func (h *UserHandler) HandleChangeTier(w http.ResponseWriter, r *http.Request) {
	var req ChangeTierRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Change tier"); err != nil {
		return
	}

	u, err := h.userSvc.ChangeTier(r.Context(), req.UserID, req.TierKey)
	if err != nil {
		respondServiceError(w, r, "Change tier", err)
		return
	}

	respondJSON(w, http.StatusOK, u)
}
