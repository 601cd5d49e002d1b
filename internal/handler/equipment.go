package handler

import (
	"net/http"
	"time"

	"github.com/farmfit/farmfit/internal/equipment"
	"github.com/farmfit/farmfit/internal/logger"
)

// RegisterEquipmentRequest registers a piece of farm equipment
type RegisterEquipmentRequest struct {
	OwnerID         string     `json:"owner_id" validate:"required"`
	Name            string     `json:"name" validate:"required,max=100"`
	Type            string     `json:"type" validate:"required,max=50"`
	Location        string     `json:"location" validate:"max=100"`
	NextMaintenance *time.Time `json:"next_maintenance,omitempty"`
}

// ChangeEquipmentStatusRequest moves equipment to a new lifecycle status
type ChangeEquipmentStatusRequest struct {
	EquipmentID string `json:"equipment_id" validate:"required"`
	Status      string `json:"status" validate:"required"`
}

// EquipmentHandler handles equipment lifecycle HTTP requests
type EquipmentHandler struct {
	svc equipment.Service
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(svc equipment.Service) *EquipmentHandler {
	return &EquipmentHandler{svc: svc}
}

// HandleRegister registers new equipment
// @Summary Register equipment
// @Tags equipment
// @Accept json
// @Produce json
// @Param request body RegisterEquipmentRequest true "Equipment"
// @Success 201 {object} domain.Equipment
// @Failure 400 {object} ErrorResponse
// @Router /equipment [post]
func (h *EquipmentHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterEquipmentRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register equipment"); err != nil {
		return
	}

	e, err := h.svc.Register(r.Context(), req.OwnerID, req.Name, req.Type, req.Location, req.NextMaintenance)
	if err != nil {
		respondServiceError(w, r, "Register equipment", err)
		return
	}

	logger.FromContext(r.Context()).Info("Equipment registered",
		"equipment_id", e.ID, "owner_id", e.OwnerID, "type", e.Type)
	respondJSON(w, http.StatusCreated, e)
}

// HandleGet returns one piece of equipment
// @Summary Get equipment
// @Tags equipment
// @Produce json
// @Param equipment_id query string true "Equipment ID"
// @Success 200 {object} domain.Equipment
// @Failure 404 {object} ErrorResponse
// @Router /equipment/detail [get]
func (h *EquipmentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	equipmentID, ok := GetQueryParam(r, w, "equipment_id")
	if !ok {
		return
	}

	e, err := h.svc.Get(r.Context(), equipmentID)
	if err != nil {
		respondServiceError(w, r, "Get equipment", err)
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// HandleListForOwner returns an owner's equipment
// @Summary List equipment for owner
// @Tags equipment
// @Produce json
// @Param owner_id query string true "Owner user ID"
// @Success 200 {array} domain.Equipment
// @Router /equipment [get]
func (h *EquipmentHandler) HandleListForOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetQueryParam(r, w, "owner_id")
	if !ok {
		return
	}

	items, err := h.svc.ListForOwner(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, r, "List equipment", err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// HandleChangeStatus moves equipment through its lifecycle
// @Summary Change equipment status
// @Tags equipment
// @Accept json
// @Produce json
// @Param request body ChangeEquipmentStatusRequest true "Status change"
// @Success 200 {object} domain.Equipment
// @Failure 409 {object} ErrorResponse
// @Router /equipment/status [post]
func (h *EquipmentHandler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	var req ChangeEquipmentStatusRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Change equipment status"); err != nil {
		return
	}

	e, err := h.svc.ChangeStatus(r.Context(), req.EquipmentID, req.Status)
	if err != nil {
		respondServiceError(w, r, "Change equipment status", err)
		return
	}

	logger.FromContext(r.Context()).Info("Equipment status changed",
		"equipment_id", e.ID, "status", e.Status)
	respondJSON(w, http.StatusOK, e)
}
