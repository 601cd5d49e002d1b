package handler

import (
	"net/http"
	"strconv"

	"github.com/farmfit/farmfit/internal/notification"
)

// NotificationHandler handles notification queries
type NotificationHandler struct {
	svc notification.Service
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// HandleList returns a user's notifications, newest first
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param user_id query string true "User ID"
// @Param unread_only query bool false "Only unread notifications"
// @Param limit query int false "Maximum entries"
// @Success 200 {array} domain.Notification
// @Router /notifications [get]
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	unreadOnly, _ := strconv.ParseBool(GetOptionalQueryParam(r, "unread_only", "false"))
	limit := GetOptionalIntParam(r, "limit", 0)

	notifications, err := h.svc.ListNotifications(r.Context(), userID, unreadOnly, limit)
	if err != nil {
		respondServiceError(w, r, "List notifications", err)
		return
	}
	respondJSON(w, http.StatusOK, notifications)
}

// MarkReadRequest marks a notification as read
type MarkReadRequest struct {
	NotificationID string `json:"notification_id" validate:"required"`
}

// HandleMarkRead marks a notification as read
// @Summary Mark notification read
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body MarkReadRequest true "Notification"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /notifications/read [post]
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	var req MarkReadRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Mark notification read"); err != nil {
		return
	}

	if err := h.svc.MarkRead(r.Context(), req.NotificationID); err != nil {
		respondServiceError(w, r, "Mark notification read", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "notification marked read"})
}
