package handler

import (
	"net/http"
	"time"

	"github.com/farmfit/farmfit/internal/chat"
)

// CreateRoomRequest represents a room creation request
type CreateRoomRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=100"`
	Topic     string `json:"topic" validate:"max=200"`
	CreatorID string `json:"creator_id" validate:"required"`
}

// RoomMembershipRequest represents a join or leave request
type RoomMembershipRequest struct {
	RoomID string `json:"room_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
}

// PostMessageRequest represents a new chat message
type PostMessageRequest struct {
	RoomID string `json:"room_id" validate:"required"`
	UserID string `json:"user_id" validate:"required"`
	Body   string `json:"body" validate:"required"`
}

// ChatHandler handles community chat HTTP requests
type ChatHandler struct {
	svc chat.Service
}

// NewChatHandler creates a new chat handler
func NewChatHandler(svc chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// HandleCreateRoom creates a chat room
// @Summary Create chat room
// @Tags chat
// @Accept json
// @Produce json
// @Param request body CreateRoomRequest true "Room"
// @Success 201 {object} domain.ChatRoom
// @Failure 400 {object} ErrorResponse
// @Router /chat/rooms [post]
func (h *ChatHandler) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create room"); err != nil {
		return
	}

	room, err := h.svc.CreateRoom(r.Context(), req.Name, req.Topic, req.CreatorID)
	if err != nil {
		respondServiceError(w, r, "Create room", err)
		return
	}
	respondJSON(w, http.StatusCreated, room)
}

// HandleListRooms lists all chat rooms
// @Summary List chat rooms
// @Tags chat
// @Produce json
// @Success 200 {array} domain.ChatRoom
// @Router /chat/rooms [get]
func (h *ChatHandler) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.ListRooms(r.Context())
	if err != nil {
		respondServiceError(w, r, "List rooms", err)
		return
	}
	respondJSON(w, http.StatusOK, rooms)
}

// HandleJoinRoom adds the user to a room
// @Summary Join chat room
// @Tags chat
// @Accept json
// @Produce json
// @Param request body RoomMembershipRequest true "Membership"
// @Success 200 {object} SuccessResponse
// @Router /chat/rooms/join [post]
func (h *ChatHandler) HandleJoinRoom(w http.ResponseWriter, r *http.Request) {
	var req RoomMembershipRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Join room"); err != nil {
		return
	}

	if err := h.svc.JoinRoom(r.Context(), req.RoomID, req.UserID); err != nil {
		respondServiceError(w, r, "Join room", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "joined room"})
}

// HandleLeaveRoom removes the user from a room
// @Summary Leave chat room
// @Tags chat
// @Accept json
// @Produce json
// @Param request body RoomMembershipRequest true "Membership"
// @Success 200 {object} SuccessResponse
// @Router /chat/rooms/leave [post]
func (h *ChatHandler) HandleLeaveRoom(w http.ResponseWriter, r *http.Request) {
	var req RoomMembershipRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Leave room"); err != nil {
		return
	}

	if err := h.svc.LeaveRoom(r.Context(), req.RoomID, req.UserID); err != nil {
		respondServiceError(w, r, "Leave room", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "left room"})
}

// HandlePostMessage posts a message to a room
// @Summary Post chat message
// @Tags chat
// @Accept json
// @Produce json
// @Param request body PostMessageRequest true "Message"
// @Success 201 {object} domain.ChatMessage
// @Failure 403 {object} ErrorResponse
// @Router /chat/messages [post]
func (h *ChatHandler) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	var req PostMessageRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Post message"); err != nil {
		return
	}

	msg, err := h.svc.PostMessage(r.Context(), req.RoomID, req.UserID, req.Body)
	if err != nil {
		respondServiceError(w, r, "Post message", err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

// HandleGetMessages returns room history, newest first
// @Summary Get chat messages
// @Tags chat
// @Produce json
// @Param room_id query string true "Room ID"
// @Param user_id query string true "User ID"
// @Param before query string false "RFC3339 cursor"
// @Param limit query int false "Page size"
// @Success 200 {array} domain.ChatMessage
// @Failure 403 {object} ErrorResponse
// @Router /chat/messages [get]
func (h *ChatHandler) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	roomID, ok := GetQueryParam(r, w, "room_id")
	if !ok {
		return
	}
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	var before time.Time
	if raw := r.URL.Query().Get("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "before must be RFC3339")
			return
		}
		before = parsed
	}
	limit := GetOptionalIntParam(r, "limit", 0)

	messages, err := h.svc.GetMessages(r.Context(), roomID, userID, before, limit)
	if err != nil {
		respondServiceError(w, r, "Get messages", err)
		return
	}
	respondJSON(w, http.StatusOK, messages)
}
