package domain

import "time"

// ChatRoom is a named discussion room
type ChatRoom struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Topic     string    `json:"topic,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMember links a user to a room
type ChatMember struct {
	RoomID   string    `json:"room_id"`
	UserID   string    `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// ChatMessage is a message posted to a room
type ChatMessage struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`

	// Joined fields
	Username string `json:"username,omitempty"`
}

// MaxChatMessageLength caps message bodies
const MaxChatMessageLength = 2000
