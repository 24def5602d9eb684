package cli

import "time"

// Mode represents the CLI operation mode
type Mode string

const (
	ModeInteractive Mode = "interactive"
	ModeHeadless    Mode = "headless"
)

// Request represents a JSON request in headless mode
type Request struct {
	ID      string                 `json:"id,omitempty"`
	Command string                 `json:"command"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// Response represents a JSON response in headless mode
type Response struct {
	ID      string      `json:"id,omitempty"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Event represents a real-time event in headless mode
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// RoomInfo represents room information for responses
type RoomInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	MemberCount  int       `json:"member_count"`
	UnreadCount  int       `json:"unread_count"`
	LastActivity time.Time `json:"last_activity"`
	Active       bool      `json:"active"`
}

// MessageInfo represents message information for responses
type MessageInfo struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	IsMine    bool      `json:"is_mine"`
	IsRead    bool      `json:"is_read"`
}

// UserInfo represents roster information for responses
type UserInfo struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsOnline bool      `json:"is_online"`
	IsTyping bool      `json:"is_typing"`
	LastSeen time.Time `json:"last_seen"`
}

// SessionStatus represents session state for responses
type SessionStatus struct {
	LoggedIn    bool   `json:"logged_in"`
	Username    string `json:"username,omitempty"`
	CurrentRoom string `json:"current_room,omitempty"`
	Status      string `json:"status"`
}
