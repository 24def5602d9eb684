package domain

import (
	"strconv"
	"time"
)

type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeSystem MessageType = "system"
	MessageTypeEmoji  MessageType = "emoji"
)

// Message is an immutable event once created: it is never edited or deleted,
// and IsRead only ever transitions false to true. Username and UserAvatar are
// snapshots of the sender at send time and are intentionally never re-resolved.
type Message struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	Username   string      `json:"username"`
	UserAvatar string      `json:"userAvatar"`
	Content    string      `json:"content"`
	Timestamp  time.Time   `json:"timestamp"`
	RoomID     string      `json:"roomId"`
	IsRead     bool        `json:"isRead"`
	Type       MessageType `json:"messageType"`
}

func NewTextMessage(sender *User, roomID, content string, isRead bool) *Message {
	now := time.Now()
	return &Message{
		ID:         NewMessageID(now),
		UserID:     sender.ID,
		Username:   sender.Username,
		UserAvatar: sender.Avatar,
		Content:    content,
		Timestamp:  now,
		RoomID:     roomID,
		IsRead:     isRead,
		Type:       MessageTypeText,
	}
}

// NewMessageID derives a creation-time message ID. Millisecond resolution is
// unique enough for a single-user session.
func NewMessageID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
