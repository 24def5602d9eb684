package domain

import "time"

// Room is a topic channel. Rooms are read-only configuration for the engine;
// they are not created or destroyed at runtime.
type Room struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	MemberCount  int       `json:"memberCount"`
	LastActivity time.Time `json:"lastActivity"`
}
