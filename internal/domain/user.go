package domain

import "time"

// User is a chat participant. Identity fields are immutable after creation;
// only IsOnline and LastSeen change, via presence updates.
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar"`
	IsOnline bool      `json:"isOnline"`
	LastSeen time.Time `json:"lastSeen"`
	JoinedAt time.Time `json:"joinedAt"`
}

func NewUser(id, username, email, avatar string) *User {
	now := time.Now()
	return &User{
		ID:       id,
		Username: username,
		Email:    email,
		Avatar:   avatar,
		IsOnline: true,
		LastSeen: now,
		JoinedAt: now,
	}
}

// SetPresence updates the mutable presence fields in place.
func (u *User) SetPresence(isOnline bool) {
	u.IsOnline = isOnline
	u.LastSeen = time.Now()
}
