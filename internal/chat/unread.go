package chat

import (
	"sync"

	"github.com/parleyhq/chat-engine/internal/domain"
)

// UnreadCounter maintains the per-room unread counts. Counts only move two
// ways: up by one per qualifying inbound message, or down to exactly zero
// when a room is activated or bulk-marked read. A count never goes negative.
type UnreadCounter struct {
	mu     sync.RWMutex
	counts map[string]int
}

func NewUnreadCounter() *UnreadCounter {
	return &UnreadCounter{
		counts: make(map[string]int),
	}
}

// DeriveFrom recomputes every room's count from ledger state: unread messages
// not authored by the current user.
func (c *UnreadCounter) DeriveFrom(messages []*domain.Message, rooms []*domain.Room, currentUserID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts = make(map[string]int, len(rooms))
	for _, room := range rooms {
		n := 0
		for _, msg := range messages {
			if msg.RoomID == room.ID && !msg.IsRead && msg.UserID != currentUserID {
				n++
			}
		}
		c.counts[room.ID] = n
	}
}

// OnMessageAppended bumps the room's count iff the message is a qualifying
// inbound one: not for the active room and not authored by the current user.
func (c *UnreadCounter) OnMessageAppended(msg *domain.Message, activeRoomID, currentUserID string) {
	if msg.RoomID == activeRoomID || msg.UserID == currentUserID {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[msg.RoomID]++
}

// OnRoomActivated pins the room's count at zero.
func (c *UnreadCounter) OnRoomActivated(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[roomID] = 0
}

func (c *UnreadCounter) Count(roomID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[roomID]
}

// Counts returns a snapshot of all per-room counts.
func (c *UnreadCounter) Counts() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]int, len(c.counts))
	for id, n := range c.counts {
		out[id] = n
	}
	return out
}
