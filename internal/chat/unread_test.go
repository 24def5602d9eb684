package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parleyhq/chat-engine/internal/domain"
)

func TestUnreadCounterDeriveFrom(t *testing.T) {
	rooms := testRooms()
	messages := []*domain.Message{
		testMessage("1", "me", "general", "mine unread", false),      // own, never counts
		testMessage("2", "other", "general", "theirs unread", false), // counts
		testMessage("3", "other", "general", "theirs read", true),
		testMessage("4", "other", "technology", "tech unread", false), // counts
	}

	c := NewUnreadCounter()
	c.DeriveFrom(messages, rooms, "me")

	assert.Equal(t, 1, c.Count("general"))
	assert.Equal(t, 1, c.Count("technology"))
}

func TestUnreadCounterOnMessageAppended(t *testing.T) {
	t.Run("QualifyingInboundIncrementsByOne", func(t *testing.T) {
		c := NewUnreadCounter()
		for i := 0; i < 3; i++ {
			c.OnMessageAppended(testMessage("x", "other", "technology", "hi", false), "general", "me")
		}
		assert.Equal(t, 3, c.Count("technology"))
	})

	t.Run("ActiveRoomNeverIncrements", func(t *testing.T) {
		c := NewUnreadCounter()
		c.OnMessageAppended(testMessage("x", "other", "general", "hi", false), "general", "me")
		assert.Equal(t, 0, c.Count("general"))
	})

	t.Run("OwnMessageNeverIncrements", func(t *testing.T) {
		c := NewUnreadCounter()
		c.OnMessageAppended(testMessage("x", "me", "technology", "hi", true), "general", "me")
		assert.Equal(t, 0, c.Count("technology"))
	})
}

func TestUnreadCounterOnRoomActivated(t *testing.T) {
	c := NewUnreadCounter()
	for i := 0; i < 5; i++ {
		c.OnMessageAppended(testMessage("x", "other", "technology", "hi", false), "general", "me")
	}
	assert.Equal(t, 5, c.Count("technology"))

	c.OnRoomActivated("technology")
	assert.Equal(t, 0, c.Count("technology"))

	// Activating an untouched room keeps it at zero, never negative
	c.OnRoomActivated("technology")
	assert.Equal(t, 0, c.Count("technology"))
}

func TestUnreadCounterCountsSnapshot(t *testing.T) {
	c := NewUnreadCounter()
	c.OnMessageAppended(testMessage("x", "other", "technology", "hi", false), "general", "me")

	counts := c.Counts()
	counts["technology"] = 99

	assert.Equal(t, 1, c.Count("technology"), "snapshot mutation must not leak back")
}
