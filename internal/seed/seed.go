// Package seed supplies the static tables that stand in for a backend-provided
// initial dataset: users, rooms, an initial message set, and the canned replies
// used by the activity simulator.
package seed

import (
	"time"

	"github.com/parleyhq/chat-engine/internal/domain"
)

// Users returns the seed participant roster. Each call returns fresh copies so
// callers can mutate presence fields without corrupting the tables.
func Users() []*domain.User {
	now := time.Now()
	return []*domain.User{
		{
			ID:       "1",
			Username: "Alex Chen",
			Email:    "alex@example.com",
			Avatar:   "https://placehold.co/40x40?text=AC",
			IsOnline: true,
			LastSeen: now,
			JoinedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       "2",
			Username: "Sarah Johnson",
			Email:    "sarah@example.com",
			Avatar:   "https://placehold.co/40x40?text=SJ",
			IsOnline: true,
			LastSeen: now,
			JoinedAt: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       "3",
			Username: "Marcus Rodriguez",
			Email:    "marcus@example.com",
			Avatar:   "https://placehold.co/40x40?text=MR",
			IsOnline: false,
			LastSeen: now.Add(-30 * time.Minute),
			JoinedAt: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       "4",
			Username: "Emma Wilson",
			Email:    "emma@example.com",
			Avatar:   "https://placehold.co/40x40?text=EW",
			IsOnline: true,
			LastSeen: now,
			JoinedAt: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       "5",
			Username: "David Kim",
			Email:    "david@example.com",
			Avatar:   "https://placehold.co/40x40?text=DK",
			IsOnline: false,
			LastSeen: now.Add(-2 * time.Hour),
			JoinedAt: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
		},
	}
}

// Rooms returns the configured topic channels, in display order. The first
// room is the default room for a fresh session.
func Rooms() []*domain.Room {
	now := time.Now()
	return []*domain.Room{
		{
			ID:           "general",
			Name:         "General",
			Description:  "General discussion and announcements",
			Icon:         "💬",
			MemberCount:  128,
			LastActivity: now,
		},
		{
			ID:           "technology",
			Name:         "Technology",
			Description:  "Tech discussions, programming, and innovation",
			Icon:         "💻",
			MemberCount:  89,
			LastActivity: now.Add(-15 * time.Minute),
		},
		{
			ID:           "random",
			Name:         "Random",
			Description:  "Off-topic conversations and fun stuff",
			Icon:         "🎲",
			MemberCount:  156,
			LastActivity: now.Add(-5 * time.Minute),
		},
		{
			ID:           "help",
			Name:         "Help & Support",
			Description:  "Get help and support from the community",
			Icon:         "🆘",
			MemberCount:  67,
			LastActivity: now.Add(-45 * time.Minute),
		},
		{
			ID:           "announcements",
			Name:         "Announcements",
			Description:  "Important updates and news",
			Icon:         "📢",
			MemberCount:  234,
			LastActivity: now.Add(-3 * time.Hour),
		},
	}
}

// Messages returns the initial ledger used when nothing has been persisted yet.
func Messages() []*domain.Message {
	now := time.Now()
	return []*domain.Message{
		{
			ID:         "1",
			UserID:     "2",
			Username:   "Sarah Johnson",
			UserAvatar: "https://placehold.co/32x32?text=SJ",
			Content:    "Welcome to the General chat room! Feel free to introduce yourself.",
			Timestamp:  now.Add(-time.Hour),
			RoomID:     "general",
			IsRead:     true,
			Type:       domain.MessageTypeText,
		},
		{
			ID:         "2",
			UserID:     "1",
			Username:   "Alex Chen",
			UserAvatar: "https://placehold.co/32x32?text=AC",
			Content:    "Thanks Sarah! Excited to be here. Has anyone tried the new React 19 features?",
			Timestamp:  now.Add(-45 * time.Minute),
			RoomID:     "general",
			IsRead:     true,
			Type:       domain.MessageTypeText,
		},
		{
			ID:         "3",
			UserID:     "4",
			Username:   "Emma Wilson",
			UserAvatar: "https://placehold.co/32x32?text=EW",
			Content:    "Yes! The new compiler is amazing. The performance improvements are noticeable.",
			Timestamp:  now.Add(-30 * time.Minute),
			RoomID:     "general",
			IsRead:     true,
			Type:       domain.MessageTypeText,
		},
		{
			ID:         "4",
			UserID:     "1",
			Username:   "Alex Chen",
			UserAvatar: "https://placehold.co/32x32?text=AC",
			Content:    "Anyone working on interesting side projects lately? 🚀",
			Timestamp:  now.Add(-15 * time.Minute),
			RoomID:     "general",
			IsRead:     false,
			Type:       domain.MessageTypeText,
		},
		{
			ID:         "5",
			UserID:     "2",
			Username:   "Sarah Johnson",
			UserAvatar: "https://placehold.co/32x32?text=SJ",
			Content:    "I'm building a chat app with Next.js! Still learning the ropes though.",
			Timestamp:  now.Add(-5 * time.Minute),
			RoomID:     "general",
			IsRead:     false,
			Type:       domain.MessageTypeText,
		},
		{
			ID:         "6",
			UserID:     "1",
			Username:   "Alex Chen",
			UserAvatar: "https://placehold.co/32x32?text=AC",
			Content:    "What's everyone's thoughts on the new TypeScript 5.4 features?",
			Timestamp:  now.Add(-20 * time.Minute),
			RoomID:     "technology",
			IsRead:     true,
			Type:       domain.MessageTypeText,
		},
		{
			ID:         "7",
			UserID:     "4",
			Username:   "Emma Wilson",
			UserAvatar: "https://placehold.co/32x32?text=EW",
			Content:    "The improved inference is a game changer for complex generic types!",
			Timestamp:  now.Add(-10 * time.Minute),
			RoomID:     "technology",
			IsRead:     false,
			Type:       domain.MessageTypeText,
		},
	}
}

// CannedReplies returns the fixed response table the activity simulator draws
// peer messages from.
func CannedReplies() []string {
	return []string{
		"That's really interesting! Tell me more.",
		"I totally agree with that perspective.",
		"Has anyone else experienced something similar?",
		"Great point! I hadn't thought of it that way.",
		"Thanks for sharing that resource!",
		"I'm curious to hear other opinions on this.",
		"That reminds me of a project I worked on recently.",
		"Absolutely! The documentation on this is really helpful.",
		"I've been meaning to try that approach.",
		"Interesting discussion! Keep it going 👍",
	}
}

// SystemMessages returns the phrases used for system-type messages.
func SystemMessages() []string {
	return []string{
		"joined the chat room",
		"left the chat room",
		"changed their status to online",
		"changed their status to away",
	}
}
