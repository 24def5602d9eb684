package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/parleyhq/chat-engine/internal/domain"
	"github.com/parleyhq/chat-engine/internal/logger"
	"github.com/parleyhq/chat-engine/internal/storage"
)

// Ledger is the append-only ordered message sequence for all rooms. Insertion
// order is chronological order; messages are never reordered, edited or
// deleted. The whole sequence is written through to the store on every
// mutation, but storage failures are logged and swallowed — the in-memory
// view stays authoritative for the session.
type Ledger struct {
	store storage.Store
	log   zerolog.Logger
	rooms map[string]bool

	mu       sync.RWMutex
	messages []*domain.Message
}

func NewLedger(store storage.Store, rooms []*domain.Room) *Ledger {
	roomIDs := make(map[string]bool, len(rooms))
	for _, r := range rooms {
		roomIDs[r.ID] = true
	}
	return &Ledger{
		store: store,
		log:   logger.Module("ledger"),
		rooms: roomIDs,
	}
}

// Load replaces the ledger content with the persisted sequence, falling back
// to the given seed set when nothing is stored or the stored data does not
// decode into well-formed messages.
func (l *Ledger) Load(ctx context.Context, fallback []*domain.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, err := l.store.Get(ctx, storage.KeyMessages)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.log.Warn().Err(err).Msg("failed to read persisted messages")
		}
		l.messages = append([]*domain.Message(nil), fallback...)
		return
	}

	var decoded []*domain.Message
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		l.log.Warn().Err(err).Msg("persisted messages are corrupt, using seed data")
		l.messages = append([]*domain.Message(nil), fallback...)
		return
	}
	if err := validateMessages(decoded); err != nil {
		l.log.Warn().Err(err).Msg("persisted messages failed validation, using seed data")
		l.messages = append([]*domain.Message(nil), fallback...)
		return
	}

	l.messages = decoded
}

// Append adds a message at the tail and persists the updated sequence. The
// message must target a configured room and carry non-blank content; callers
// trim content before constructing messages.
func (l *Ledger) Append(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return fmt.Errorf("nil message")
	}
	if !l.rooms[msg.RoomID] {
		return fmt.Errorf("unknown room %q", msg.RoomID)
	}
	if strings.TrimSpace(msg.Content) == "" {
		return fmt.Errorf("blank message content")
	}

	l.mu.Lock()
	l.messages = append(l.messages, msg)
	l.mu.Unlock()

	l.persist(ctx)
	return nil
}

// MarkRoomRead flags every message in the room not authored by excludeUserID
// as read, then persists. Calling it again is a no-op on the ledger state.
func (l *Ledger) MarkRoomRead(ctx context.Context, roomID, excludeUserID string) {
	l.mu.Lock()
	for _, msg := range l.messages {
		if msg.RoomID == roomID && msg.UserID != excludeUserID {
			msg.IsRead = true
		}
	}
	l.mu.Unlock()

	l.persist(ctx)
}

// ByRoom returns the room's messages in ledger order.
func (l *Ledger) ByRoom(roomID string) []*domain.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []*domain.Message
	for _, msg := range l.messages {
		if msg.RoomID == roomID {
			out = append(out, msg)
		}
	}
	return out
}

// All returns the full sequence in ledger order.
func (l *Ledger) All() []*domain.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]*domain.Message(nil), l.messages...)
}

func (l *Ledger) persist(ctx context.Context) {
	l.mu.RLock()
	raw, err := json.Marshal(l.messages)
	l.mu.RUnlock()

	if err != nil {
		l.log.Warn().Err(err).Msg("failed to encode messages")
		return
	}
	if err := l.store.Set(ctx, storage.KeyMessages, string(raw)); err != nil {
		l.log.Warn().Err(err).Msg("failed to persist messages")
	}
}

// validateMessages rejects the whole batch when any record is malformed;
// partially accepting a corrupt ledger is worse than falling back to seed.
func validateMessages(messages []*domain.Message) error {
	for i, msg := range messages {
		if msg == nil {
			return fmt.Errorf("message %d is null", i)
		}
		if msg.ID == "" || msg.UserID == "" || msg.RoomID == "" {
			return fmt.Errorf("message %d is missing identity fields", i)
		}
		if strings.TrimSpace(msg.Content) == "" {
			return fmt.Errorf("message %d has blank content", i)
		}
		if msg.Timestamp.IsZero() {
			return fmt.Errorf("message %d has no timestamp", i)
		}
	}
	return nil
}
