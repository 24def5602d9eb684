package chat

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/parleyhq/chat-engine/internal/auth"
	"github.com/parleyhq/chat-engine/internal/domain"
	"github.com/parleyhq/chat-engine/internal/logger"
	"github.com/parleyhq/chat-engine/internal/storage"
)

// SeedData is the static configuration a session starts from, standing in for
// a backend-provided initial dataset.
type SeedData struct {
	Users         []*domain.User
	Rooms         []*domain.Room
	Messages      []*domain.Message
	CannedReplies []string
}

// SessionConfig tunes the session's temporal behavior. The zero value gets
// production defaults; tests shrink the timeouts.
type SessionConfig struct {
	TypingTimeout time.Duration
	Simulator     SimulatorConfig
	Rand          *rand.Rand
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		TypingTimeout: TypingTimeout,
		Simulator:     DefaultSimulatorConfig(),
	}
}

// Session owns the single mutable view of chat state for one logged-in
// participant and routes every mutation through its methods. It is the only
// writer: API calls and timer callbacks alike complete their mutation before
// the next one is admitted.
type Session struct {
	store    storage.Store
	identity *auth.Service
	bus      domain.EventBus
	seed     SeedData
	log      zerolog.Logger

	ledger *Ledger
	unread *UnreadCounter
	typing *TypingTracker
	sim    *Simulator
	sched  *Scheduler

	mu          sync.RWMutex
	initialized bool
	closed      bool
	currentUser *domain.User
	currentRoom *domain.Room
	users       []*domain.User
	rooms       []*domain.Room
}

func NewSession(store storage.Store, identity *auth.Service, bus domain.EventBus, seed SeedData, cfg SessionConfig) *Session {
	if cfg.Simulator == (SimulatorConfig{}) {
		cfg.Simulator = DefaultSimulatorConfig()
	}

	s := &Session{
		store:    store,
		identity: identity,
		bus:      bus,
		seed:     seed,
		log:      logger.Module("session"),
		unread:   NewUnreadCounter(),
		sched:    NewScheduler(),
		users:    seed.Users,
		rooms:    seed.Rooms,
	}

	s.ledger = NewLedger(store, seed.Rooms)
	s.typing = NewTypingTracker(cfg.TypingTimeout, s.sched, func(userID string, isTyping bool) {
		s.bus.Publish(domain.TypingChangedEvent{
			UserID:    userID,
			IsTyping:  isTyping,
			EventTime: time.Now(),
		})
	})
	s.sim = newSimulator(cfg.Simulator, s, s.sched, seed.CannedReplies, cfg.Rand)

	return s
}

// Initialize bootstraps the session: resolve the current user, load the
// persisted ledger (seed on missing or corrupt data), derive unread counts
// and select the first configured room. Calling it again is a no-op.
func (s *Session) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return
	}
	s.initialized = true
	if len(s.rooms) > 0 {
		s.currentRoom = s.rooms[0]
	}
	s.mu.Unlock()

	s.ledger.Load(ctx, s.seed.Messages)
	s.RefreshIdentity(ctx)

	s.log.Info().Int("messages", len(s.ledger.All())).Msg("session initialized")
}

// RefreshIdentity re-reads the current user from the identity provider and
// re-derives the unread counts against it. Called by Initialize and after
// login or logout.
func (s *Session) RefreshIdentity(ctx context.Context) {
	user := s.identity.CurrentUser(ctx)

	s.mu.Lock()
	s.currentUser = user
	s.mu.Unlock()

	var userID string
	if user != nil {
		userID = user.ID
	}
	s.unread.DeriveFrom(s.ledger.All(), s.rooms, userID)
}

// SwitchRoom makes the room current and marks its messages read. A nil room
// is a no-op.
func (s *Session) SwitchRoom(ctx context.Context, room *domain.Room) {
	if room == nil {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.currentRoom = room
	var userID string
	if s.currentUser != nil {
		userID = s.currentUser.ID
	}
	s.mu.Unlock()

	s.ledger.MarkRoomRead(ctx, room.ID, userID)
	s.unread.OnRoomActivated(room.ID)

	s.bus.Publish(domain.RoomSwitchedEvent{Room: room, EventTime: time.Now()})
	s.bus.Publish(domain.MessageReadEvent{RoomID: room.ID, EventTime: time.Now()})
}

// SendMessage appends a user-authored message to the current room and arms
// exactly one simulator trigger. Missing user, missing room or blank content
// make it a silent no-op; callers pre-validate through UI affordances.
func (s *Session) SendMessage(ctx context.Context, content string) *domain.Message {
	content = strings.TrimSpace(content)

	s.mu.RLock()
	user, room, closed := s.currentUser, s.currentRoom, s.closed
	s.mu.RUnlock()

	if closed || user == nil || room == nil || content == "" {
		return nil
	}

	// Self-authored messages are read by definition
	msg := domain.NewTextMessage(user, room.ID, content, true)
	s.addMessage(ctx, msg)

	s.sim.ScheduleTrigger()
	return msg
}

// SetTyping forwards to the typing tracker. Inert after Close.
func (s *Session) SetTyping(userID string, isTyping bool) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return
	}

	s.typing.SetTyping(userID, isTyping)
}

// SearchMessages queries the ledger for the given substring.
func (s *Session) SearchMessages(query string) []*domain.Message {
	return SearchMessages(s.ledger.All(), query)
}

// UpdatePresence updates the current user's presence and persists it through
// the identity provider.
func (s *Session) UpdatePresence(ctx context.Context, isOnline bool) {
	s.mu.Lock()
	user := s.currentUser
	if user != nil {
		user.SetPresence(isOnline)
	}
	s.mu.Unlock()

	if user == nil {
		return
	}

	s.identity.UpdatePresence(ctx, isOnline)
	s.bus.Publish(domain.PresenceUpdatedEvent{
		UserID:    user.ID,
		IsOnline:  isOnline,
		EventTime: time.Now(),
	})
}

// Close tears the session down: every pending timer is cancelled and late
// callbacks become no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.sched.Close()
}

// CurrentUser returns the logged-in user, or nil before identity resolves.
func (s *Session) CurrentUser() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUser
}

func (s *Session) CurrentRoom() *domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentRoom
}

func (s *Session) Rooms() []*domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Room(nil), s.rooms...)
}

func (s *Session) Users() []*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.User(nil), s.users...)
}

// RoomByID resolves a configured room, or nil.
func (s *Session) RoomByID(id string) *domain.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rooms {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// UserByID resolves a roster user, or nil.
func (s *Session) UserByID(id string) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Messages returns the room's messages in ledger order.
func (s *Session) Messages(roomID string) []*domain.Message {
	return s.ledger.ByRoom(roomID)
}

func (s *Session) UnreadCounts() map[string]int {
	return s.unread.Counts()
}

func (s *Session) UnreadCount(roomID string) int {
	return s.unread.Count(roomID)
}

// TypingUsers returns the users currently typing.
func (s *Session) TypingUsers() map[string]bool {
	return s.typing.Typing()
}

// addMessage is the single ingestion path for both user-authored and
// simulated messages: append to the ledger, maintain the unread counts
// against the room active right now, publish the event.
func (s *Session) addMessage(ctx context.Context, msg *domain.Message) {
	if err := s.ledger.Append(ctx, msg); err != nil {
		s.log.Warn().Err(err).Msg("message rejected")
		return
	}

	s.mu.RLock()
	var activeRoomID, userID string
	if s.currentRoom != nil {
		activeRoomID = s.currentRoom.ID
	}
	if s.currentUser != nil {
		userID = s.currentUser.ID
	}
	s.mu.RUnlock()

	s.unread.OnMessageAppended(msg, activeRoomID, userID)

	s.bus.Publish(domain.MessageAppendedEvent{Message: msg, EventTime: time.Now()})
}

// deliverSimulated lands a simulated peer reply. The session may have been
// torn down since the reply was scheduled; that makes this a silent no-op.
func (s *Session) deliverSimulated(msg *domain.Message) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return
	}

	s.addMessage(context.Background(), msg)
}

// simulationState is the snapshot the simulator decides on.
func (s *Session) simulationState() (*domain.Room, *domain.User, []*domain.User) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, nil, nil
	}
	return s.currentRoom, s.currentUser, s.users
}
