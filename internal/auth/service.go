package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/parleyhq/chat-engine/internal/domain"
	"github.com/parleyhq/chat-engine/internal/logger"
	"github.com/parleyhq/chat-engine/internal/storage"
)

const minPasswordLength = 3

// Service is the identity provider: it answers who the current user is and
// handles login, registration, logout and presence updates. The session token
// is a boolean flag plus a serialized user record in the key-value store.
type Service struct {
	store storage.Store
	log   zerolog.Logger

	mu        sync.RWMutex
	roster    []*domain.User
	passwords map[string][]byte // email -> bcrypt hash, registered users only
}

// NewService creates an identity provider over the given roster. Seed users
// carry no password hash and accept any password of the minimum length.
func NewService(store storage.Store, roster []*domain.User) *Service {
	return &Service{
		store:     store,
		log:       logger.Module("auth"),
		roster:    roster,
		passwords: make(map[string][]byte),
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *domain.User
	for _, u := range s.roster {
		if u.Email == email {
			user = u
			break
		}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	// Registered users must present the password they signed up with
	if hash, ok := s.passwords[email]; ok {
		if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
	}

	user.SetPresence(true)
	s.persistSession(ctx, user)

	return user, nil
}

func (s *Service) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.roster {
		if u.Email == email {
			return nil, ErrDuplicateUser
		}
	}

	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	avatar := fmt.Sprintf("https://placehold.co/40x40?text=%s", username)
	user := domain.NewUser(uuid.NewString(), username, email, avatar)

	s.roster = append(s.roster, user)
	s.passwords[email] = hash
	s.persistSession(ctx, user)

	return user, nil
}

func (s *Service) Logout(ctx context.Context) {
	if err := s.store.Remove(ctx, storage.KeyAuth); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear auth flag")
	}
	if err := s.store.Remove(ctx, storage.KeyUser); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear user record")
	}
}

// CurrentUser returns the persisted user record, or nil when nobody is logged
// in or the stored record cannot be decoded.
func (s *Service) CurrentUser(ctx context.Context) *domain.User {
	flag, err := s.store.Get(ctx, storage.KeyAuth)
	if err != nil || flag != "true" {
		return nil
	}

	raw, err := s.store.Get(ctx, storage.KeyUser)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn().Err(err).Msg("failed to read user record")
		}
		return nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Warn().Err(err).Msg("stored user record is corrupt")
		return nil
	}
	return &user
}

func (s *Service) IsAuthenticated(ctx context.Context) bool {
	flag, err := s.store.Get(ctx, storage.KeyAuth)
	return err == nil && flag == "true"
}

// UpdatePresence mutates the stored current user's presence fields. A missing
// session is a no-op.
func (s *Service) UpdatePresence(ctx context.Context, isOnline bool) {
	user := s.CurrentUser(ctx)
	if user == nil {
		return
	}

	user.SetPresence(isOnline)
	s.persistUser(ctx, user)
}

func (s *Service) persistSession(ctx context.Context, user *domain.User) {
	if err := s.store.Set(ctx, storage.KeyAuth, "true"); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist auth flag")
	}
	s.persistUser(ctx, user)
}

func (s *Service) persistUser(ctx context.Context, user *domain.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode user record")
		return
	}
	if err := s.store.Set(ctx, storage.KeyUser, string(raw)); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist user record")
	}
}
