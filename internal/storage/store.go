package storage

import (
	"context"
	"errors"
)

// Well-known keys shared with the web client this engine was ported from.
const (
	KeyMessages = "chat-app-messages"
	KeyAuth     = "chat-app-auth"
	KeyUser     = "chat-app-user"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is the key-value persistence capability injected into the engine.
// The engine treats it as a best-effort cache: the in-memory state stays
// authoritative when writes fail.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
