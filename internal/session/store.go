package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound marks an absent or expired session value.
var ErrNotFound = errors.New("session: value not found")

// Store is the persistence surface shared by the per-session state owners
// (cart snapshot, search query, last order payload, admin credentials).
// Implementations: Redis (default) and embedded sqlite.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

func CartKey(sessionID string) string {
	return "cart:" + sessionID
}

func SearchKey(sessionID string) string {
	return "search:" + sessionID
}

func LastOrderKey(sessionID string) string {
	return "last_order:" + sessionID
}

func AdminKey(sessionID string) string {
	return "admin_session:" + sessionID
}
