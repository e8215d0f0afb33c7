// Package session keeps one avatar per visitor between requests.
//
// A [Session] pairs a random ID with the visitor's current avatar. The
// [Store] interface has three backends:
//   - [MemoryStore]: in-process storage for a single server or tests
//   - [RedisStore]: shared storage for multi-instance deployments
//   - [FileStore]: JSON files, used by the CLI to remember the current avatar
//
// # Usage
//
//	store := session.NewMemoryStore()
//
//	sess := session.New(avatar.Default(), session.DefaultTTL)
//	if err := store.Set(ctx, sess); err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // Session not found or expired
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/avatarkit/pkg/avatar"
)

// ErrInvalidID is returned when a session ID is not a well-formed identifier.
var ErrInvalidID = errors.New("invalid session id")

// Session stores the avatar a visitor is editing.
type Session struct {
	ID        string        `json:"id"`
	Avatar    avatar.Config `json:"avatar"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	ExpiresAt time.Time     `json:"expires_at,omitzero"`
}

// IsExpired reports whether the session has passed its expiry.
// A session without an expiry never expires.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Update replaces the avatar and extends the expiry by ttl.
// A ttl of zero keeps the current expiry.
func (s *Session) Update(cfg avatar.Config, ttl time.Duration) {
	now := time.Now()
	s.Avatar = cfg
	s.UpdatedAt = now
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
}

// TTL returns the time left before expiry, or zero when the session does not
// expire or has already expired.
func (s *Session) TTL() time.Duration {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	return max(0, time.Until(s.ExpiresAt))
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (optional, may be no-op for Redis).
	Cleanup(ctx context.Context) error
}

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// GenerateID creates a random session ID.
func GenerateID() string {
	return uuid.NewString()
}

// ValidID reports whether id was produced by [GenerateID].
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// New creates a session holding cfg. A ttl of zero never expires.
func New(cfg avatar.Config, ttl time.Duration) *Session {
	now := time.Now()
	s := &Session{
		ID:        GenerateID(),
		Avatar:    cfg,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if ttl > 0 {
		s.ExpiresAt = now.Add(ttl)
	}
	return s
}
