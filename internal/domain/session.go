package domain

import (
	"context"
	"time"
)

// DefaultSessionTTL is the lifetime of a session when the caller does not
// specify one.
const DefaultSessionTTL = 24 * time.Hour

// Session is a bearer-token authentication record. A user may hold several
// live sessions at once; logging in never revokes earlier sessions.
// Expired sessions are inert and may linger in storage until swept.
type Session struct {
	UserID    string
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at time now.
// A session whose ExpiresAt equals now is already expired.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionRepository manages session lifecycle. ResolveToken returns
// ErrNotFound for missing, garbled, or expired tokens; it never fails on
// an expected miss. Sweeping is not scheduled here — an external timer
// must call SweepExpired periodically.
type SessionRepository interface {
	Create(ctx context.Context, userID, token string, ttl time.Duration) (*Session, error)
	ResolveToken(ctx context.Context, token string) (string, error)
	Invalidate(ctx context.Context, token string) error
	InvalidateAll(ctx context.Context, userID string) error
	SweepExpired(ctx context.Context) (int, error)
}
