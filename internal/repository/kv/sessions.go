package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/store"
)

// errStopScan aborts a scan early once a match is found.
var errStopScan = errors.New("stop scan")

// SessionRepository implements domain.SessionRepository. Sessions are
// stored in a duplicate-capable collection keyed by user id, so a user may
// hold any number of live sessions at once. Token resolution is a linear
// scan; there is no token index at this scale.
type SessionRepository struct {
	sessions store.DupCollection[domain.Session]
}

// NewSessionRepository creates a store-backed SessionRepository.
func NewSessionRepository(s *store.Store) *SessionRepository {
	return &SessionRepository{
		sessions: store.NewDupCollection[domain.Session](s, store.CollectionSessions),
	}
}

// Create stores a session expiring after ttl. It never revokes prior
// sessions for the user. A non-positive ttl yields a session that is
// already expired, which resolve treats as absent.
func (r *SessionRepository) Create(ctx context.Context, userID, token string, ttl time.Duration) (*domain.Session, error) {
	now := time.Now().UTC()
	session := &domain.Session{
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := r.sessions.Add(ctx, userID, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// ResolveToken returns the user id behind a live session token. Missing,
// garbled, and expired tokens all resolve to ErrNotFound; an expired
// session found here is opportunistically deleted on the way out.
func (r *SessionRepository) ResolveToken(ctx context.Context, token string) (string, error) {
	session, err := r.findByToken(ctx, token)
	if err != nil {
		return "", err
	}

	if session.Expired(time.Now().UTC()) {
		// Inert either way; removing it now just spares the sweeper.
		if err := r.sessions.RemoveValue(ctx, session.UserID, session); err != nil {
			return "", fmt.Errorf("remove expired session: %w", err)
		}
		return "", domain.ErrNotFound
	}

	return session.UserID, nil
}

// Invalidate removes the session matching this exact token. Absent tokens
// are a no-op, not an error.
func (r *SessionRepository) Invalidate(ctx context.Context, token string) error {
	session, err := r.findByToken(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := r.sessions.RemoveValue(ctx, session.UserID, session); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

// InvalidateAll removes every session for the user.
func (r *SessionRepository) InvalidateAll(ctx context.Context, userID string) error {
	if err := r.sessions.RemoveAll(ctx, userID); err != nil {
		return fmt.Errorf("invalidate sessions: %w", err)
	}
	return nil
}

// SweepExpired removes every expired session and reports how many were
// removed. The store does not schedule this; an external timer must.
func (r *SessionRepository) SweepExpired(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	// Collect first: scan callbacks must not issue store operations.
	var expired []domain.Session
	err := r.sessions.Scan(ctx, func(_ string, s domain.Session) error {
		if s.Expired(now) {
			expired = append(expired, s)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}

	for i := range expired {
		if err := r.sessions.RemoveValue(ctx, expired[i].UserID, &expired[i]); err != nil {
			return 0, fmt.Errorf("sweep sessions: %w", err)
		}
	}
	return len(expired), nil
}

func (r *SessionRepository) findByToken(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNotFound
	}

	var found *domain.Session
	err := r.sessions.Scan(ctx, func(_ string, s domain.Session) error {
		if s.Token == token {
			found = &s
			return errStopScan
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopScan) {
		return nil, fmt.Errorf("scan sessions: %w", err)
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}
