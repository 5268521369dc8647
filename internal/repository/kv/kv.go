// Package kv implements the domain repositories and the session manager
// on top of the ordered key-value store. Repositories own id generation,
// timestamp stamping, query-time sorting, and the atomic units that keep
// the email index and dependent collections consistent with their primary
// records. They perform no cross-entity validation; that lives in the
// application layer.
package kv

import (
	"context"

	"github.com/google/uuid"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/store"
)

// newID returns an opaque, collision-free record id. The prefix only aids
// debugging; callers must treat ids as structureless.
func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// StatsRepository reports record counts across the core collections.
type StatsRepository struct {
	users    store.Collection[domain.User]
	sessions store.DupCollection[domain.Session]
	data     store.DupCollection[domain.DataRecord]
}

// NewStatsRepository creates a StatsRepository over the store.
func NewStatsRepository(s *store.Store) *StatsRepository {
	return &StatsRepository{
		users:    store.NewCollection[domain.User](s, store.CollectionUsers),
		sessions: store.NewDupCollection[domain.Session](s, store.CollectionSessions),
		data:     store.NewDupCollection[domain.DataRecord](s, store.CollectionData),
	}
}

func (r *StatsRepository) Stats(ctx context.Context) (domain.Stats, error) {
	users, err := r.users.Count(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	sessions, err := r.sessions.Count(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	data, err := r.data.Count(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{Users: users, Sessions: sessions, DataRecords: data}, nil
}
