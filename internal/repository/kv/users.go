package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/store"
)

// dependentPurge is a collection whose entries are purged by owner key
// when the owner is deleted. Both duplicate-capable collection types
// satisfy it.
type dependentPurge interface {
	RemoveAllTx(tx *store.Tx, key string) error
	Name() string
}

// UserRepository implements domain.UserRepository over the store. User
// creation and deletion run as atomic units so the email index, the
// user's sessions, and the user's data records never disagree with the
// user record itself.
type UserRepository struct {
	store  *store.Store
	users  store.Collection[domain.User]
	emails store.Index

	// dependents are purged by user id inside the deletion's atomic
	// unit. This is the one mandatory cross-collection cascade.
	dependents []dependentPurge
}

// NewUserRepository creates a store-backed UserRepository.
func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{
		store:  s,
		users:  store.NewCollection[domain.User](s, store.CollectionUsers),
		emails: store.NewIndex(s, store.CollectionEmailIndex),
		dependents: []dependentPurge{
			store.NewDupCollection[domain.Session](s, store.CollectionSessions),
			store.NewDupCollection[domain.DataRecord](s, store.CollectionData),
		},
	}
}

// Create stores the user and its email index entry as one atomic unit.
// The id and timestamps are assigned here when unset.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = newID("user")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.UpdatedAt = user.CreatedAt

	err := r.store.RunAtomic(ctx, func(tx *store.Tx) error {
		if err := r.users.PutTx(tx, user.ID, user); err != nil {
			return err
		}
		return r.emails.PutTx(tx, user.Email, user.ID)
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.users.Get(ctx, id)
}

// GetByEmail resolves a user through the email index. The index tolerates
// duplicates and orphans, so the first association whose user record still
// exists and carries this email wins.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ids, err := r.emails.Lookup(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	for _, id := range ids {
		user, err := r.users.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue // orphaned index entry
		}
		if err != nil {
			return nil, err
		}
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Update merges the patch into the stored user field by field and
// refreshes UpdatedAt. Returns ErrNotFound when the id is absent.
func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) error {
	user, err := r.users.Get(ctx, id)
	if err != nil {
		return err
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Type != nil {
		user.Type = *patch.Type
	}
	if patch.Address != nil {
		user.Address = *patch.Address
	}
	if patch.Skills != nil {
		user.Skills = *patch.Skills
	}
	if patch.Reputation != nil {
		user.Reputation = *patch.Reputation
	}
	user.UpdatedAt = time.Now().UTC()

	return r.users.Put(ctx, id, user)
}

// Delete removes the user, its email index entry, and every dependent
// record in one atomic unit. Either the whole cascade lands or none of it.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	user, err := r.users.Get(ctx, id)
	if err != nil {
		return err
	}

	err = r.store.RunAtomic(ctx, func(tx *store.Tx) error {
		if err := r.users.RemoveTx(tx, id); err != nil {
			return err
		}
		if err := r.emails.RemoveTx(tx, user.Email, id); err != nil {
			return err
		}
		for _, dep := range r.dependents {
			if err := dep.RemoveAllTx(tx, id); err != nil {
				return fmt.Errorf("purge %s: %w", dep.Name(), err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
