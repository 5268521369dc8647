package domain

import (
	"context"
	"time"
)

// UserType describes the role a user plays on the platform.
type UserType string

const (
	UserTypeInnovator UserType = "innovator"
	UserTypeExecutor  UserType = "executor"
	UserTypeFunder    UserType = "funder"
	UserTypeHybrid    UserType = "hybrid"
)

// User represents a registered user. Exactly one live user exists per
// email; the email index and the user record must never disagree about
// existence.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Bio          string
	Type         UserType
	Address      string
	Skills       []string
	Reputation   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch is a partial update to a user's profile. Nil fields are left
// unchanged. Email is deliberately not patchable: the email index is keyed
// on it, and changing it outside an atomic reindex would orphan the entry.
type UserPatch struct {
	Name       *string
	Bio        *string
	Type       *UserType
	Address    *string
	Skills     *[]string
	Reputation *int
}

// UserRepository defines persistence operations for users. Create and
// Delete keep the email index consistent with the user record inside a
// single atomic unit; Delete also cascades to the user's sessions and
// data records.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id string, patch UserPatch) error
	Delete(ctx context.Context, id string) error
}
