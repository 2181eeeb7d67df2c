package store

import (
	"context"
	"time"
)

// User is the identity record exposed to callers. The password hash never
// leaves the store in this shape.
type User struct {
	UserID    int       `json:"user_id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the login-time view of a user, hash included.
type Credentials struct {
	UserID       int
	Username     string
	PasswordHash string
	Role         string
}

// NewUser carries the fields required to register a user. PasswordHash
// must already be hashed by the caller.
type NewUser struct {
	Name         string
	Username     string
	Email        string
	PasswordHash string
}

// UserUpdate is a partial patch keyed by UserID. An empty PasswordHash
// keeps the stored hash untouched.
type UserUpdate struct {
	UserID       int
	Name         string
	Username     string
	Email        string
	PasswordHash string
}

// UserStore defines persistence for the user directory.
type UserStore interface {
	FindByID(ctx context.Context, id int) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	FindAll(ctx context.Context) ([]User, error)
	// FindCredentials returns the stored hash and role for a username.
	FindCredentials(ctx context.Context, username string) (Credentials, error)
	// Create inserts the user and attaches the given role as one atomic
	// unit. A taken username returns ErrConflict.
	Create(ctx context.Context, u NewUser, role string) (User, error)
	// Update applies a partial patch; ErrNotFound if the id is absent.
	Update(ctx context.Context, u UserUpdate) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int) (bool, error)
	// SetRoleByUsername overwrites the user's authority record.
	SetRoleByUsername(ctx context.Context, username, role string) error
}
