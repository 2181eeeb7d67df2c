// Package users owns user identity: registration, credential
// verification, and the admin-facing directory operations.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/tv-tracker/internal/platform/auth"
	"github.com/example/tv-tracker/internal/store"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrBadCredentials  = errors.New("invalid credentials")
)

// RegisterRequest carries the registration payload. Password is plaintext
// here and hashed before it ever reaches a store.
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// UpdateRequest patches a user. A blank Password keeps the stored hash.
type UpdateRequest struct {
	UserID   int
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type Service struct {
	Users      store.UserStore
	BcryptCost int
}

func NewService(users store.UserStore) *Service {
	return &Service{Users: users, BcryptCost: bcrypt.DefaultCost}
}

func (s *Service) FindByID(ctx context.Context, id int) (store.User, error) {
	if id <= 0 {
		return store.User{}, fmt.Errorf("%w: user id must be positive", ErrInvalidArgument)
	}
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, fmt.Errorf("%w: id %d", ErrUserNotFound, id)
		}
		return store.User{}, fmt.Errorf("find user %d: %w", id, err)
	}
	return u, nil
}

func (s *Service) FindByUsername(ctx context.Context, username string) (store.User, error) {
	if strings.TrimSpace(username) == "" {
		return store.User{}, fmt.Errorf("%w: username must not be blank", ErrInvalidArgument)
	}
	u, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, fmt.Errorf("%w: username %q", ErrUserNotFound, username)
		}
		return store.User{}, fmt.Errorf("find user %q: %w", username, err)
	}
	return u, nil
}

func (s *Service) FindAll(ctx context.Context) ([]store.User, error) {
	out, err := s.Users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// Register validates the request, hashes the password, and persists the
// user together with the default ROLE_USER authority.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (store.User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return store.User{}, fmt.Errorf("%w: username is required", ErrInvalidArgument)
	}
	if req.Password == "" {
		return store.User{}, fmt.Errorf("%w: password is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(req.Email) == "" {
		return store.User{}, fmt.Errorf("%w: email is required", ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost())
	if err != nil {
		return store.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.Users.Create(ctx, store.NewUser{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}, auth.RoleUser)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return store.User{}, fmt.Errorf("%w: username %q", ErrUserExists, req.Username)
		}
		return store.User{}, fmt.Errorf("register user %q: %w", req.Username, err)
	}
	return u, nil
}

// Update patches the user. The password column is re-hashed and written
// only when a new non-blank value is supplied.
func (s *Service) Update(ctx context.Context, req UpdateRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidArgument)
	}
	if strings.TrimSpace(req.Username) == "" {
		return fmt.Errorf("%w: username must not be blank", ErrInvalidArgument)
	}

	patch := store.UserUpdate{
		UserID:   req.UserID,
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
	}
	if strings.TrimSpace(req.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost())
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = string(hash)
	}

	if err := s.Users.Update(ctx, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: id %d", ErrUserNotFound, req.UserID)
		}
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("%w: username %q", ErrUserExists, req.Username)
		}
		return fmt.Errorf("update user %d: %w", req.UserID, err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("%w: user id must be positive", ErrInvalidArgument)
	}
	deleted, err := s.Users.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}
	if !deleted {
		return false, fmt.Errorf("%w: id %d", ErrUserNotFound, id)
	}
	return true, nil
}

// VerifyCredentials implements auth.CredentialVerifier. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (auth.Identity, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return auth.Identity{}, ErrBadCredentials
	}
	creds, err := s.Users.FindCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return auth.Identity{}, ErrBadCredentials
		}
		return auth.Identity{}, fmt.Errorf("load credentials for %q: %w", username, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) != nil {
		return auth.Identity{}, ErrBadCredentials
	}
	return auth.Identity{UserID: creds.UserID, Username: creds.Username, Role: creds.Role}, nil
}

func (s *Service) cost() int {
	if s.BcryptCost == 0 {
		return bcrypt.DefaultCost
	}
	return s.BcryptCost
}
