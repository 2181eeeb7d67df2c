package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryUser struct {
	User
	passwordHash string
	role         string
}

// MemoryUserStore is a development-only in-memory implementation.
type MemoryUserStore struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]memoryUser
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, users: make(map[int]memoryUser)}
}

func (s *MemoryUserStore) FindByID(_ context.Context, id int) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u.User, nil
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byUsernameLocked(username)
	if !ok {
		return User{}, ErrNotFound
	}
	return u.User, nil
}

func (s *MemoryUserStore) FindAll(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (s *MemoryUserStore) FindCredentials(_ context.Context, username string) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byUsernameLocked(username)
	if !ok {
		return Credentials{}, ErrNotFound
	}
	return Credentials{UserID: u.UserID, Username: u.Username, PasswordHash: u.passwordHash, Role: u.role}, nil
}

// Create inserts the user and its role under one lock, mirroring the
// transactional Postgres path.
func (s *MemoryUserStore) Create(_ context.Context, n NewUser, role string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUsernameLocked(n.Username); taken {
		return User{}, ErrConflict
	}
	u := memoryUser{
		User: User{
			UserID:    s.nextID,
			Name:      n.Name,
			Username:  n.Username,
			Email:     n.Email,
			CreatedAt: time.Now().UTC(),
		},
		passwordHash: n.PasswordHash,
		role:         role,
	}
	s.nextID++
	s.users[u.UserID] = u
	return u.User, nil
}

func (s *MemoryUserStore) Update(_ context.Context, patch UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[patch.UserID]
	if !ok {
		return ErrNotFound
	}
	if other, taken := s.byUsernameLocked(patch.Username); taken && other.UserID != patch.UserID {
		return ErrConflict
	}
	u.Name = patch.Name
	u.Username = patch.Username
	u.Email = patch.Email
	if patch.PasswordHash != "" {
		u.passwordHash = patch.PasswordHash
	}
	s.users[patch.UserID] = u
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

func (s *MemoryUserStore) SetRoleByUsername(_ context.Context, username, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byUsernameLocked(username)
	if !ok {
		return ErrNotFound
	}
	u.role = role
	s.users[u.UserID] = u
	return nil
}

func (s *MemoryUserStore) byUsernameLocked(username string) (memoryUser, bool) {
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return memoryUser{}, false
}

var _ UserStore = (*MemoryUserStore)(nil)
