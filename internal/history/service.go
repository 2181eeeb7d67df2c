// Package history implements the watch-history workflow: every mutation
// validates the referenced user and show before touching the pair's row,
// and at most one row exists per (user, show) pair.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/tv-tracker/internal/store"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUserNotFound    = errors.New("user not found")
	ErrShowNotFound    = errors.New("show not found")
	ErrEntryExists     = errors.New("show already in watch history")
	ErrEntryNotFound   = errors.New("watch history entry not found")
)

type Service struct {
	Users   store.UserStore
	Shows   store.ShowStore
	History store.WatchHistoryStore
}

func NewService(users store.UserStore, shows store.ShowStore, history store.WatchHistoryStore) *Service {
	return &Service{Users: users, Shows: shows, History: history}
}

// resolveUser is the guard shared by every method: the blank check runs
// before the store lookup, and an unknown username is ErrUserNotFound.
func (s *Service) resolveUser(ctx context.Context, username string) (store.User, error) {
	if strings.TrimSpace(username) == "" {
		return store.User{}, fmt.Errorf("%w: username must not be blank", ErrInvalidArgument)
	}
	u, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.User{}, fmt.Errorf("%w: username %q", ErrUserNotFound, username)
		}
		return store.User{}, fmt.Errorf("resolve user %q: %w", username, err)
	}
	return u, nil
}

func (s *Service) checkShow(ctx context.Context, showID int) error {
	if showID <= 0 {
		return fmt.Errorf("%w: show id must be positive", ErrInvalidArgument)
	}
	if _, err := s.Shows.FindByID(ctx, showID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: id %d", ErrShowNotFound, showID)
		}
		return fmt.Errorf("check show %d: %w", showID, err)
	}
	return nil
}

// Add records a status for a pair that has no row yet. The row insert is
// atomic with the duplicate check.
func (s *Service) Add(ctx context.Context, username string, showID int, status store.WatchStatus) error {
	u, err := s.resolveUser(ctx, username)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown watch status %q", ErrInvalidArgument, status)
	}
	if err := s.checkShow(ctx, showID); err != nil {
		return err
	}

	if err := s.History.Insert(ctx, u.UserID, showID, status); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("%w: show %d for user %q", ErrEntryExists, showID, username)
		}
		return fmt.Errorf("add show %d to watch history for %q: %w", showID, username, err)
	}
	return nil
}

// UpdateStatus overwrites the status of an existing pair. Repeating the
// same update is idempotent: one row, last write wins.
func (s *Service) UpdateStatus(ctx context.Context, username string, showID int, status store.WatchStatus) error {
	u, err := s.resolveUser(ctx, username)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: unknown watch status %q", ErrInvalidArgument, status)
	}
	if err := s.checkShow(ctx, showID); err != nil {
		return err
	}

	if err := s.History.UpdateStatus(ctx, u.UserID, showID, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: show %d for user %q", ErrEntryNotFound, showID, username)
		}
		return fmt.Errorf("update watch status of show %d for %q: %w", showID, username, err)
	}
	return nil
}

// Delete removes the pair's row. The show-existence check runs before any
// mutation so a bogus show id never reaches the store as a delete.
func (s *Service) Delete(ctx context.Context, username string, showID int) error {
	u, err := s.resolveUser(ctx, username)
	if err != nil {
		return err
	}
	if err := s.checkShow(ctx, showID); err != nil {
		return err
	}

	if err := s.History.Delete(ctx, u.UserID, showID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: show %d for user %q", ErrEntryNotFound, showID, username)
		}
		return fmt.Errorf("delete show %d from watch history of %q: %w", showID, username, err)
	}
	return nil
}

// List returns the user's watch history joined with show metadata.
// With all=false an empty history is ErrEntryNotFound; with all=true the
// whole catalog is returned, defaulting absent rows to "Not Watched".
func (s *Service) List(ctx context.Context, username string, all bool) ([]store.WatchHistoryItem, error) {
	u, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	items, err := s.History.ListByUser(ctx, u.UserID, all)
	if err != nil {
		return nil, fmt.Errorf("list watch history of %q: %w", username, err)
	}
	if !all && len(items) == 0 {
		return nil, fmt.Errorf("%w: user %q", ErrEntryNotFound, username)
	}
	if items == nil {
		items = []store.WatchHistoryItem{}
	}
	return items, nil
}

// Contains reports pair membership; absence is a false, not a failure.
func (s *Service) Contains(ctx context.Context, username string, showID int) (bool, error) {
	u, err := s.resolveUser(ctx, username)
	if err != nil {
		return false, err
	}
	if showID <= 0 {
		return false, fmt.Errorf("%w: show id must be positive", ErrInvalidArgument)
	}

	in, err := s.History.Contains(ctx, u.UserID, showID)
	if err != nil {
		return false, fmt.Errorf("check watch history of %q for show %d: %w", username, showID, err)
	}
	return in, nil
}
