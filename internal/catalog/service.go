// Package catalog owns TV show metadata: lookup by id, name, and genre,
// plus the admin-facing create/update/delete operations.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/example/tv-tracker/internal/store"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrShowNotFound    = errors.New("show not found")
	ErrShowExists      = errors.New("show already exists")
	ErrNoShows         = errors.New("no shows found")
)

type Service struct {
	Shows store.ShowStore
}

func NewService(shows store.ShowStore) *Service {
	return &Service{Shows: shows}
}

func (s *Service) FindByID(ctx context.Context, id int) (store.Show, error) {
	if id <= 0 {
		return store.Show{}, fmt.Errorf("%w: show id must be positive", ErrInvalidArgument)
	}
	sh, err := s.Shows.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Show{}, fmt.Errorf("%w: id %d", ErrShowNotFound, id)
		}
		return store.Show{}, fmt.Errorf("find show %d: %w", id, err)
	}
	return sh, nil
}

// FindAll surfaces an empty catalog as ErrNoShows so the API boundary
// handles the empty state explicitly instead of returning a bare list.
func (s *Service) FindAll(ctx context.Context) ([]store.Show, error) {
	shows, err := s.Shows.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	if len(shows) == 0 {
		return nil, ErrNoShows
	}
	return shows, nil
}

func (s *Service) FindByName(ctx context.Context, name string) ([]store.Show, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name must not be blank", ErrInvalidArgument)
	}
	shows, err := s.Shows.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find shows by name %q: %w", name, err)
	}
	if len(shows) == 0 {
		return nil, fmt.Errorf("%w: name %q", ErrNoShows, name)
	}
	return shows, nil
}

func (s *Service) FindByGenre(ctx context.Context, genre string) ([]store.Show, error) {
	if strings.TrimSpace(genre) == "" {
		return nil, fmt.Errorf("%w: genre must not be blank", ErrInvalidArgument)
	}
	shows, err := s.Shows.FindByGenre(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("find shows by genre %q: %w", genre, err)
	}
	if len(shows) == 0 {
		return nil, fmt.Errorf("%w: genre %q", ErrNoShows, genre)
	}
	return shows, nil
}

// Create catalogs a new show. Duplicate detection is on the
// case-insensitive (name, release_year) pair.
func (s *Service) Create(ctx context.Context, sh store.Show) (store.Show, error) {
	if strings.TrimSpace(sh.Name) == "" {
		return store.Show{}, fmt.Errorf("%w: show name must not be blank", ErrInvalidArgument)
	}
	exists, err := s.Shows.ExistsByNameAndYear(ctx, sh.Name, sh.ReleaseYear)
	if err != nil {
		return store.Show{}, fmt.Errorf("check show %q (%d): %w", sh.Name, sh.ReleaseYear, err)
	}
	if exists {
		return store.Show{}, fmt.Errorf("%w: %q (%d)", ErrShowExists, sh.Name, sh.ReleaseYear)
	}

	created, err := s.Shows.Create(ctx, sh)
	if err != nil {
		// The unique index can still fire if the check raced.
		if errors.Is(err, store.ErrConflict) {
			return store.Show{}, fmt.Errorf("%w: %q (%d)", ErrShowExists, sh.Name, sh.ReleaseYear)
		}
		return store.Show{}, fmt.Errorf("create show %q: %w", sh.Name, err)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, sh store.Show) error {
	if sh.ID <= 0 {
		return fmt.Errorf("%w: show id must be positive", ErrInvalidArgument)
	}
	if strings.TrimSpace(sh.Name) == "" {
		return fmt.Errorf("%w: show name must not be blank", ErrInvalidArgument)
	}
	if err := s.Shows.Update(ctx, sh); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: id %d", ErrShowNotFound, sh.ID)
		}
		return fmt.Errorf("update show %d: %w", sh.ID, err)
	}
	return nil
}

// Delete removes a catalog entry after an existence check. The store may
// still report zero rows if a concurrent delete won the race; that outcome
// is returned as deleted=false, not corrected.
func (s *Service) Delete(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("%w: show id must be positive", ErrInvalidArgument)
	}
	if _, err := s.Shows.FindByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, fmt.Errorf("%w: id %d", ErrShowNotFound, id)
		}
		return false, fmt.Errorf("check show %d: %w", id, err)
	}
	deleted, err := s.Shows.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete show %d: %w", id, err)
	}
	return deleted, nil
}
