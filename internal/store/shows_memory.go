package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryShowStore is a development-only in-memory implementation.
type MemoryShowStore struct {
	mu     sync.RWMutex
	nextID int
	shows  map[int]Show
	genres map[int][]string // show_id -> genre names
}

func NewMemoryShowStore() *MemoryShowStore {
	return &MemoryShowStore{
		nextID: 1,
		shows:  make(map[int]Show),
		genres: make(map[int][]string),
	}
}

func (s *MemoryShowStore) FindByID(_ context.Context, id int) (Show, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.shows[id]
	if !ok {
		return Show{}, ErrNotFound
	}
	return sh, nil
}

func (s *MemoryShowStore) FindAll(_ context.Context) ([]Show, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(Show) bool { return true }), nil
}

func (s *MemoryShowStore) FindByName(_ context.Context, name string) ([]Show, error) {
	needle := strings.ToLower(name)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(sh Show) bool {
		return strings.Contains(strings.ToLower(sh.Name), needle)
	}), nil
}

func (s *MemoryShowStore) FindByGenre(_ context.Context, genre string) ([]Show, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(func(sh Show) bool {
		for _, g := range s.genres[sh.ID] {
			if g == genre {
				return true
			}
		}
		return false
	}), nil
}

func (s *MemoryShowStore) ExistsByNameAndYear(_ context.Context, name string, year int16) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.existsLocked(name, year), nil
}

func (s *MemoryShowStore) Create(_ context.Context, sh Show) (Show, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.existsLocked(sh.Name, sh.ReleaseYear) {
		return Show{}, ErrConflict
	}
	sh.ID = s.nextID
	s.nextID++
	sh.CreatedAt = time.Now().UTC()
	s.shows[sh.ID] = sh
	return sh, nil
}

func (s *MemoryShowStore) Update(_ context.Context, sh Show) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.shows[sh.ID]
	if !ok {
		return ErrNotFound
	}
	sh.CreatedAt = existing.CreatedAt
	s.shows[sh.ID] = sh
	return nil
}

func (s *MemoryShowStore) Delete(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shows[id]; !ok {
		return false, nil
	}
	delete(s.shows, id)
	delete(s.genres, id)
	return true, nil
}

// SetGenres assigns genre names to a show. Used by seeds and tests.
func (s *MemoryShowStore) SetGenres(id int, genres ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.genres[id] = genres
}

func (s *MemoryShowStore) existsLocked(name string, year int16) bool {
	for _, existing := range s.shows {
		if strings.EqualFold(existing.Name, name) && existing.ReleaseYear == year {
			return true
		}
	}
	return false
}

func (s *MemoryShowStore) sortedLocked(match func(Show) bool) []Show {
	var out []Show
	for _, sh := range s.shows {
		if match(sh) {
			out = append(out, sh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ ShowStore = (*MemoryShowStore)(nil)
