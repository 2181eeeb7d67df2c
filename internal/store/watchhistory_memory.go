package store

import (
	"context"
	"sync"
)

type pairKey struct {
	userID int
	showID int
}

// MemoryWatchHistoryStore is a development-only in-memory implementation.
// It joins against a MemoryShowStore for the display projection.
type MemoryWatchHistoryStore struct {
	mu      sync.RWMutex
	shows   *MemoryShowStore
	entries map[pairKey]WatchStatus
}

func NewMemoryWatchHistoryStore(shows *MemoryShowStore) *MemoryWatchHistoryStore {
	return &MemoryWatchHistoryStore{
		shows:   shows,
		entries: make(map[pairKey]WatchStatus),
	}
}

func (s *MemoryWatchHistoryStore) Insert(_ context.Context, userID, showID int, status WatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pairKey{userID, showID}
	if _, exists := s.entries[k]; exists {
		return ErrConflict
	}
	s.entries[k] = status
	return nil
}

func (s *MemoryWatchHistoryStore) UpdateStatus(_ context.Context, userID, showID int, status WatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pairKey{userID, showID}
	if _, exists := s.entries[k]; !exists {
		return ErrNotFound
	}
	s.entries[k] = status
	return nil
}

func (s *MemoryWatchHistoryStore) Delete(_ context.Context, userID, showID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pairKey{userID, showID}
	if _, exists := s.entries[k]; !exists {
		return ErrNotFound
	}
	delete(s.entries, k)
	return nil
}

func (s *MemoryWatchHistoryStore) Contains(_ context.Context, userID, showID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.entries[pairKey{userID, showID}]
	return exists, nil
}

func (s *MemoryWatchHistoryStore) ListByUser(ctx context.Context, userID int, all bool) ([]WatchHistoryItem, error) {
	shows, err := s.shows.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []WatchHistoryItem
	for _, sh := range shows {
		status, has := s.entries[pairKey{userID, sh.ID}]
		if !all && !has {
			continue
		}
		if !has {
			status = StatusNotWatched
		}
		out = append(out, WatchHistoryItem{
			ShowID:      sh.ID,
			ShowName:    sh.Name,
			Description: sh.Description,
			ImageURL:    sh.ImageURL,
			Status:      status,
		})
	}
	return out, nil
}

var _ WatchHistoryStore = (*MemoryWatchHistoryStore)(nil)
