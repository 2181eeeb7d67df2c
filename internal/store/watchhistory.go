package store

import "context"

// WatchHistoryItem is a watch-history row joined with show metadata for
// display. Status defaults to "Not Watched" in the full-catalog projection
// when the user has no row for the show.
type WatchHistoryItem struct {
	ShowID      int         `json:"show_id"`
	ShowName    string      `json:"show_name"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url"`
	Status      WatchStatus `json:"status"`
}

// WatchHistoryStore defines persistence for (user, show) status pairs.
// At most one row exists per pair.
type WatchHistoryStore interface {
	// Insert records a status for a pair that has no row yet. An existing
	// pair returns ErrConflict; the insert is atomic with that check.
	Insert(ctx context.Context, userID, showID int, status WatchStatus) error
	// UpdateStatus overwrites the status of an existing pair;
	// ErrNotFound when the pair has no row.
	UpdateStatus(ctx context.Context, userID, showID int, status WatchStatus) error
	// Delete removes the pair's row; ErrNotFound when absent.
	Delete(ctx context.Context, userID, showID int) error
	// Contains reports whether a row exists for the pair.
	Contains(ctx context.Context, userID, showID int) (bool, error)
	// ListByUser returns the user's rows joined with show metadata.
	// With all=true it returns every catalog show, left-joined against the
	// user's rows, defaulting the status to "Not Watched".
	ListByUser(ctx context.Context, userID int, all bool) ([]WatchHistoryItem, error)
}
