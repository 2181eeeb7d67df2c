package store

import (
	"context"
	"time"
)

// Show is a catalog entry. ID 0 marks an entity not yet persisted.
type Show struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	NumEpisodes int       `json:"num_episodes"`
	ReleaseYear int16     `json:"release_year"`
	CreatedAt   time.Time `json:"created_at"`
}

// ShowStore defines persistence for the show catalog.
type ShowStore interface {
	// FindByID returns ErrNotFound when no show has the id.
	FindByID(ctx context.Context, id int) (Show, error)
	FindAll(ctx context.Context) ([]Show, error)
	// FindByName matches a case-insensitive substring of the show name.
	FindByName(ctx context.Context, name string) ([]Show, error)
	// FindByGenre joins through the genre association tables.
	FindByGenre(ctx context.Context, genre string) ([]Show, error)
	// ExistsByNameAndYear reports whether a show with the same
	// case-insensitive name and release year is already cataloged.
	ExistsByNameAndYear(ctx context.Context, name string, year int16) (bool, error)
	// Create persists a new show and returns it with id and created_at
	// assigned. A (name, release_year) duplicate returns ErrConflict.
	Create(ctx context.Context, s Show) (Show, error)
	// Update overwrites every mutable field; ErrNotFound if the id is absent.
	Update(ctx context.Context, s Show) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int) (bool, error)
}
