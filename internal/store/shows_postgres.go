package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresShowStore persists the show catalog in Postgres.
type PostgresShowStore struct {
	pool *pgxpool.Pool
}

func NewPostgresShowStore(pool *pgxpool.Pool) *PostgresShowStore {
	return &PostgresShowStore{pool: pool}
}

const showColumns = `show_id, show_name, description, image_url, num_episodes, release_year, created_at`

func (s *PostgresShowStore) FindByID(ctx context.Context, id int) (Show, error) {
	q := `SELECT ` + showColumns + ` FROM tv_shows WHERE show_id = $1;`
	var sh Show
	err := s.pool.QueryRow(ctx, q, id).Scan(
		&sh.ID, &sh.Name, &sh.Description, &sh.ImageURL, &sh.NumEpisodes, &sh.ReleaseYear, &sh.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Show{}, ErrNotFound
		}
		return Show{}, err
	}
	return sh, nil
}

func (s *PostgresShowStore) FindAll(ctx context.Context) ([]Show, error) {
	q := `SELECT ` + showColumns + ` FROM tv_shows ORDER BY show_id;`
	return s.scanShows(ctx, q)
}

func (s *PostgresShowStore) FindByName(ctx context.Context, name string) ([]Show, error) {
	q := `SELECT ` + showColumns + ` FROM tv_shows
	      WHERE show_name ILIKE '%' || $1 || '%' ORDER BY show_id;`
	return s.scanShows(ctx, q, name)
}

func (s *PostgresShowStore) FindByGenre(ctx context.Context, genre string) ([]Show, error) {
	q := `SELECT s.` + showColumns + `
	      FROM tv_shows s
	      JOIN show_genres sg ON s.show_id = sg.show_id
	      JOIN genres g ON sg.genre_id = g.genre_id
	      WHERE g.genre_name = $1 ORDER BY s.show_id;`
	return s.scanShows(ctx, q, genre)
}

func (s *PostgresShowStore) ExistsByNameAndYear(ctx context.Context, name string, year int16) (bool, error) {
	q := `SELECT EXISTS(SELECT 1 FROM tv_shows WHERE lower(show_name) = lower($1) AND release_year = $2);`
	var exists bool
	if err := s.pool.QueryRow(ctx, q, name, year).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresShowStore) Create(ctx context.Context, sh Show) (Show, error) {
	q := `
INSERT INTO tv_shows (show_name, description, image_url, num_episodes, release_year)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + showColumns + `;`
	var out Show
	err := s.pool.QueryRow(ctx, q, sh.Name, sh.Description, sh.ImageURL, sh.NumEpisodes, sh.ReleaseYear).Scan(
		&out.ID, &out.Name, &out.Description, &out.ImageURL, &out.NumEpisodes, &out.ReleaseYear, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Show{}, ErrConflict
		}
		return Show{}, err
	}
	return out, nil
}

func (s *PostgresShowStore) Update(ctx context.Context, sh Show) error {
	q := `
UPDATE tv_shows
SET show_name = $2, description = $3, image_url = $4, num_episodes = $5, release_year = $6
WHERE show_id = $1;`
	tag, err := s.pool.Exec(ctx, q, sh.ID, sh.Name, sh.Description, sh.ImageURL, sh.NumEpisodes, sh.ReleaseYear)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresShowStore) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tv_shows WHERE show_id = $1;`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresShowStore) scanShows(ctx context.Context, q string, args ...any) ([]Show, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Show
	for rows.Next() {
		var sh Show
		if err := rows.Scan(&sh.ID, &sh.Name, &sh.Description, &sh.ImageURL, &sh.NumEpisodes, &sh.ReleaseYear, &sh.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}
