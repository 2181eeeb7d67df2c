package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresWatchHistoryStore persists (user, show) status pairs in Postgres.
type PostgresWatchHistoryStore struct {
	pool *pgxpool.Pool
}

func NewPostgresWatchHistoryStore(pool *pgxpool.Pool) *PostgresWatchHistoryStore {
	return &PostgresWatchHistoryStore{pool: pool}
}

// Insert is atomic with the duplicate check: the primary key on
// (user_id, show_id) rejects a second row, and the zero-row outcome of
// ON CONFLICT DO NOTHING classifies as a conflict rather than a raced
// low-level error.
func (s *PostgresWatchHistoryStore) Insert(ctx context.Context, userID, showID int, status WatchStatus) error {
	q := `
INSERT INTO user_watch_history (user_id, show_id, status)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, show_id) DO NOTHING;`
	tag, err := s.pool.Exec(ctx, q, userID, showID, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

func (s *PostgresWatchHistoryStore) UpdateStatus(ctx context.Context, userID, showID int, status WatchStatus) error {
	q := `UPDATE user_watch_history SET status = $3 WHERE user_id = $1 AND show_id = $2;`
	tag, err := s.pool.Exec(ctx, q, userID, showID, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresWatchHistoryStore) Delete(ctx context.Context, userID, showID int) error {
	q := `DELETE FROM user_watch_history WHERE user_id = $1 AND show_id = $2;`
	tag, err := s.pool.Exec(ctx, q, userID, showID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresWatchHistoryStore) Contains(ctx context.Context, userID, showID int) (bool, error) {
	q := `SELECT EXISTS(SELECT 1 FROM user_watch_history WHERE user_id = $1 AND show_id = $2);`
	var exists bool
	if err := s.pool.QueryRow(ctx, q, userID, showID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *PostgresWatchHistoryStore) ListByUser(ctx context.Context, userID int, all bool) ([]WatchHistoryItem, error) {
	var q string
	if all {
		// Every catalog show, left-joined against the user's rows; a
		// missing row projects as "Not Watched" at read time.
		q = `
SELECT s.show_id, s.show_name, s.description, s.image_url,
       COALESCE(uwh.status, 'Not Watched')
FROM tv_shows s
LEFT JOIN user_watch_history uwh
  ON s.show_id = uwh.show_id AND uwh.user_id = $1
ORDER BY s.show_id;`
	} else {
		q = `
SELECT s.show_id, s.show_name, s.description, s.image_url, uwh.status
FROM user_watch_history uwh
JOIN tv_shows s ON uwh.show_id = s.show_id
WHERE uwh.user_id = $1
ORDER BY s.show_id;`
	}

	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WatchHistoryItem
	for rows.Next() {
		var (
			item WatchHistoryItem
			raw  string
		)
		if err := rows.Scan(&item.ShowID, &item.ShowName, &item.Description, &item.ImageURL, &raw); err != nil {
			return nil, err
		}
		status, err := ParseWatchStatus(raw)
		if err != nil {
			return nil, err
		}
		item.Status = status
		out = append(out, item)
	}
	return out, rows.Err()
}

var _ WatchHistoryStore = (*PostgresWatchHistoryStore)(nil)
var _ ShowStore = (*PostgresShowStore)(nil)
var _ UserStore = (*PostgresUserStore)(nil)
