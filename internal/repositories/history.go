package repositories

import (
	"context"
	"fmt"
	"time"

	"playlog/internal/models"
	"playlog/internal/shared"
)

// HistoryRepository persists [models.HistoryEntry] play events.
//
// History is append-only and carries no uniqueness key: importing the same
// file twice doubles the history rows on purpose.
type HistoryRepository struct {
	db      DBTX
	dialect string
}

// NewHistoryRepository creates a new HistoryRepository on the given handle
func NewHistoryRepository(db DBTX, dialect string) *HistoryRepository {
	return &HistoryRepository{db: db, dialect: dialect}
}

// Append inserts one play event. Listening time is stored as whole seconds.
func (r *HistoryRepository) Append(ctx context.Context, entry models.HistoryEntry) error {
	query := shared.Rebind(r.dialect, `
		INSERT INTO user_listening_history (user_id, song_id, date_listened, listening_time)
		VALUES (?, ?, ?, ?)
	`)

	_, err := r.db.ExecContext(ctx, query,
		entry.UserID,
		entry.SongID,
		entry.DateListened,
		int64(entry.ListeningTime/time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// CountForUser returns the number of history rows for a user.
func (r *HistoryRepository) CountForUser(ctx context.Context, userID int64) (int, error) {
	query := shared.Rebind(r.dialect, `
		SELECT COUNT(*) FROM user_listening_history WHERE user_id = ?
	`)

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

// ListForUser retrieves a user's full history joined with song and artist
// reference data, oldest play first.
func (r *HistoryRepository) ListForUser(ctx context.Context, userID int64) ([]models.PlayRecord, error) {
	query := shared.Rebind(r.dialect, `
		SELECT h.date_listened, s.name, a.name, s.spotify_id, s.link, h.listening_time
		FROM user_listening_history h
		JOIN songs s ON s.id = h.song_id
		JOIN artists a ON a.id = s.artist_id
		WHERE h.user_id = ?
		ORDER BY h.date_listened ASC
	`)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []models.PlayRecord
	for rows.Next() {
		var rec models.PlayRecord
		var seconds int64
		if err := rows.Scan(&rec.PlayedAt, &rec.SongName, &rec.ArtistName, &rec.SpotifyID, &rec.Link, &seconds); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		rec.ListeningTime = time.Duration(seconds) * time.Second
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}
