package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"playlog/internal/models"
	"playlog/internal/shared"
)

// SongRepository persists [models.Song] reference rows.
//
// The uniqueness key is spotify_id, not name: two rows sharing a Spotify ID
// collapse to one song and keep the first-seen name and link.
type SongRepository struct {
	db      DBTX
	dialect string
}

// NewSongRepository creates a new SongRepository on the given handle
func NewSongRepository(db DBTX, dialect string) *SongRepository {
	return &SongRepository{db: db, dialect: dialect}
}

// Resolve returns the id for the song with the given Spotify ID, inserting
// the row if it does not exist yet. The conflict clause only touches
// spotify_id, so an existing row's name and link are left untouched.
func (r *SongRepository) Resolve(ctx context.Context, song models.Song) (int64, error) {
	if err := song.Validate(); err != nil {
		return 0, fmt.Errorf("validation failed: %w", err)
	}

	query := shared.Rebind(r.dialect, `
		INSERT INTO songs (name, artist_id, spotify_id, link) VALUES (?, ?, ?, ?)
		ON CONFLICT (spotify_id) DO UPDATE SET spotify_id = excluded.spotify_id
		RETURNING id
	`)

	var id int64
	err := r.db.QueryRowContext(ctx, query, song.Name, song.ArtistID, song.SpotifyID, song.Link).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve song %q: %w", song.SpotifyID, err)
	}

	return id, nil
}

// GetBySpotifyID retrieves a song by its external identifier.
func (r *SongRepository) GetBySpotifyID(ctx context.Context, spotifyID string) (*models.Song, error) {
	query := shared.Rebind(r.dialect, `
		SELECT id, name, artist_id, spotify_id, link FROM songs WHERE spotify_id = ?
	`)

	var song models.Song
	err := r.db.QueryRowContext(ctx, query, spotifyID).Scan(&song.ID, &song.Name, &song.ArtistID, &song.SpotifyID, &song.Link)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("song not found: %s", spotifyID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query song: %w", err)
	}

	return &song, nil
}

// Count returns the number of song rows.
func (r *SongRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM songs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}

// ListByArtist retrieves all songs for an artist ordered by id.
func (r *SongRepository) ListByArtist(ctx context.Context, artistID int64) ([]models.Song, error) {
	query := shared.Rebind(r.dialect, `
		SELECT id, name, artist_id, spotify_id, link FROM songs WHERE artist_id = ? ORDER BY id ASC
	`)

	rows, err := r.db.QueryContext(ctx, query, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.Name, &song.ArtistID, &song.SpotifyID, &song.Link); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}
