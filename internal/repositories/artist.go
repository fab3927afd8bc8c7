package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"playlog/internal/models"
	"playlog/internal/shared"
)

// ArtistRepository persists [models.Artist] reference rows.
//
// Artists are keyed by exact name; lookups never normalize case or
// whitespace, so "Drake" and "drake" are two distinct artists.
type ArtistRepository struct {
	db      DBTX
	dialect string
}

// NewArtistRepository creates a new ArtistRepository on the given handle
func NewArtistRepository(db DBTX, dialect string) *ArtistRepository {
	return &ArtistRepository{db: db, dialect: dialect}
}

// Resolve returns the id for the artist with the given name, inserting the
// row if it does not exist yet. One round trip; existing rows are never
// modified, so the first-seen spelling wins.
func (r *ArtistRepository) Resolve(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty artist name", shared.ErrInvalidInput)
	}

	query := shared.Rebind(r.dialect, `
		INSERT INTO artists (name) VALUES (?)
		ON CONFLICT (name) DO UPDATE SET name = excluded.name
		RETURNING id
	`)

	var id int64
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to resolve artist %q: %w", name, err)
	}

	return id, nil
}

// GetByName retrieves an artist by exact name.
func (r *ArtistRepository) GetByName(ctx context.Context, name string) (*models.Artist, error) {
	query := shared.Rebind(r.dialect, `
		SELECT id, name FROM artists WHERE name = ?
	`)

	var artist models.Artist
	err := r.db.QueryRowContext(ctx, query, name).Scan(&artist.ID, &artist.Name)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("artist not found: %s", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artist: %w", err)
	}

	return &artist, nil
}

// Count returns the number of artist rows.
func (r *ArtistRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM artists").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count artists: %w", err)
	}
	return count, nil
}

// List retrieves all artists ordered by id.
func (r *ArtistRepository) List(ctx context.Context) ([]models.Artist, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM artists ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		var artist models.Artist
		if err := rows.Scan(&artist.ID, &artist.Name); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}
		artists = append(artists, artist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}
