package models

import (
	"fmt"
	"time"
)

// Artist is a normalized artist reference row.
//
// Names are matched exactly: two differently-cased spellings of the same
// artist are two distinct rows.
type Artist struct {
	ID   int64
	Name string
}

// Validate checks that the artist carries a name.
func (a Artist) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("artist name is required")
	}
	return nil
}

// Song is a normalized song reference row, deduplicated on SpotifyID.
//
// When two input rows share a SpotifyID the first-seen Name and Link are
// kept and later values are discarded.
type Song struct {
	ID        int64
	Name      string
	ArtistID  int64
	SpotifyID string
	Link      string
}

// Validate checks that the song carries a name and a Spotify ID.
func (s Song) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("song name is required")
	}
	if s.SpotifyID == "" {
		return fmt.Errorf("spotify id is required")
	}
	return nil
}

// HistoryEntry is one append-only play event. Entries are never updated or
// deleted by the importer and carry no uniqueness key.
type HistoryEntry struct {
	UserID        int64
	SongID        int64
	DateListened  time.Time
	ListeningTime time.Duration
}

// PlayRecord is a single parsed input row, independent of source format.
type PlayRecord struct {
	PlayedAt      time.Time
	SongName      string
	ArtistName    string
	SpotifyID     string
	Link          string
	ListeningTime time.Duration
}

// Validate checks the fields every source must provide.
func (p PlayRecord) Validate() error {
	if p.PlayedAt.IsZero() {
		return fmt.Errorf("play timestamp is required")
	}
	if p.SongName == "" {
		return fmt.Errorf("song name is required")
	}
	if p.ArtistName == "" {
		return fmt.Errorf("artist name is required")
	}
	if p.SpotifyID == "" {
		return fmt.Errorf("spotify id is required")
	}
	return nil
}

// ImportReport summarizes a single committed import run.
type ImportReport struct {
	RunID          string        // Correlates log lines and batch output
	Path           string        // Source file path
	Format         string        // "csv", "tsv", or "json"
	RowsRead       int           // Data rows consumed from the source
	ArtistsCreated int           // New artist reference rows
	SongsCreated   int           // New song reference rows
	HistoryRows    int           // History rows appended (always equals RowsRead)
	Elapsed        time.Duration // Wall time from open to commit
}

// BatchReport aggregates per-file outcomes of a directory import.
//
// A failed file rolls back alone; it does not abort the batch.
type BatchReport struct {
	Files     []FileOutcome
	Succeeded int
	Failed    int
	Skipped   int // Files with no compatible adapter
}

// FileOutcome records what happened to one file in a batch.
type FileOutcome struct {
	Path   string
	Report *ImportReport // nil when the file failed or was skipped
	Err    error
}
