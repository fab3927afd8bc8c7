package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"playlog/internal/shared"
)

// Report summarizes one user's listening history.
type Report struct {
	UserID          int64         `json:"user_id"`
	TotalPlays      int           `json:"total_plays"`
	DistinctSongs   int           `json:"distinct_songs"`
	DistinctArtists int           `json:"distinct_artists"`
	TotalListening  time.Duration `json:"total_listening"`
	FirstPlay       time.Time     `json:"first_play"`
	LastPlay        time.Time     `json:"last_play"`
	TopArtists      []ArtistPlays `json:"top_artists"`
	TopSongs        []SongPlays   `json:"top_songs"`
	PlaysByMonth    []MonthPlays  `json:"plays_by_month"`
}

// ArtistPlays is one top-artists entry.
type ArtistPlays struct {
	Name  string `json:"name"`
	Plays int    `json:"plays"`
}

// SongPlays is one top-songs entry.
type SongPlays struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Plays  int    `json:"plays"`
}

// MonthPlays is a per-month play count, with Month formatted "2006-01".
type MonthPlays struct {
	Month string `json:"month"`
	Plays int    `json:"plays"`
}

// Build computes the report for one user. limit caps the top-artists and
// top-songs lists.
func Build(ctx context.Context, db *sql.DB, dialect string, userID int64, limit int) (*Report, error) {
	if limit <= 0 {
		limit = 10
	}

	report := &Report{UserID: userID}

	if err := totals(ctx, db, dialect, report); err != nil {
		return nil, err
	}

	if report.TotalPlays == 0 {
		return report, nil
	}

	if err := topArtists(ctx, db, dialect, report, limit); err != nil {
		return nil, err
	}
	if err := topSongs(ctx, db, dialect, report, limit); err != nil {
		return nil, err
	}
	if err := playsByMonth(ctx, db, dialect, report); err != nil {
		return nil, err
	}

	return report, nil
}

func totals(ctx context.Context, db *sql.DB, dialect string, report *Report) error {
	query := shared.Rebind(dialect, `
		SELECT COUNT(*), COUNT(DISTINCT h.song_id), COUNT(DISTINCT s.artist_id), COALESCE(SUM(h.listening_time), 0)
		FROM user_listening_history h
		JOIN songs s ON s.id = h.song_id
		WHERE h.user_id = ?
	`)

	var seconds int64
	err := db.QueryRowContext(ctx, query, report.UserID).Scan(
		&report.TotalPlays,
		&report.DistinctSongs,
		&report.DistinctArtists,
		&seconds,
	)
	if err != nil {
		return fmt.Errorf("failed to query totals: %w", err)
	}
	report.TotalListening = time.Duration(seconds) * time.Second

	if report.TotalPlays == 0 {
		return nil
	}

	// Plain column selects keep the declared column type, so the sqlite
	// driver converts to time.Time; MIN/MAX expressions would not.
	firstQuery := shared.Rebind(dialect, `
		SELECT date_listened FROM user_listening_history
		WHERE user_id = ? ORDER BY date_listened ASC LIMIT 1
	`)
	if err := db.QueryRowContext(ctx, firstQuery, report.UserID).Scan(&report.FirstPlay); err != nil {
		return fmt.Errorf("failed to query first play: %w", err)
	}

	lastQuery := shared.Rebind(dialect, `
		SELECT date_listened FROM user_listening_history
		WHERE user_id = ? ORDER BY date_listened DESC LIMIT 1
	`)
	if err := db.QueryRowContext(ctx, lastQuery, report.UserID).Scan(&report.LastPlay); err != nil {
		return fmt.Errorf("failed to query last play: %w", err)
	}

	return nil
}

func topArtists(ctx context.Context, db *sql.DB, dialect string, report *Report, limit int) error {
	query := shared.Rebind(dialect, `
		SELECT a.name, COUNT(*) AS plays
		FROM user_listening_history h
		JOIN songs s ON s.id = h.song_id
		JOIN artists a ON a.id = s.artist_id
		WHERE h.user_id = ?
		GROUP BY a.id, a.name
		ORDER BY plays DESC, a.name ASC
		LIMIT ?
	`)

	rows, err := db.QueryContext(ctx, query, report.UserID, limit)
	if err != nil {
		return fmt.Errorf("failed to query top artists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry ArtistPlays
		if err := rows.Scan(&entry.Name, &entry.Plays); err != nil {
			return fmt.Errorf("failed to scan top artist: %w", err)
		}
		report.TopArtists = append(report.TopArtists, entry)
	}

	return rows.Err()
}

func topSongs(ctx context.Context, db *sql.DB, dialect string, report *Report, limit int) error {
	query := shared.Rebind(dialect, `
		SELECT s.name, a.name, COUNT(*) AS plays
		FROM user_listening_history h
		JOIN songs s ON s.id = h.song_id
		JOIN artists a ON a.id = s.artist_id
		WHERE h.user_id = ?
		GROUP BY s.id, s.name, a.name
		ORDER BY plays DESC, s.name ASC
		LIMIT ?
	`)

	rows, err := db.QueryContext(ctx, query, report.UserID, limit)
	if err != nil {
		return fmt.Errorf("failed to query top songs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry SongPlays
		if err := rows.Scan(&entry.Name, &entry.Artist, &entry.Plays); err != nil {
			return fmt.Errorf("failed to scan top song: %w", err)
		}
		report.TopSongs = append(report.TopSongs, entry)
	}

	return rows.Err()
}

func playsByMonth(ctx context.Context, db *sql.DB, dialect string, report *Report) error {
	monthExpr := "strftime('%Y-%m', date_listened)"
	if dialect == shared.DriverPostgres {
		monthExpr = "to_char(date_listened, 'YYYY-MM')"
	}

	query := shared.Rebind(dialect, fmt.Sprintf(`
		SELECT %s AS month, COUNT(*)
		FROM user_listening_history
		WHERE user_id = ?
		GROUP BY month
		ORDER BY month ASC
	`, monthExpr))

	rows, err := db.QueryContext(ctx, query, report.UserID)
	if err != nil {
		return fmt.Errorf("failed to query plays by month: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry MonthPlays
		if err := rows.Scan(&entry.Month, &entry.Plays); err != nil {
			return fmt.Errorf("failed to scan month: %w", err)
		}
		report.PlaysByMonth = append(report.PlaysByMonth, entry)
	}

	return rows.Err()
}
