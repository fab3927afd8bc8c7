package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"playlog/internal/models"
	"playlog/internal/shared"
)

// jsonDateLayouts are the timestamp formats accepted in JSON exports, tried
// in order. Different export tools disagree on this, so the net is wider
// than the CSV format's single fixed layout.
var jsonDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
	TimestampLayout,
}

// Field name aliases, checked in order. Export tools name the same column
// differently (e.g. "title" vs "track" vs "song_name").
var (
	jsonTitleKeys    = []string{"title", "track", "track_name", "song", "song_name", "name"}
	jsonArtistKeys   = []string{"artist", "artist_name", "performer"}
	jsonDateKeys     = []string{"played_at", "timestamp", "date", "time"}
	jsonIDKeys       = []string{"spotify_id", "id"}
	jsonLinkKeys     = []string{"link", "url", "spotify_link"}
	jsonDurationKeys = []string{"duration", "listening_time", "seconds"}
)

// JSONAdapter parses a JSON array of play objects with flexible key names.
type JSONAdapter struct{}

// Name returns the adapter's format label.
func (a JSONAdapter) Name() string { return "json" }

// Each decodes the array from r, invoking fn once per play object with a
// 1-based element index. The first error aborts the stream and is returned.
func (a JSONAdapter) Each(r io.Reader, fn RowFunc) error {
	var plays []map[string]any
	if err := json.NewDecoder(r).Decode(&plays); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMalformedRow, err)
	}

	for i, play := range plays {
		line := i + 1

		record, err := playFromObject(play)
		if err != nil {
			return fmt.Errorf("element %d: %w", line, err)
		}

		if err := fn(line, record); err != nil {
			return err
		}
	}

	return nil
}

// playFromObject maps one decoded play object to a [models.PlayRecord].
func playFromObject(play map[string]any) (models.PlayRecord, error) {
	var record models.PlayRecord

	title, ok := stringField(play, jsonTitleKeys)
	if !ok {
		return record, fmt.Errorf("%w: missing song title", shared.ErrMalformedRow)
	}

	artist, ok := stringField(play, jsonArtistKeys)
	if !ok {
		return record, fmt.Errorf("%w: missing artist name", shared.ErrMalformedRow)
	}

	spotifyID, ok := stringField(play, jsonIDKeys)
	if !ok {
		return record, fmt.Errorf("%w: missing spotify id", shared.ErrMalformedRow)
	}

	dateText, ok := stringField(play, jsonDateKeys)
	if !ok {
		return record, fmt.Errorf("%w: missing play timestamp", shared.ErrMalformedRow)
	}

	playedAt, err := parseJSONDate(dateText)
	if err != nil {
		return record, err
	}

	record = models.PlayRecord{
		PlayedAt:   playedAt,
		SongName:   title,
		ArtistName: artist,
		SpotifyID:  spotifyID,
	}

	if link, ok := stringField(play, jsonLinkKeys); ok {
		record.Link = link
	}

	if seconds, ok := numberField(play, jsonDurationKeys); ok {
		record.ListeningTime = time.Duration(seconds) * time.Second
	}

	return record, nil
}

// stringField returns the first non-empty string value among the aliases.
func stringField(play map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		if v, ok := play[key].(string); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// numberField returns the first numeric value among the aliases.
func numberField(play map[string]any, keys []string) (int64, bool) {
	for _, key := range keys {
		if v, ok := play[key].(float64); ok {
			return int64(v), true
		}
	}
	return 0, false
}

// parseJSONDate tries each accepted layout in order.
func parseJSONDate(text string) (time.Time, error) {
	for _, layout := range jsonDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", shared.ErrDateParse, text)
}
