package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"playlog/internal/models"
	"playlog/internal/shared"
)

// TimestampLayout is the fixed timestamp format of CSV history exports,
// e.g. "January 5, 2024 at 3:45PM". Zero-padded hours parse too. The layout
// embeds a comma, so comma-delimited sources must quote the field.
const TimestampLayout = "January 2, 2006 at 3:04PM"

// csvFieldCount is the exact number of fields per data row:
// timestamp, song name, artist name, spotify id, link.
const csvFieldCount = 5

// CSVAdapter parses headerless delimiter-separated history exports.
type CSVAdapter struct {
	// Delimiter separates fields; ',' for .csv, '\t' for .tsv.
	Delimiter rune
}

// Name returns the adapter's format label.
func (a CSVAdapter) Name() string {
	if a.Delimiter == '\t' {
		return "tsv"
	}
	return "csv"
}

// Each streams data rows from r, invoking fn once per parsed record with a
// 1-based line number. The first error from parsing or from fn aborts the
// stream and is returned.
func (a CSVAdapter) Each(r io.Reader, fn RowFunc) error {
	delim := a.Delimiter
	if delim == 0 {
		delim = ','
	}

	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.ReuseRecord = true
	// Field count is checked manually so a short row maps to ErrMalformedRow
	// with its line number rather than a bare csv.ErrFieldCount.
	cr.FieldsPerRecord = -1

	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		line++
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", shared.ErrMalformedRow, line, err)
		}

		if len(rec) != csvFieldCount {
			return fmt.Errorf("%w: line %d: expected %d fields, got %d", shared.ErrMalformedRow, line, csvFieldCount, len(rec))
		}

		playedAt, err := time.Parse(TimestampLayout, rec[0])
		if err != nil {
			return fmt.Errorf("%w: line %d: %q", shared.ErrDateParse, line, rec[0])
		}

		record := models.PlayRecord{
			PlayedAt:   playedAt,
			SongName:   rec[1],
			ArtistName: rec[2],
			SpotifyID:  rec[3],
			Link:       rec[4],
		}

		if err := fn(line, record); err != nil {
			return err
		}
	}
}
