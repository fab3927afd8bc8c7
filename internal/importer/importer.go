package importer

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"playlog/internal/models"
	"playlog/internal/repositories"
	"playlog/internal/shared"
)

// Importer loads listening-history files into the database.
//
// One Importer may be reused across files; each file runs in its own
// transaction.
type Importer struct {
	db      *sql.DB
	dialect string
	userID  int64
	logger  *log.Logger
	updates chan<- ProgressUpdate
	limiter *rate.Limiter
}

// Options contains configuration options for creating an Importer.
type Options struct {
	UserID  int64                 // Stamped into every history row (default 1)
	Logger  *log.Logger           // Defaults to a stderr logger
	Updates chan<- ProgressUpdate // Optional; sends never block
}

// New creates an Importer on the given database handle.
func New(db *sql.DB, dialect string, opts Options) *Importer {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.UserID == 0 {
		opts.UserID = 1
	}

	return &Importer{
		db:      db,
		dialect: dialect,
		userID:  opts.UserID,
		logger:  opts.Logger,
		updates: opts.Updates,
		// Progress log lines are capped at one per second so large files
		// don't flood the terminal.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// ImportFile imports one history export, selecting the format adapter from
// the file extension. The whole file commits or rolls back as one unit.
func (i *Importer) ImportFile(ctx context.Context, path string) (*models.ImportReport, error) {
	adapter, err := ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	return i.ImportReader(ctx, adapter, f, path)
}

// ImportReader imports records from r using the given adapter. path labels
// the source in the report and logs.
//
// All statements run inside a single transaction committed at end of
// stream; the first parse or database error rolls everything back and is
// returned unrecovered.
func (i *Importer) ImportReader(ctx context.Context, adapter Adapter, r io.Reader, path string) (*models.ImportReport, error) {
	runID := shared.NewRunID()
	logger := shared.WithLogger(i.logger, "run", runID, "source", path)
	start := time.Now()

	i.send(openSourceUpdate(path, adapter.Name()))
	logger.Info("starting import", "format", adapter.Name(), "user", i.userID)

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	artists := repositories.NewArtistRepository(tx, i.dialect)
	songs := repositories.NewSongRepository(tx, i.dialect)
	history := repositories.NewHistoryRepository(tx, i.dialect)

	artistsBefore, err := artists.Count(ctx)
	if err != nil {
		return nil, err
	}
	songsBefore, err := songs.Count(ctx)
	if err != nil {
		return nil, err
	}

	rows := 0
	err = adapter.Each(r, func(line int, record models.PlayRecord) error {
		artistID, err := artists.Resolve(ctx, record.ArtistName)
		if err != nil {
			return err
		}

		songID, err := songs.Resolve(ctx, models.Song{
			Name:      record.SongName,
			ArtistID:  artistID,
			SpotifyID: record.SpotifyID,
			Link:      record.Link,
		})
		if err != nil {
			return err
		}

		entry := models.HistoryEntry{
			UserID:        i.userID,
			SongID:        songID,
			DateListened:  record.PlayedAt,
			ListeningTime: record.ListeningTime,
		}
		if err := history.Append(ctx, entry); err != nil {
			return err
		}

		rows++
		i.send(importRowUpdate(path, rows))
		if i.limiter.Allow() {
			logger.Info("import progress", "rows", rows)
		}
		return nil
	})
	if err != nil {
		i.send(failedUpdate(path, err))
		logger.Error("import aborted, rolling back", "rows", rows, "error", err)
		return nil, err
	}

	artistsAfter, err := artists.Count(ctx)
	if err != nil {
		return nil, err
	}
	songsAfter, err := songs.Count(ctx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		i.send(failedUpdate(path, err))
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	report := &models.ImportReport{
		RunID:          runID,
		Path:           path,
		Format:         adapter.Name(),
		RowsRead:       rows,
		ArtistsCreated: artistsAfter - artistsBefore,
		SongsCreated:   songsAfter - songsBefore,
		HistoryRows:    rows,
		Elapsed:        time.Since(start),
	}

	i.send(committedUpdate(report))
	logger.Info("import committed",
		"rows", report.RowsRead,
		"new_artists", report.ArtistsCreated,
		"new_songs", report.SongsCreated,
		"elapsed", report.Elapsed,
	)

	return report, nil
}

// ImportDir imports every compatible file in a directory, one transaction
// per file. A failed file rolls back alone and the batch continues; files
// with no compatible adapter are skipped.
func (i *Importer) ImportDir(ctx context.Context, dir string) (*models.BatchReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	batch := &models.BatchReport{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if _, err := ForPath(path); err != nil {
			batch.Skipped++
			batch.Files = append(batch.Files, models.FileOutcome{Path: path, Err: err})
			continue
		}

		report, err := i.ImportFile(ctx, path)
		if err != nil {
			batch.Failed++
			batch.Files = append(batch.Files, models.FileOutcome{Path: path, Err: err})
			continue
		}

		batch.Succeeded++
		batch.Files = append(batch.Files, models.FileOutcome{Path: path, Report: report})
	}

	if batch.Succeeded == 0 && batch.Failed == 0 {
		return batch, fmt.Errorf("%w: no importable files in %s", shared.ErrEmptySource, dir)
	}

	return batch, nil
}

// send delivers a progress update without blocking; updates are dropped if
// the receiver is not keeping up.
func (i *Importer) send(update ProgressUpdate) {
	if i.updates == nil {
		return
	}
	select {
	case i.updates <- update:
	default:
	}
}
