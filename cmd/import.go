package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"playlog/internal/importer"
	"playlog/internal/models"
	"playlog/internal/shared"
)

// ImportFile imports a single history export into the database.
func (r *Runner) ImportFile(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		path = r.config.Import.DefaultPath
	}
	if path == "" {
		return fmt.Errorf("%w: a source file path is required", shared.ErrMissingArgument)
	}

	config := r.loadConfig(cmd.String("config"))

	db, cleanup, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer cleanup()

	r.logger.Info("starting import", "path", path, "user", r.userID(cmd))
	r.writePlain("Importing listening history...\n")
	r.writePlain("Source: %s\n\n", path)

	// Progress channel and goroutine to handle updates. The done channel
	// guarantees the printer has drained before the summary is written,
	// since r.output is not safe for concurrent writes.
	progressCh := make(chan importer.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case importer.OpenSource:
				r.writePlain("📥 %s\n", update.Message)
			case importer.ImportRows:
				r.writePlain("   %s\n", update.Message)
			case importer.Failed:
				r.writePlain("✗ %s\n", update.Message)
			}
		}
	}()

	engine := importer.New(db, config.Database.Driver, importer.Options{
		UserID:  r.userID(cmd),
		Logger:  r.logger,
		Updates: progressCh,
	})

	report, err := engine.ImportFile(ctx, path)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	r.writeImportSummary(report)
	return nil
}

// ImportDir imports every recognized history file under a directory.
//
// Each file commits or rolls back alone.
func (r *Runner) ImportDir(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: a source directory path is required", shared.ErrMissingArgument)
	}

	config := r.loadConfig(cmd.String("config"))

	db, cleanup, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer cleanup()

	r.logger.Info("starting batch import", "dir", path, "user", r.userID(cmd))
	r.writePlain("Importing listening history from %s...\n\n", path)

	progressCh := make(chan importer.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case importer.OpenSource:
				r.writePlain("📥 %s\n", update.Message)
			case importer.Committed:
				r.writePlain("✓ %s\n", update.Message)
			case importer.Failed:
				r.writePlain("✗ %s\n", update.Message)
			}
		}
	}()

	engine := importer.New(db, config.Database.Driver, importer.Options{
		UserID:  r.userID(cmd),
		Logger:  r.logger,
		Updates: progressCh,
	})

	batch, err := engine.ImportDir(ctx, path)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(batch, cmd.Bool("pretty"))
	}

	r.writePlain("\n")
	r.writePlainHeader("Batch Import Complete")
	r.writePlain("Imported: %d files\n", batch.Succeeded)
	r.writePlain("Failed: %d files\n", batch.Failed)
	r.writePlain("Skipped: %d files\n", batch.Skipped)

	for _, outcome := range batch.Files {
		if outcome.Err != nil {
			r.writePlain("  - %s: %v\n", outcome.Path, outcome.Err)
		}
	}

	return nil
}

func (r *Runner) writeImportSummary(report *models.ImportReport) {
	r.writePlain("\n")
	r.writePlainHeader("Import Complete")
	r.writePlain("Source: %s (%s)\n", report.Path, report.Format)
	r.writePlain("Rows imported: %d\n", report.RowsRead)
	r.writePlain("New artists: %d\n", report.ArtistsCreated)
	r.writePlain("New songs: %d\n", report.SongsCreated)
	r.writePlain("Elapsed: %s\n", shared.FormatDuration(report.Elapsed))
}

// userID resolves the user flag against the configured default.
func (r *Runner) userID(cmd *cli.Command) int64 {
	if id := cmd.Int64("user"); id != 0 {
		return id
	}
	return r.config.Import.UserID
}
