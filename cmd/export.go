package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"playlog/internal/formatter"
	"playlog/internal/repositories"
	"playlog/internal/stats"
)

// ExportHistory writes a user's full listening history to a CSV file.
func (r *Runner) ExportHistory(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, cleanup, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer cleanup()

	userID := r.userID(cmd)

	records, err := repositories.NewHistoryRepository(db, config.Database.Driver).ListForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	outputPath := cmd.String("output")
	if outputPath == "" && config.Export.OutputDir != "" {
		outputPath = filepath.Join(config.Export.OutputDir, "history_export.csv")
	}

	r.logger.Info("exporting history", "user", userID, "rows", len(records))

	path, err := formatter.WriteHistoryExport(records, outputPath)
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported %d plays to %s\n", len(records), path)
	return nil
}

// ExportReport builds a listening report and writes it to disk.
func (r *Runner) ExportReport(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, cleanup, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer cleanup()

	userID := r.userID(cmd)
	format := cmd.String("format")

	report, err := stats.Build(ctx, db, config.Database.Driver, userID, cmd.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	outputPath := cmd.String("output")
	if outputPath == "" && config.Export.OutputDir != "" {
		outputPath = filepath.Join(config.Export.OutputDir, "report")
	}

	r.logger.Info("exporting report", "user", userID, "format", format)

	path, err := formatter.WriteReportExport(report, format, outputPath)
	if err != nil {
		return err
	}

	r.writePlain("✓ Report written to %s\n", path)
	return nil
}
