package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"playlog/internal/shared"
	"playlog/internal/stats"
)

// Stats summarizes a user's listening history.
func (r *Runner) Stats(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, cleanup, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer cleanup()

	userID := r.userID(cmd)
	limit := cmd.Int("limit")

	r.logger.Info("building listening report", "user", userID, "limit", limit)

	report, err := stats.Build(ctx, db, config.Database.Driver, userID, limit)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Listening Report (user %d)", report.UserID))

	if report.TotalPlays == 0 {
		r.writePlain("No listening history recorded.\n")
		return nil
	}

	r.writePlain("Plays: %d\n", report.TotalPlays)
	r.writePlain("Songs: %d\n", report.DistinctSongs)
	r.writePlain("Artists: %d\n", report.DistinctArtists)
	r.writePlain("Listening time: %s\n", shared.FormatDuration(report.TotalListening))
	r.writePlain("First play: %s\n", report.FirstPlay.Format("January 2, 2006"))
	r.writePlain("Last play: %s\n", report.LastPlay.Format("January 2, 2006"))

	r.writePlainln("Top artists:")
	for i, entry := range report.TopArtists {
		r.writePlain("  %d. %s (%d plays)\n", i+1, entry.Name, entry.Plays)
	}

	r.writePlainln("Top songs:")
	for i, entry := range report.TopSongs {
		r.writePlain("  %d. %s - %s (%d plays)\n", i+1, entry.Artist, entry.Name, entry.Plays)
	}

	r.writePlainln("Plays by month:")
	for _, entry := range report.PlaysByMonth {
		r.writePlain("  %s: %d\n", entry.Month, entry.Plays)
	}

	return nil
}
