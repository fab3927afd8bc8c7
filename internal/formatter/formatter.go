// package formatter provides functions to export listening history and reports to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"playlog/internal/models"
	"playlog/internal/shared"
	"playlog/internal/stats"
)

// HistoryToCSV converts play records to CSV with columns: Date, Song, Artist, SpotifyID, Link, Seconds
func HistoryToCSV(records []models.PlayRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Date", "Song", "Artist", "SpotifyID", "Link", "Seconds"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.PlayedAt.Format(time.RFC3339),
			rec.SongName,
			rec.ArtistName,
			rec.SpotifyID,
			rec.Link,
			strconv.FormatInt(int64(rec.ListeningTime/time.Second), 10),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToMarkdown converts a listening report to Markdown format
func ReportToMarkdown(report *stats.Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Listening Report (user %d)\n\n", report.UserID))

	if report.TotalPlays == 0 {
		buf.WriteString("No listening history recorded.\n")
		return buf.Bytes(), nil
	}

	buf.WriteString(fmt.Sprintf("**Plays**: %d\n", report.TotalPlays))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n", report.DistinctSongs))
	buf.WriteString(fmt.Sprintf("**Artists**: %d\n", report.DistinctArtists))
	buf.WriteString(fmt.Sprintf("**Listening time**: %s\n", shared.FormatDuration(report.TotalListening)))
	buf.WriteString(fmt.Sprintf("**Period**: %s to %s\n\n",
		report.FirstPlay.Format("January 2, 2006"),
		report.LastPlay.Format("January 2, 2006")))

	buf.WriteString("## Top Artists\n\n")
	for i, entry := range report.TopArtists {
		buf.WriteString(fmt.Sprintf("%d. %s (%d plays)\n", i+1, entry.Name, entry.Plays))
	}

	buf.WriteString("\n## Top Songs\n\n")
	for i, entry := range report.TopSongs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%d plays)\n", i+1, entry.Artist, entry.Name, entry.Plays))
	}

	buf.WriteString("\n## Plays by Month\n\n")
	for _, entry := range report.PlaysByMonth {
		buf.WriteString(fmt.Sprintf("- %s: %d\n", entry.Month, entry.Plays))
	}

	return buf.Bytes(), nil
}

// ReportToText converts a listening report to plain text format
func ReportToText(report *stats.Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Listening report for user %d\n", report.UserID))

	if report.TotalPlays == 0 {
		buf.WriteString("No listening history recorded.\n")
		return buf.Bytes(), nil
	}

	buf.WriteString(fmt.Sprintf("Plays: %d  Songs: %d  Artists: %d  Time: %s\n\n",
		report.TotalPlays, report.DistinctSongs, report.DistinctArtists,
		shared.FormatDuration(report.TotalListening)))

	buf.WriteString("Top artists:\n")
	for i, entry := range report.TopArtists {
		buf.WriteString(fmt.Sprintf("%d. %s (%d plays)\n", i+1, entry.Name, entry.Plays))
	}

	buf.WriteString("\nTop songs:\n")
	for i, entry := range report.TopSongs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (%d plays)\n", i+1, entry.Artist, entry.Name, entry.Plays))
	}

	return buf.Bytes(), nil
}

// ReportToJSON generates a JSON representation of a listening report
func ReportToJSON(report *stats.Report, pretty bool) ([]byte, error) {
	return shared.MarshalJSON(report, pretty)
}

// WriteHistoryExport exports play records to a CSV file.
//
// Defaults to "history_export.csv" as the filename.
func WriteHistoryExport(records []models.PlayRecord, path string) (string, error) {
	if path == "" {
		path = "history_export.csv"
	}

	data, err := HistoryToCSV(records)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}

// WriteReportExport exports a listening report in the requested format
// ("markdown", "text", or "json").
//
// Defaults to "report.<ext>" as the filename.
func WriteReportExport(report *stats.Report, format, path string) (string, error) {
	var data []byte
	var err error
	var ext string

	switch format {
	case "markdown", "md":
		data, err = ReportToMarkdown(report)
		ext = "md"
	case "text", "txt", "":
		data, err = ReportToText(report)
		ext = "txt"
	case "json":
		data, err = ReportToJSON(report, true)
		ext = "json"
	default:
		return "", fmt.Errorf("%w: unknown report format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate report: %w", err)
	}

	if path == "" {
		path = "report"
	}
	if filepath.Ext(path) == "" {
		path += "." + ext
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}
