package formatter

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"playlog/internal/models"
	"playlog/internal/stats"
	tu "playlog/internal/testing"
)

func sampleRecords() []models.PlayRecord {
	return []models.PlayRecord{
		{
			PlayedAt:      time.Date(2024, time.January, 5, 15, 45, 0, 0, time.UTC),
			SongName:      "Song A",
			ArtistName:    "Artist X",
			SpotifyID:     "abc123",
			Link:          "http://link",
			ListeningTime: 210 * time.Second,
		},
		{
			PlayedAt:   time.Date(2024, time.February, 1, 20, 50, 0, 0, time.UTC),
			SongName:   "Hello, World",
			ArtistName: "Artist Y",
			SpotifyID:  "def456",
		},
	}
}

func sampleReport() *stats.Report {
	return &stats.Report{
		UserID:          1,
		TotalPlays:      6,
		DistinctSongs:   3,
		DistinctArtists: 2,
		TotalListening:  6 * time.Minute,
		FirstPlay:       time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		LastPlay:        time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
		TopArtists:      []stats.ArtistPlays{{Name: "Artist X", Plays: 4}},
		TopSongs:        []stats.SongPlays{{Name: "Song A", Artist: "Artist X", Plays: 3}},
		PlaysByMonth:    []stats.MonthPlays{{Month: "2024-01", Plays: 3}, {Month: "2024-02", Plays: 3}},
	}
}

func TestHistoryToCSV(t *testing.T) {
	data, err := HistoryToCSV(sampleRecords())
	if err != nil {
		t.Fatalf("failed to generate CSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}

	if lines[0] != "Date,Song,Artist,SpotifyID,Link,Seconds" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Song A") || !strings.Contains(lines[1], "210") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	// Embedded comma must be quoted.
	if !strings.Contains(lines[2], `"Hello, World"`) {
		t.Errorf("expected quoted song name, got: %s", lines[2])
	}
}

func TestReportToMarkdown(t *testing.T) {
	data, err := ReportToMarkdown(sampleReport())
	if err != nil {
		t.Fatalf("failed to generate markdown: %v", err)
	}
	text := string(data)

	for _, want := range []string{
		"# Listening Report (user 1)",
		"**Plays**: 6",
		"**Listening time**: 6m",
		"## Top Artists",
		"1. Artist X (4 plays)",
		"1. Artist X - Song A (3 plays)",
		"- 2024-01: 3",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
}

func TestReportToMarkdownEmpty(t *testing.T) {
	data, err := ReportToMarkdown(&stats.Report{UserID: 1})
	if err != nil {
		t.Fatalf("failed to generate markdown: %v", err)
	}
	if !strings.Contains(string(data), "No listening history recorded.") {
		t.Errorf("expected empty-history message, got: %s", data)
	}
}

func TestReportToText(t *testing.T) {
	data, err := ReportToText(sampleReport())
	if err != nil {
		t.Fatalf("failed to generate text: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "Plays: 6  Songs: 3  Artists: 2  Time: 6m") {
		t.Errorf("unexpected summary line in: %s", text)
	}
	if !strings.Contains(text, "1. Artist X (4 plays)") {
		t.Errorf("expected top artist line in: %s", text)
	}
}

func TestWriteHistoryExport(t *testing.T) {
	tmpDir := t.TempDir()
	outPath := filepath.Join(tmpDir, "history.csv")

	path, err := WriteHistoryExport(sampleRecords(), outPath)
	if err != nil {
		t.Fatalf("failed to write export: %v", err)
	}
	if path != outPath {
		t.Errorf("expected path %s, got %s", outPath, path)
	}

	content := tu.MustReadFile(t, path)
	if !strings.Contains(content, "abc123") {
		t.Errorf("expected spotify id in export, got: %s", content)
	}
}

func TestWriteReportExport(t *testing.T) {
	t.Run("appends the format extension", func(t *testing.T) {
		tmpDir := t.TempDir()
		base := filepath.Join(tmpDir, "report")

		path, err := WriteReportExport(sampleReport(), "markdown", base)
		if err != nil {
			t.Fatalf("failed to write report: %v", err)
		}
		if filepath.Ext(path) != ".md" {
			t.Errorf("expected .md extension, got %s", path)
		}
		tu.AssertFileExists(t, path)
	})

	t.Run("writes JSON reports", func(t *testing.T) {
		tmpDir := t.TempDir()
		base := filepath.Join(tmpDir, "report")

		path, err := WriteReportExport(sampleReport(), "json", base)
		if err != nil {
			t.Fatalf("failed to write report: %v", err)
		}

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, `"total_plays": 6`) {
			t.Errorf("expected JSON fields, got: %s", content)
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		if _, err := WriteReportExport(sampleReport(), "pdf", ""); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
