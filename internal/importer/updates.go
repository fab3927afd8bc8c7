package importer

import (
	"fmt"

	"playlog/internal/models"
)

// ProgressUpdate represents a progress event during an import run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Row     int    // Rows imported so far (0 outside ImportRows)
	Path    string // Source file being imported
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	OpenSource Phase = iota
	ImportRows
	Committed
	Failed
)

func (p Phase) String() string {
	switch p {
	case OpenSource:
		return "open_source"
	case ImportRows:
		return "import_rows"
	case Committed:
		return "committed"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

func openSourceUpdate(path, format string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   OpenSource,
		Path:    path,
		Message: fmt.Sprintf("Reading %s (%s)...", path, format),
	}
}

func importRowUpdate(path string, row int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportRows,
		Row:     row,
		Path:    path,
		Message: fmt.Sprintf("Imported %d rows...", row),
	}
}

func committedUpdate(report *models.ImportReport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Committed,
		Row:     report.RowsRead,
		Path:    report.Path,
		Message: fmt.Sprintf("Committed %d rows (%d new artists, %d new songs)", report.RowsRead, report.ArtistsCreated, report.SongsCreated),
		Data:    report,
	}
}

func failedUpdate(path string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Failed,
		Path:    path,
		Message: fmt.Sprintf("Import failed: %v", err),
	}
}
