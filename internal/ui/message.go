package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"playlog/internal/importer"
	"playlog/internal/models"
)

type filesScannedMsg struct {
	files []fileItem
	err   error
}

type progressUpdateMsg importer.ProgressUpdate

type fileImportedMsg struct {
	report *models.ImportReport
	err    error
}

type batchImportedMsg struct {
	report *models.BatchReport
	err    error
}

var (
	_ tea.Msg = filesScannedMsg{}
	_ tea.Msg = progressUpdateMsg{}
	_ tea.Msg = fileImportedMsg{}
	_ tea.Msg = batchImportedMsg{}
)
