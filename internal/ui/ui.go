package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"playlog/internal/importer"
	"playlog/internal/models"
	"playlog/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FileListView ViewState = iota
	ImportView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *importer.Importer
	path         string
	dir          bool
	width        int
	height       int
	fileList     list.Model
	files        []fileItem
	spin         spinner.Model
	progressChan chan importer.ProgressUpdate
	resultChan   chan tea.Msg
	progress     importer.ProgressUpdate
	report       *models.ImportReport
	batch        *models.BatchReport
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model. The progress channel must be the
// same one wired into the engine so updates reach the view. When dir is
// true, path is scanned and the user picks files to import; otherwise
// the import starts immediately.
func NewModel(ctx context.Context, engine *importer.Importer, path string, dir bool, updates chan importer.ProgressUpdate) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.title

	view := ImportView
	if dir {
		view = FileListView
	}

	return &Model{
		ctx:          ctx,
		view:         view,
		engine:       engine,
		path:         path,
		dir:          dir,
		spin:         sp,
		progressChan: updates,
		resultChan:   make(chan tea.Msg, 1),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init scans the source directory or kicks off the import directly.
func (m *Model) Init() tea.Cmd {
	if m.dir {
		return m.scanFiles()
	}
	return tea.Batch(m.startFile(m.path), m.spin.Tick)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.fileList.Width() == 0 {
			m.fileList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FileListView:
			return m.handleFileListKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case filesScannedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.files = msg.files
		items := make([]list.Item, len(msg.files))
		for i, f := range msg.files {
			items[i] = f
		}
		m.fileList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.fileList.Title = fmt.Sprintf("History files in %s", m.path)
		m.fileList.SetSize(m.width-4, m.height-8)
		return m, nil

	case progressUpdateMsg:
		m.progress = importer.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case fileImportedMsg:
		m.report = msg.report
		m.err = msg.err
		m.view = ResultView
		return m, nil

	case batchImportedMsg:
		m.batch = msg.report
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	if m.view == FileListView {
		var cmd tea.Cmd
		m.fileList, cmd = m.fileList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case FileListView:
		return m.renderFileList()
	case ImportView:
		return m.renderImport()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleFileListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "a":
		m.view = ImportView
		return m, tea.Batch(m.startDir(), m.spin.Tick)
	case "enter":
		selected := m.fileList.SelectedItem()
		if selected != nil {
			if f, ok := selected.(fileItem); ok {
				m.view = ImportView
				return m, tea.Batch(m.startFile(f.path), m.spin.Tick)
			}
		}
	}

	var cmd tea.Cmd
	m.fileList, cmd = m.fileList.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	case "r":
		if !m.dir {
			return m, tea.Quit
		}
		m.view = FileListView
		m.report = nil
		m.batch = nil
		m.err = nil
		m.progress = importer.ProgressUpdate{}
		return m, nil
	}
	return m, nil
}

func (m *Model) scanFiles() tea.Cmd {
	return func() tea.Msg {
		files, err := scanDir(m.path)
		return filesScannedMsg{files: files, err: err}
	}
}

func (m *Model) startFile(path string) tea.Cmd {
	go func() {
		report, err := m.engine.ImportFile(m.ctx, path)
		m.resultChan <- fileImportedMsg{report: report, err: err}
	}()
	return m.waitForProgress()
}

func (m *Model) startDir() tea.Cmd {
	go func() {
		report, err := m.engine.ImportDir(m.ctx, m.path)
		m.resultChan <- batchImportedMsg{report: report, err: err}
	}()
	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		select {
		case update := <-m.progressChan:
			return progressUpdateMsg(update)
		case msg := <-m.resultChan:
			return msg
		}
	}
}

func (m *Model) renderFileList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.all, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.fileList.View(), helpView)
}

func (m *Model) renderImport() string {
	title := styles.title.Render("Importing Listening History")

	var phase string
	switch m.progress.Phase {
	case importer.OpenSource:
		phase = fmt.Sprintf("Reading %s...", m.progress.Path)
	case importer.ImportRows:
		phase = fmt.Sprintf("Imported %d rows from %s", m.progress.Row, m.progress.Path)
	case importer.Committed:
		phase = "Committing..."
	default:
		phase = "Starting..."
	}

	return fmt.Sprintf("%s\n\n%s %s\n%s", title, m.spin.View(), phase, styles.help.Render(m.progress.Message))
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Import failed: %v\n\nPress q to quit", m.err))
	}

	var info string
	switch {
	case m.report != nil:
		title := styles.ok.Render("✓ Import Complete!")
		info = fmt.Sprintf(
			"%s\n\nFile: %s (%s)\nRows: %d\nNew artists: %d\nNew songs: %d\nElapsed: %s",
			title,
			m.report.Path,
			m.report.Format,
			m.report.RowsRead,
			m.report.ArtistsCreated,
			m.report.SongsCreated,
			shared.FormatDuration(m.report.Elapsed),
		)
	case m.batch != nil:
		title := styles.ok.Render("✓ Batch Import Complete!")
		info = fmt.Sprintf(
			"%s\n\nFiles imported: %d\nFailed: %d\nSkipped: %d",
			title,
			m.batch.Succeeded,
			m.batch.Failed,
			m.batch.Skipped,
		)
		for _, outcome := range m.batch.Files {
			if outcome.Err != nil {
				info += fmt.Sprintf("\n%s", styles.warn.Render(fmt.Sprintf("  • %s: %v", outcome.Path, outcome.Err)))
			}
		}
	default:
		return styles.err.Render("No result available\n\nPress q to quit")
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s", info, helpView)
}
