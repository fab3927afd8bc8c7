package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"playlog/internal/importer"
	"playlog/internal/shared"
	"playlog/internal/ui"
)

// TUI launches the interactive terminal UI for history imports.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		path = r.config.Import.DefaultPath
	}
	if path == "" {
		return fmt.Errorf("%w: a source file or directory is required", shared.ErrMissingArgument)
	}

	config := r.loadConfig(cmd.String("config"))

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	db, cleanup, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer cleanup()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/playlog-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	progressCh := make(chan importer.ProgressUpdate, 50)
	engine := importer.New(db, config.Database.Driver, importer.Options{
		UserID:  r.userID(cmd),
		Logger:  fileLogger,
		Updates: progressCh,
	})

	model := ui.NewModel(ctx, engine, path, info.IsDir(), progressCh)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
