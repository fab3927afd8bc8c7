package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"

	"playlog/internal/importer"
)

var _ list.Item = fileItem{}

// fileItem wraps a history file path to implement [list.Item].
type fileItem struct {
	path   string
	format string
	size   int64
}

func (i fileItem) FilterValue() string { return filepath.Base(i.path) }
func (i fileItem) Title() string       { return filepath.Base(i.path) }
func (i fileItem) Description() string {
	return fmt.Sprintf("%s • %d bytes", i.format, i.size)
}

// scanDir collects the importable files under dir, skipping anything
// without a recognized extension.
func scanDir(dir string) ([]fileItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var items []fileItem
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		adapter, err := importer.ForPath(path)
		if err != nil {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		items = append(items, fileItem{path: path, format: adapter.Name(), size: info.Size()})
	}

	return items, nil
}
