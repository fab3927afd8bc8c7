// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for history imports:
//  1. [FileListView] : Browse importable files in a directory (directory mode only)
//  2. [ImportView] : Monitor real-time progress updates with row counts
//  3. [ResultView] : Display the committed report or the failure
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the Importer, providing non-blocking status reporting during imports.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, a, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
