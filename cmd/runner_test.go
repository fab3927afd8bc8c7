package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"playlog/internal/repositories"
	"playlog/internal/shared"
	tu "playlog/internal/testing"
)

const sampleCSV = `"January 5, 2024 at 3:45PM",Song A,Artist X,abc123,http://link` + "\n" +
	`"January 6, 2024 at 08:50PM",Song B,Artist X,def456,http://link2` + "\n"

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			db := tu.MustOpenDB(t)

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
				DB:     db,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.db != db {
				t.Error("expected db to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

// newTestApp wires a Runner with an in-memory database into a root command.
func newTestApp(t *testing.T, output *bytes.Buffer) (*cli.Command, *Runner) {
	t.Helper()

	runner := NewRunner(RunnerOpts{
		Config: shared.DefaultConfig(),
		DB:     tu.MustOpenDB(t),
		Output: output,
	})

	app := &cli.Command{
		Name:     "playlog",
		Commands: runner.register(),
	}
	return app, runner
}

func TestImportCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("imports a file end to end", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, runner := newTestApp(t, output)

		dir := t.TempDir()
		path := tu.MustWriteFile(t, dir, "history.csv", sampleCSV)

		err := app.Run(ctx, []string{"playlog", "import", "file", path})
		if err != nil {
			t.Fatalf("import command failed: %v", err)
		}

		text := output.String()
		if !strings.Contains(text, "Rows imported: 2") {
			t.Errorf("expected summary in output, got: %s", text)
		}

		// Progress lines drain before the summary is written.
		if progress := strings.Index(text, "📥"); progress < 0 || progress > strings.Index(text, "Rows imported") {
			t.Errorf("expected progress output before the summary, got: %s", text)
		}

		count, err := repositories.NewHistoryRepository(runner.db, shared.DriverSQLite).CountForUser(ctx, 1)
		if err != nil {
			t.Fatalf("failed to count history: %v", err)
		}
		if count != 2 {
			t.Errorf("expected 2 committed rows, got %d", count)
		}
	})

	t.Run("emits a JSON report", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, _ := newTestApp(t, output)

		dir := t.TempDir()
		path := tu.MustWriteFile(t, dir, "history.csv", sampleCSV)

		err := app.Run(ctx, []string{"playlog", "import", "file", "--json", path})
		if err != nil {
			t.Fatalf("import command failed: %v", err)
		}

		if !strings.Contains(output.String(), `"RowsRead": 2`) {
			t.Errorf("expected JSON report, got: %s", output.String())
		}
	})

	t.Run("fails on a malformed file", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, runner := newTestApp(t, output)

		dir := t.TempDir()
		path := tu.MustWriteFile(t, dir, "history.csv", sampleCSV+"short,row\n")

		if err := app.Run(ctx, []string{"playlog", "import", "file", path}); err == nil {
			t.Fatal("expected error for malformed file")
		}

		count, _ := repositories.NewHistoryRepository(runner.db, shared.DriverSQLite).CountForUser(ctx, 1)
		if count != 0 {
			t.Errorf("expected rollback, got %d rows", count)
		}
	})
}

func TestStatsCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("reports on imported history", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, _ := newTestApp(t, output)

		dir := t.TempDir()
		path := tu.MustWriteFile(t, dir, "history.csv", sampleCSV)

		if err := app.Run(ctx, []string{"playlog", "import", "file", path}); err != nil {
			t.Fatalf("import failed: %v", err)
		}

		output.Reset()
		if err := app.Run(ctx, []string{"playlog", "stats"}); err != nil {
			t.Fatalf("stats command failed: %v", err)
		}

		text := output.String()
		if !strings.Contains(text, "Plays: 2") || !strings.Contains(text, "Artist X") {
			t.Errorf("unexpected stats output: %s", text)
		}
	})

	t.Run("reports an empty database", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, _ := newTestApp(t, output)

		if err := app.Run(ctx, []string{"playlog", "stats"}); err != nil {
			t.Fatalf("stats command failed: %v", err)
		}

		if !strings.Contains(output.String(), "No listening history recorded.") {
			t.Errorf("expected empty message, got: %s", output.String())
		}
	})
}

func TestExportCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("exports history to CSV", func(t *testing.T) {
		output := &bytes.Buffer{}
		app, _ := newTestApp(t, output)

		dir := t.TempDir()
		path := tu.MustWriteFile(t, dir, "history.csv", sampleCSV)

		if err := app.Run(ctx, []string{"playlog", "import", "file", path}); err != nil {
			t.Fatalf("import failed: %v", err)
		}

		outPath := dir + "/export.csv"
		if err := app.Run(ctx, []string{"playlog", "export", "history", "-o", outPath}); err != nil {
			t.Fatalf("export command failed: %v", err)
		}

		content := tu.MustReadFile(t, outPath)
		if !strings.Contains(content, "abc123") || !strings.Contains(content, "def456") {
			t.Errorf("expected both plays in export, got: %s", content)
		}
	})
}
