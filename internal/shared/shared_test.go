package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name string
		d    time.Duration
		want string
	}{
		{
			name: "hours and minutes",
			d:    26*time.Hour + 3*time.Minute,
			want: "26h 3m",
		},
		{
			name: "minutes only",
			d:    45 * time.Minute,
			want: "45m",
		},
		{
			name: "seconds only",
			d:    30 * time.Second,
			want: "30s",
		},
		{
			name: "zero",
			d:    0,
			want: "0s",
		},
		{
			name: "sub-second rounds",
			d:    1499 * time.Millisecond,
			want: "1s",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.d)
			if got != tt.want {
				t.Errorf("FormatDuration(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestRebind(t *testing.T) {
	tc := []struct {
		name    string
		dialect string
		query   string
		want    string
	}{
		{
			name:    "sqlite passes through",
			dialect: DriverSQLite,
			query:   "SELECT * FROM artists WHERE name = ?",
			want:    "SELECT * FROM artists WHERE name = ?",
		},
		{
			name:    "postgres numbers placeholders",
			dialect: DriverPostgres,
			query:   "INSERT INTO songs (name, spotify_id) VALUES (?, ?)",
			want:    "INSERT INTO songs (name, spotify_id) VALUES ($1, $2)",
		},
		{
			name:    "postgres with no placeholders",
			dialect: DriverPostgres,
			query:   "SELECT COUNT(*) FROM artists",
			want:    "SELECT COUNT(*) FROM artists",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Rebind(tt.dialect, tt.query)
			if got != tt.want {
				t.Errorf("Rebind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewRunID(t *testing.T) {
	a := NewRunID()
	b := NewRunID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty run ids")
	}
	if a == b {
		t.Error("expected distinct run ids")
	}
	if len(strings.Split(a, "-")) != 5 {
		t.Errorf("expected UUID shape, got %q", a)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]string{"key": "value"}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(compact) != `{"key":"value"}` {
		t.Errorf("unexpected compact output: %s", compact)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(pretty), "\n") {
		t.Error("expected indented output")
	}
}

func TestNewFileLogger(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "logs", "playlog.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}

	logger.Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("expected log line in file, got %q", data)
	}
}
