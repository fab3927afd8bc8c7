package shared

import (
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		for _, dialect := range []string{DriverSQLite, DriverPostgres} {
			migrations, err := loadMigrations(dialect)
			if err != nil {
				t.Fatalf("failed to load %s migrations: %v", dialect, err)
			}

			if len(migrations) == 0 {
				t.Fatalf("expected at least one %s migration", dialect)
			}

			for i := 1; i < len(migrations); i++ {
				if migrations[i].Version <= migrations[i-1].Version {
					t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
				}
			}

			for _, m := range migrations {
				if m.Up == "" {
					t.Errorf("migration version %d missing up SQL", m.Version)
				}
				if m.Down == "" {
					t.Errorf("migration version %d missing down SQL", m.Version)
				}
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(DriverSQLite, ":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(1)

		if err := RunMigrations(db, DriverSQLite); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
		if err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if count == 0 {
			t.Error("expected applied migrations to be recorded")
		}

		for _, table := range []string{"artists", "songs", "user_listening_history"} {
			var name string
			err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
			if err != nil {
				t.Errorf("expected table %s to exist: %v", table, err)
			}
		}

		// Running again is a no-op.
		if err := RunMigrations(db, DriverSQLite); err != nil {
			t.Fatalf("re-running migrations should be a no-op: %v", err)
		}

		if err := RollbackMigration(db, DriverSQLite); err != nil {
			t.Fatalf("failed to roll back migration: %v", err)
		}

		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = 'artists'").Scan(&name)
		if err == nil {
			t.Error("expected artists table to be dropped after rollback")
		}
	})

	t.Run("removeComments", func(t *testing.T) {
		input := "-- leading comment\nSELECT 1; -- trailing\nSELECT 2;"
		got := removeComments(input)

		if gotContains := containsComment(got); gotContains {
			t.Errorf("expected comments stripped, got %q", got)
		}
	})
}

func containsComment(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '-' && s[i+1] == '-' {
			return true
		}
	}
	return false
}
