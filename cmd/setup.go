package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"playlog/internal/shared"
)

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "driver", config.Database.Driver, "dsn", config.Database.DSN)

	db, cleanup, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer cleanup()

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db, config.Database.Driver); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.DSN)
	return nil
}

// SetupConfig writes the embedded config template to disk.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	outputPath := cmd.String("output")
	force := cmd.Bool("force")

	if _, err := os.Stat(outputPath); err == nil && !force {
		return fmt.Errorf("%w: %s already exists (use --force to overwrite)", shared.ErrInvalidArgument, outputPath)
	}

	if err := shared.CreateConfigFile(outputPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.logger.Info("config file created", "path", outputPath)
	r.writePlain("✓ Config template written to %s\n", outputPath)
	r.writePlain("Edit the [database] section before running 'playlog setup database'\n")
	return nil
}

// SetupRollback reverts the most recently applied migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, cleanup, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer cleanup()

	r.logger.Info("rolling back most recent migration")
	if err := shared.RollbackMigration(db, config.Database.Driver); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	r.writePlain("✓ Migration rolled back\n")
	return nil
}
