package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. Failing to reach it is fatal.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS estimates (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT NOT NULL,
					hourly_rate TEXT NOT NULL,
					default_condition TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_estimates_created ON estimates(created_at)`,

				`CREATE TABLE IF NOT EXISTS line_items (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					estimate_id INTEGER NOT NULL,
					position INTEGER NOT NULL,
					raw_description TEXT NOT NULL,
					quantity TEXT NOT NULL,
					unit TEXT,
					quantity_parsed INTEGER NOT NULL DEFAULT 1,
					record_id INTEGER,
					confidence INTEGER NOT NULL DEFAULT 0,
					match_status TEXT NOT NULL,
					condition TEXT NOT NULL,
					labor_hours TEXT NOT NULL,
					labor_cost TEXT NOT NULL,
					material_price TEXT,
					material_cost TEXT NOT NULL,
					flagged INTEGER NOT NULL DEFAULT 0,
					flag_reasons TEXT,
					FOREIGN KEY (estimate_id) REFERENCES estimates(id) ON DELETE CASCADE
				)`,
				`CREATE INDEX idx_line_items_estimate ON line_items(estimate_id, position)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Track vendor catalog IDs and price provenance on line items",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE line_items ADD COLUMN catalog_id TEXT NOT NULL DEFAULT ''`,
				`ALTER TABLE line_items ADD COLUMN price_source TEXT NOT NULL DEFAULT ''`,
				`ALTER TABLE line_items ADD COLUMN price_url TEXT NOT NULL DEFAULT ''`,
			}
			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_versions (
			version INTEGER PRIMARY KEY,
			description TEXT,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("failed to create schema_versions table: %w", err)
	}

	current, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= current {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, upErr)
		}

		if _, recErr := tx.Exec(
			`INSERT INTO schema_versions (version, description) VALUES (?, ?)`,
			migration.Version, migration.Description,
		); recErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, recErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	final, err := s.schemaVersion(ctx)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("schema version %d does not match expected %d", final, ExpectedSchemaVersion)
	}
	return nil
}

func (s *SQLiteStorage) schemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_versions`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}
