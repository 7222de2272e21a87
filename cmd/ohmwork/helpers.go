// Package main contains the ohmwork CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/voltfield/ohmwork/internal/common"
	"github.com/voltfield/ohmwork/internal/config"
	"github.com/voltfield/ohmwork/internal/estimate"
	"github.com/voltfield/ohmwork/internal/labor"
	"github.com/voltfield/ohmwork/internal/match"
	"github.com/voltfield/ohmwork/internal/storage"
)

const defaultDBPath = "$HOME/.local/share/ohmwork/ohmwork.db"

// loadTable builds the normalizer and loads the labor-unit table named in
// config. Every command that matches or rehydrates estimates starts here.
func loadTable() (*labor.Table, *labor.Normalizer, error) {
	tablePath := viper.GetString("table.path")
	if tablePath == "" {
		return nil, nil, fmt.Errorf("%w: no labor table configured (set table.path or --table)", common.ErrMissingConfig)
	}
	tablePath = config.ExpandPath(tablePath)

	normalizer := labor.NewNormalizer()
	if rulesPath := viper.GetString("table.rules"); rulesPath != "" {
		var err error
		normalizer, err = normalizer.WithRules(config.ExpandPath(rulesPath))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load normalization rules: %w", err)
		}
	}

	table, stats, err := labor.NewLoader(normalizer).Load(tablePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load labor table: %w", err)
	}

	slog.Info("Labor table loaded",
		"path", tablePath,
		"records", stats.Loaded,
		"skipped_rows", stats.SkippedRows,
		"bad_values", stats.BadValues)

	return table, normalizer, nil
}

// newMatcher loads the table and wires the matcher over it.
func newMatcher() (*match.Matcher, *labor.Table, error) {
	table, normalizer, err := loadTable()
	if err != nil {
		return nil, nil, err
	}
	return match.New(table, normalizer), table, nil
}

// newEngine wires the estimate engine with the configured worker count.
func newEngine(matcher *match.Matcher) *estimate.Engine {
	opts := estimate.DefaultOptions()
	if workers := viper.GetInt("estimate.workers"); workers > 0 {
		opts.Workers = workers
	}
	return estimate.NewEngine(matcher, opts)
}

// openStorage opens the estimate history database and runs migrations.
// Callers own the Close.
func openStorage(ctx context.Context, table *labor.Table) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	db, err := storage.NewSQLiteStorage(dbPath, table)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// closeStorage closes the database, logging rather than failing the command.
func closeStorage(db *storage.SQLiteStorage) {
	if err := db.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}
