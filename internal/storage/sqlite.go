// Package storage provides the estimate history persistence layer.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/voltfield/ohmwork/internal/labor"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements service.Storage using SQLite. It holds a
// reference to the loaded labor table so saved line items can be
// rehydrated with their matched records on read.
type SQLiteStorage struct {
	db     *sql.DB
	table  *labor.Table
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance. The labor table
// is used to resolve saved record identifiers back into records; a saved
// ID that no longer exists in the current table snapshot loads as an
// unmatched line.
func NewSQLiteStorage(dbPath string, table *labor.Table) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		table:  table,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
