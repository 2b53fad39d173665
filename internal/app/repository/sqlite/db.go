package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"rec2txt/internal/app/repository"
)

// GetConnection opens (creating if needed) the SQLite database at dbPath.
func GetConnection(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open(repository.DriverSQLite, fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// NewTranscriptionDB returns the history store backed by the SQLite file at dbPath.
func NewTranscriptionDB(dbPath string) (*repository.CommonDB, error) {
	db, err := GetConnection(dbPath)
	if err != nil {
		return nil, err
	}
	return repository.NewCommonDB(db, repository.DriverSQLite), nil
}
