package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"rec2txt/internal/app/repository"
)

// GetConnection opens a PostgreSQL pool for dsn. The pool connects lazily.
func GetConnection(dsn string) (*sql.DB, error) {
	db, err := sql.Open(repository.DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// NewTranscriptionDB returns the history store backed by PostgreSQL.
func NewTranscriptionDB(dsn string) (*repository.CommonDB, error) {
	db, err := GetConnection(dsn)
	if err != nil {
		return nil, err
	}
	return repository.NewCommonDB(db, repository.DriverPostgres), nil
}
