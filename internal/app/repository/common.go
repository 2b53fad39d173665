package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"rec2txt/internal/app/model"
)

// Driver names understood by NewCommonDB.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// CommonDB provides shared database functionality
type CommonDB struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance
func NewCommonDB(db *sql.DB, driverName string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case DriverPostgres:
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
	}
}

// EnsureSchema creates the transcriptions table for the current dialect.
func (c *CommonDB) EnsureSchema(ctx context.Context) error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if c.driverName == DriverPostgres {
		idColumn = "id SERIAL PRIMARY KEY"
	}

	query := `CREATE TABLE IF NOT EXISTS transcriptions (
		` + idColumn + `,
		job_id TEXT NOT NULL,
		file_name TEXT NOT NULL,
		input_path TEXT NOT NULL,
		file_size BIGINT NOT NULL DEFAULT 0,
		transcoded INTEGER NOT NULL DEFAULT 0,
		language TEXT NOT NULL DEFAULT '',
		processing_ms BIGINT NOT NULL DEFAULT 0,
		transcription TEXT NOT NULL DEFAULT '',
		last_conversion_time BIGINT NOT NULL,
		has_error INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT ''
	)`

	if _, err := c.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table failed: %w", err)
	}
	return nil
}

// RecordTranscription records one job, successful or not.
func (c *CommonDB) RecordTranscription(ctx context.Context, t model.Transcription) error {
	params := make([]string, 11)
	for i := range params {
		params[i] = c.placeholders(i + 1)
	}

	query := fmt.Sprintf(
		`INSERT INTO transcriptions (
			job_id, file_name, input_path, file_size, transcoded, language,
			processing_ms, transcription, last_conversion_time, has_error, error_message
		) VALUES (%s)`,
		strings.Join(params, ", "),
	)

	_, err := c.db.ExecContext(ctx,
		query,
		t.JobID, t.FileName, t.InputPath, t.FileSize, boolToInt(t.Transcoded), t.Language,
		t.ProcessingTime.Milliseconds(), t.Transcription, t.LastConversionTime.Unix(),
		boolToInt(t.HasError), t.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}

	return nil
}

// GetRecent retrieves the newest transcriptions.
func (c *CommonDB) GetRecent(ctx context.Context, limit int) ([]model.Transcription, error) {
	query := fmt.Sprintf(
		`SELECT id, job_id, file_name, input_path, file_size, transcoded, language,
		        processing_ms, transcription, last_conversion_time, has_error, error_message
		 FROM transcriptions
		 ORDER BY last_conversion_time DESC, id DESC
		 LIMIT %s`,
		c.placeholders(1),
	)

	rows, err := c.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var transcriptions []model.Transcription
	for rows.Next() {
		var (
			t            model.Transcription
			transcoded   int
			processingMs int64
			convertedAt  int64
			hasError     int
		)
		err := rows.Scan(
			&t.ID,
			&t.JobID,
			&t.FileName,
			&t.InputPath,
			&t.FileSize,
			&transcoded,
			&t.Language,
			&processingMs,
			&t.Transcription,
			&convertedAt,
			&hasError,
			&t.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		t.Transcoded = transcoded != 0
		t.ProcessingTime = time.Duration(processingMs) * time.Millisecond
		t.LastConversionTime = time.Unix(convertedAt, 0)
		t.HasError = hasError != 0
		transcriptions = append(transcriptions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return transcriptions, nil
}

// Close closes the database connection
func (c *CommonDB) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// DB returns the underlying database connection
func (c *CommonDB) DB() *sql.DB {
	return c.db
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ TranscriptionDAO = (*CommonDB)(nil)
