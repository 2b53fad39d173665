package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rec2txt/internal/app/model"
)

func sampleTranscription() model.Transcription {
	return model.Transcription{
		JobID:              "7f9c2ba4-e88f-4d1a-9d36-2a1c0b9a5f10",
		FileName:           "recording_20240301_143005.wav",
		InputPath:          "/home/me/Recordings/recording_20240301_143005.wav",
		FileSize:           30 << 20,
		Transcoded:         true,
		Language:           "en",
		ProcessingTime:     2500 * time.Millisecond,
		Transcription:      "hello world",
		LastConversionTime: time.Unix(1709303405, 0),
	}
}

func TestCommonDB_Placeholders(t *testing.T) {
	tests := []struct {
		driver   string
		expected []string
	}{
		{driver: DriverSQLite, expected: []string{"?", "?", "?"}},
		{driver: DriverPostgres, expected: []string{"$1", "$2", "$3"}},
		{driver: "unknown", expected: []string{"?", "?", "?"}},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			c := NewCommonDB(nil, tt.driver)
			for i, want := range tt.expected {
				assert.Equal(t, want, c.placeholders(i+1))
			}
		})
	}
}

func TestCommonDB_EnsureSchema(t *testing.T) {
	tests := []struct {
		driver  string
		idRegex string
	}{
		{driver: DriverSQLite, idRegex: `id INTEGER PRIMARY KEY AUTOINCREMENT`},
		{driver: DriverPostgres, idRegex: `id SERIAL PRIMARY KEY`},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS transcriptions.*` + tt.idRegex).
				WillReturnResult(sqlmock.NewResult(0, 0))

			c := NewCommonDB(db, tt.driver)
			require.NoError(t, c.EnsureSchema(context.Background()))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommonDB_RecordTranscription(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	tr := sampleTranscription()
	mock.ExpectExec(`(?s)INSERT INTO transcriptions.*VALUES \(\$1, \$2, .*\$11\)`).
		WithArgs(tr.JobID, tr.FileName, tr.InputPath, tr.FileSize, 1, "en",
			int64(2500), "hello world", int64(1709303405), 0, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c := NewCommonDB(db, DriverPostgres)
	require.NoError(t, c.RecordTranscription(context.Background(), tr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommonDB_RecordTranscription_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO transcriptions`).WillReturnError(errors.New("disk full"))

	c := NewCommonDB(db, DriverSQLite)
	err = c.RecordTranscription(context.Background(), sampleTranscription())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert failed: disk full")
}

func TestCommonDB_GetRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	columns := []string{"id", "job_id", "file_name", "input_path", "file_size", "transcoded", "language",
		"processing_ms", "transcription", "last_conversion_time", "has_error", "error_message"}
	rows := sqlmock.NewRows(columns).
		AddRow(2, "job-2", "b.wav", "/r/b.wav", 2048, 0, "", 900, "", 1709303500, 1, "empty").
		AddRow(1, "job-1", "a.wav", "/r/a.wav", 1024, 1, "en", 1500, "text", 1709303405, 0, "")

	mock.ExpectQuery(`(?s)SELECT id, job_id.*FROM transcriptions.*LIMIT \?`).
		WithArgs(10).
		WillReturnRows(rows)

	c := NewCommonDB(db, DriverSQLite)
	got, err := c.GetRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "job-2", got[0].JobID)
	assert.True(t, got[0].HasError)
	assert.Equal(t, "empty", got[0].ErrorMessage)
	assert.False(t, got[0].Transcoded)

	assert.Equal(t, 1, got[1].ID)
	assert.True(t, got[1].Transcoded)
	assert.Equal(t, 1500*time.Millisecond, got[1].ProcessingTime)
	assert.Equal(t, int64(1709303405), got[1].LastConversionTime.Unix())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommonDB_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectClose()
	c := NewCommonDB(db, DriverSQLite)
	assert.NoError(t, c.Close())
	assert.NoError(t, mock.ExpectationsWereMet())

	assert.NoError(t, (&CommonDB{}).Close())
}
