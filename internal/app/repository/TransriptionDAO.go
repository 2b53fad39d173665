package repository

import (
	"context"

	"rec2txt/internal/app/model"
)

// TranscriptionDAO stores the history of transcription jobs.
type TranscriptionDAO interface {
	Close() error

	// EnsureSchema creates the transcriptions table when it does not exist yet.
	EnsureSchema(ctx context.Context) error

	RecordTranscription(ctx context.Context, t model.Transcription) error

	// GetRecent returns up to limit rows, newest first.
	GetRecent(ctx context.Context, limit int) ([]model.Transcription, error)
}
