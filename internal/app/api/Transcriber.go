package api

import "context"

// TranscriptionRequest is one file submitted for speech-to-text.
type TranscriptionRequest struct {
	InputFilePath string
	// Language is an optional ISO-639-1 hint, e.g. "en".
	Language string
}

// Transcriber defines a transcription interface for converting audio files to text.
type Transcriber interface {
	Transcript(ctx context.Context, request TranscriptionRequest) (string, error)
}
