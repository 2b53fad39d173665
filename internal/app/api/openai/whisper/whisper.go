package whisper

import (
	"context"

	"github.com/sashabaranov/go-openai"
	"rec2txt/internal/app/api"
	"rec2txt/internal/app/errors"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
// An empty model falls back to whisper-1.
func NewRemoteTranscriber(client *openai.Client, model string) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, model: model}
}

// Transcript uploads the file and returns the recognized text.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, request api.TranscriptionRequest) (string, error) {
	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: request.InputFilePath,
		Language: request.Language,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", errors.Wrapf(errors.ErrTranscriptionFailed, "API error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", errors.Wrapf(errors.ErrTranscriptionFailed, "createTranscription failed: %v", err)
	}

	return resp.Text, nil
}

var _ api.Transcriber = (*RemoteTranscriber)(nil)
