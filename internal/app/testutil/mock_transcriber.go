package testutil

import (
	"context"
	"path/filepath"
	"sync"

	"rec2txt/internal/app/api"
)

// MockTranscriber is an in-memory api.Transcriber.
// Responses and errors are keyed by the base name of the submitted file.
type MockTranscriber struct {
	mu sync.Mutex

	DefaultResponse string
	DefaultError    error
	ResponseMap     map[string]string
	ErrorMap        map[string]error

	// OnTranscript runs during the call, while the submitted file still exists.
	OnTranscript func(request api.TranscriptionRequest)

	Calls []api.TranscriptionRequest
}

// NewMockTranscriber creates a new MockTranscriber with sensible defaults
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		DefaultResponse: "This is a mock transcription result.",
		ResponseMap:     make(map[string]string),
		ErrorMap:        make(map[string]error),
	}
}

// Transcript implements the api.Transcriber interface
func (m *MockTranscriber) Transcript(ctx context.Context, request api.TranscriptionRequest) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, request)
	hook := m.OnTranscript
	m.mu.Unlock()

	if hook != nil {
		hook(request)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(request.InputFilePath)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.ErrorMap[name]; ok {
		return "", err
	}
	if m.DefaultError != nil {
		return "", m.DefaultError
	}
	if response, ok := m.ResponseMap[name]; ok {
		return response, nil
	}
	return m.DefaultResponse, nil
}

// CallCount returns how many requests were submitted.
func (m *MockTranscriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// SubmittedPaths lists the submitted file paths in call order.
func (m *MockTranscriber) SubmittedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, len(m.Calls))
	for i, call := range m.Calls {
		paths[i] = call.InputFilePath
	}
	return paths
}

var _ api.Transcriber = (*MockTranscriber)(nil)
