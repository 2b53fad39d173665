package testutil

import (
	"context"
	"sort"
	"sync"

	"rec2txt/internal/app/model"
	"rec2txt/internal/app/repository"
)

// MockTranscriptionDAO keeps history rows in memory.
type MockTranscriptionDAO struct {
	mu sync.Mutex

	// ErrorMap forces an error from the named method.
	ErrorMap map[string]error

	Records []model.Transcription
	Closed  bool
	nextID  int
}

// NewMockTranscriptionDAO creates an empty in-memory store.
func NewMockTranscriptionDAO() *MockTranscriptionDAO {
	return &MockTranscriptionDAO{
		ErrorMap: make(map[string]error),
		nextID:   1,
	}
}

func (m *MockTranscriptionDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.ErrorMap["Close"]
}

func (m *MockTranscriptionDAO) EnsureSchema(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ErrorMap["EnsureSchema"]
}

func (m *MockTranscriptionDAO) RecordTranscription(ctx context.Context, t model.Transcription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["RecordTranscription"]; err != nil {
		return err
	}
	t.ID = m.nextID
	m.nextID++
	m.Records = append(m.Records, t)
	return nil
}

func (m *MockTranscriptionDAO) GetRecent(ctx context.Context, limit int) ([]model.Transcription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["GetRecent"]; err != nil {
		return nil, err
	}
	rows := append([]model.Transcription(nil), m.Records...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

// Snapshot returns a copy of the recorded rows.
func (m *MockTranscriptionDAO) Snapshot() []model.Transcription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Transcription(nil), m.Records...)
}

var _ repository.TranscriptionDAO = (*MockTranscriptionDAO)(nil)
