package testutil

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"
)

// MockTranscoder is a testify mock of audio.Transcoder.
type MockTranscoder struct {
	mock.Mock
}

// ConvertToMp3 records the call and returns the configured error.
func (m *MockTranscoder) ConvertToMp3(ctx context.Context, inputPath, outputPath string) error {
	args := m.Called(ctx, inputPath, outputPath)
	return args.Error(0)
}

// WriteOutput returns a Run function that fills the output path with size bytes,
// standing in for a successful transcode.
func WriteOutput(size int64) func(mock.Arguments) {
	return func(args mock.Arguments) {
		outputPath := args.String(2)
		f, err := os.Create(outputPath)
		if err != nil {
			panic(err)
		}
		defer f.Close()
		if err := f.Truncate(size); err != nil {
			panic(err)
		}
	}
}
