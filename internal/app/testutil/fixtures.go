package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// CreateTestAudioFile writes a minimal PCM WAV (16-bit stereo, 44.1 kHz) with
// dataSize bytes of silence into dir.
func CreateTestAudioFile(t *testing.T, dir, name string, dataSize int) string {
	t.Helper()

	header := make([]byte, 44)
	copy(header[0:], "RIFF")
	binary.LittleEndian.PutUint32(header[4:], uint32(36+dataSize))
	copy(header[8:], "WAVE")
	copy(header[12:], "fmt ")
	binary.LittleEndian.PutUint32(header[16:], 16)
	binary.LittleEndian.PutUint16(header[20:], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:], 2)
	binary.LittleEndian.PutUint32(header[24:], 44100)
	binary.LittleEndian.PutUint32(header[28:], 44100*2*2)
	binary.LittleEndian.PutUint16(header[32:], 4)
	binary.LittleEndian.PutUint16(header[34:], 16)
	copy(header[36:], "data")
	binary.LittleEndian.PutUint32(header[40:], uint32(dataSize))

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, append(header, make([]byte, dataSize)...), 0644); err != nil {
		t.Fatalf("Failed to create test audio file: %v", err)
	}
	return path
}

// CreateSizedFile creates a sparse file of exactly size bytes.
func CreateSizedFile(t *testing.T, dir, name string, size int64) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := f.Truncate(size); err != nil {
		t.Fatalf("Failed to size %s: %v", path, err)
	}
	return path
}

// CreateEmptyFile creates an empty file for testing
func CreateEmptyFile(t *testing.T, dir, name string) string {
	t.Helper()
	return CreateSizedFile(t, dir, name, 0)
}

// SetModTime sets both access and modification time of path.
func SetModTime(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("Failed to set mtime on %s: %v", path, err)
	}
}

// WriteTranscript creates the .txt sibling that marks an audio file as transcribed.
func WriteTranscript(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("Failed to write transcript %s: %v", path, err)
	}
}
