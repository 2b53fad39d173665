package model

import (
	"fmt"
	"path/filepath"
	"time"
)

// RecordingTimestampLayout formats the timestamp embedded in recording file names.
const RecordingTimestampLayout = "20060102_150405"

// RecordingSession describes one capture from invocation to process exit.
type RecordingSession struct {
	StartedAt  time.Time
	Source     string
	OutputPath string
	// Limit is the maximum capture length; zero records until interrupted.
	Limit time.Duration
}

// NewRecordingSession derives the output path recording_<timestamp>.wav inside dir.
func NewRecordingSession(dir, source string, limit time.Duration, now time.Time) RecordingSession {
	return RecordingSession{
		StartedAt:  now,
		Source:     source,
		OutputPath: filepath.Join(dir, RecordingFileName(now)),
		Limit:      limit,
	}
}

// RecordingFileName returns recording_<YYYYMMDD_HHMMSS>.wav for t.
func RecordingFileName(t time.Time) string {
	return fmt.Sprintf("recording_%s.wav", t.Format(RecordingTimestampLayout))
}

// RecordingResult is what the recorder reports once the child has exited.
type RecordingResult struct {
	Path     string
	Duration time.Duration
	Size     int64
	// Created is false when the recorder never wrote the output file.
	Created bool
}
