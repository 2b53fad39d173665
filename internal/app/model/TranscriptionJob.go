package model

import (
	"path/filepath"
	"strings"
)

// TranscriptionJob carries one file through validation, optional transcoding and submission.
type TranscriptionJob struct {
	ID        string
	InputPath string
	Language  string
	Size      int64
	// SubmittedPath is the file sent to the API: InputPath or a temporary transcode.
	SubmittedPath string
	Transcoded    bool
}

// OutputPath is InputPath with its extension replaced by .txt.
func (j TranscriptionJob) OutputPath() string {
	return TranscriptPath(j.InputPath)
}

// TranscriptPath returns the sibling .txt path for an audio file.
func TranscriptPath(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".txt"
}
