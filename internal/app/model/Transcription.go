package model

import "time"

// Transcription is one row of the transcription history.
type Transcription struct {
	ID                 int
	JobID              string
	FileName           string
	InputPath          string
	FileSize           int64
	Transcoded         bool
	Language           string
	ProcessingTime     time.Duration
	Transcription      string
	LastConversionTime time.Time
	HasError           bool
	ErrorMessage       string
}
