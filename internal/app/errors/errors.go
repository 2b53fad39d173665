package errors

import (
	stderrors "errors"
	"fmt"
)

// Common error types
var (
	// Configuration errors
	ErrMissingAPIKey = New("OPENAI_API_KEY environment variable not set")
	ErrInvalidConfig = New("invalid configuration")

	// External dependency errors
	ErrMissingDependency = New("required program not found")
	ErrNoAudioSources    = New("no audio sources found")
	ErrSelectionAborted  = New("selection aborted")

	// Input errors
	ErrFileNotFound      = New("file not found")
	ErrNoAudioFiles      = New("no audio files found")
	ErrUnsupportedFormat = New("unsupported format")
	ErrEmptyFile         = New("file is empty")
	ErrFileTooLarge      = New("file too large")

	// Run-time failures
	ErrRecordingFailed     = New("recording failed")
	ErrTranscodeFailed     = New("transcoding failed")
	ErrTranscriptionFailed = New("transcription failed")
	ErrFileWriteFailed     = New("file write failed")
)

// Error represents a standardized error
type Error struct {
	message string
	hint    string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// WithHint wraps err and attaches an actionable hint for the user,
// e.g. the package to install.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: err.Error(),
		hint:    hint,
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil && e.cause.Error() != e.message {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message && t.cause == nil && t.hint == ""
}

// Hint returns the first hint found in err's chain, or "".
func Hint(err error) string {
	for err != nil {
		var e *Error
		if !stderrors.As(err, &e) {
			return ""
		}
		if e.hint != "" {
			return e.hint
		}
		err = e.cause
	}
	return ""
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
