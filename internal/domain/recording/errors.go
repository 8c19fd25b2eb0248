package recording

import "errors"

var (
	// ErrRecordingNotFound indicates the recording doesn't exist.
	ErrRecordingNotFound = errors.New("recording not found")
	// ErrAlreadyTranscribed indicates the one-time transcription already happened.
	ErrAlreadyTranscribed = errors.New("recording already transcribed")
	// ErrInvalidInput indicates invalid recording input.
	ErrInvalidInput = errors.New("invalid recording input")
)
