package entry

import "errors"

var (
	// ErrEntryNotFound indicates the entry doesn't exist.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrInvalidInput indicates invalid input for entry operations.
	ErrInvalidInput = errors.New("invalid entry input")
	// ErrMalformedAnnotation indicates annotation input that isn't a JSON object.
	ErrMalformedAnnotation = errors.New("malformed annotation")
	// ErrUnknownAnnotation indicates the annotation isn't in the workspace.
	ErrUnknownAnnotation = errors.New("annotation not present in workspace")
)
