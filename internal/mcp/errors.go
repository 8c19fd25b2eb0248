package mcp

import (
	"errors"
	"fmt"

	"github.com/fieldstack/snaglist/internal/backup"
	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/domain/project"
	"github.com/fieldstack/snaglist/internal/domain/recording"
	"github.com/fieldstack/snaglist/internal/store"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the project name or id"}
	case errors.Is(err, project.ErrNameTaken):
		return &APIError{Code: "NAME_TAKEN", Message: "project name already in use", RecoveryHint: "Pick a different name"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid project input"}
	case errors.Is(err, entry.ErrEntryNotFound):
		return &APIError{Code: "ENTRY_NOT_FOUND", Message: "entry not found", RecoveryHint: "Check the entry id or snag number"}
	case errors.Is(err, entry.ErrMalformedAnnotation):
		return &APIError{Code: "MALFORMED_ANNOTATION", Message: "annotation is not a JSON object", RecoveryHint: "Send each annotation as an object"}
	case errors.Is(err, entry.ErrUnknownAnnotation):
		return &APIError{Code: "UNKNOWN_ANNOTATION", Message: "annotation not found on this entry"}
	case errors.Is(err, entry.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid entry input"}
	case errors.Is(err, recording.ErrRecordingNotFound):
		return &APIError{Code: "RECORDING_NOT_FOUND", Message: "recording not found"}
	case errors.Is(err, recording.ErrAlreadyTranscribed):
		return &APIError{Code: "ALREADY_TRANSCRIBED", Message: "recording was already transcribed", RecoveryHint: "Transcriptions are write-once"}
	case errors.Is(err, recording.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid recording input"}
	case errors.Is(err, backup.ErrMalformedSnapshot):
		return &APIError{Code: "MALFORMED_SNAPSHOT", Message: "snapshot failed validation", Details: err.Error(), RecoveryHint: "Nothing was restored; fix the backup file"}
	case errors.Is(err, store.ErrUnavailable):
		return &APIError{Code: "STORE_UNAVAILABLE", Message: "persistence store unavailable", RecoveryHint: "Check store_status and retry"}
	default:
		return nil
	}
}

// toolError wraps a domain error for return from a tool handler, keeping
// the stable code when one is mapped.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
