package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldstack/snaglist/internal/backup"
	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/domain/project"
	"github.com/fieldstack/snaglist/internal/domain/recording"
	"github.com/fieldstack/snaglist/internal/store"
)

func TestMapErrorCodes(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{project.ErrProjectNotFound, "PROJECT_NOT_FOUND"},
		{project.ErrNameTaken, "NAME_TAKEN"},
		{project.ErrInvalidInput, "INVALID_INPUT"},
		{entry.ErrEntryNotFound, "ENTRY_NOT_FOUND"},
		{entry.ErrMalformedAnnotation, "MALFORMED_ANNOTATION"},
		{entry.ErrUnknownAnnotation, "UNKNOWN_ANNOTATION"},
		{entry.ErrInvalidInput, "INVALID_INPUT"},
		{recording.ErrRecordingNotFound, "RECORDING_NOT_FOUND"},
		{recording.ErrAlreadyTranscribed, "ALREADY_TRANSCRIBED"},
		{backup.ErrMalformedSnapshot, "MALFORMED_SNAPSHOT"},
		{store.ErrUnavailable, "STORE_UNAVAILABLE"},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			apiErr := MapError(tc.err)
			require.NotNil(t, apiErr)
			require.Equal(t, tc.code, apiErr.Code)
		})
	}
}

func TestMapErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading entry: %w", entry.ErrEntryNotFound)
	apiErr := MapError(wrapped)
	require.NotNil(t, apiErr)
	require.Equal(t, "ENTRY_NOT_FOUND", apiErr.Code)
}

func TestMapErrorUnknown(t *testing.T) {
	require.Nil(t, MapError(errors.New("something else")))
	require.Nil(t, MapError(nil))
}

func TestToolErrorPassthrough(t *testing.T) {
	plain := errors.New("io failure")
	require.Equal(t, plain, toolError(plain))

	var apiErr *APIError
	require.ErrorAs(t, toolError(project.ErrNameTaken), &apiErr)
	require.Equal(t, "NAME_TAKEN", apiErr.Code)
}
