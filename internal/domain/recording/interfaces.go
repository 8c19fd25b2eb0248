package recording

import "context"

// Repository provides persistence for recordings.
type Repository interface {
	Create(ctx context.Context, rec *Recording) error
	Get(ctx context.Context, id string) (*Recording, error)
	// ListByProject returns recordings ordered by creation time. Audio
	// blobs are omitted from listings.
	ListByProject(ctx context.Context, projectName string) ([]Recording, error)
	// SetTranscription stores the transcription and marks the recording
	// processed. It fails with repository.ErrConflict when the recording
	// was already processed.
	SetTranscription(ctx context.Context, id, transcription string) error
	Delete(ctx context.Context, id string) error
}
