package recording

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fieldstack/snaglist/internal/repository"
	"github.com/google/uuid"
)

// Service handles recording operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new recording service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create stores a finished capture.
func (s *Service) Create(ctx context.Context, projectName, fileName string, audio []byte) (*Recording, error) {
	if strings.TrimSpace(projectName) == "" || strings.TrimSpace(fileName) == "" {
		return nil, ErrInvalidInput
	}
	if len(audio) == 0 {
		return nil, ErrInvalidInput
	}

	rec := &Recording{
		ID:          uuid.NewString(),
		ProjectName: projectName,
		FileName:    fileName,
		Audio:       audio,
		Processed:   false,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating recording: %w", err)
	}

	return rec, nil
}

// Get returns a recording by ID, including its audio blob.
func (s *Service) Get(ctx context.Context, id string) (*Recording, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRecordingNotFound
		}
		return nil, fmt.Errorf("getting recording: %w", err)
	}
	return rec, nil
}

// ListByProject returns a project's recordings ordered by creation time.
func (s *Service) ListByProject(ctx context.Context, projectName string) ([]Recording, error) {
	return s.repo.ListByProject(ctx, projectName)
}

// SetTranscription records the speech-to-text result. A recording is
// transcribed at most once.
func (s *Service) SetTranscription(ctx context.Context, id, transcription string) error {
	err := s.repo.SetTranscription(ctx, id, transcription)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrRecordingNotFound
		case errors.Is(err, repository.ErrConflict):
			return ErrAlreadyTranscribed
		}
		return fmt.Errorf("setting transcription: %w", err)
	}
	return nil
}

// Delete removes a recording.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordingNotFound
		}
		return fmt.Errorf("deleting recording: %w", err)
	}
	return nil
}
