package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldstack/snaglist/internal/repository"
	"github.com/google/uuid"
)

// Service handles entry business logic.
type Service struct {
	entries  Repository
	projects Projects
	logger   *slog.Logger
}

// NewService creates a new entry service.
func NewService(entries Repository, projects Projects, logger *slog.Logger) *Service {
	return &Service{
		entries:  entries,
		projects: projects,
		logger:   logger,
	}
}

// CreateRequest describes an entry creation request.
type CreateRequest struct {
	ProjectName     string
	Name            string
	Description     string
	PhotoPath       string
	Priority        Priority
	AssignedTo      string
	Location        string
	ObservationDate time.Time
}

// UpdateRequest describes a partial entry update. Nil fields are left
// unchanged. The id, creation time, snag number, and annotations cannot be
// set through this path; annotations change only via CommitAnnotations.
type UpdateRequest struct {
	Name            *string
	Description     *string
	PhotoPath       *string
	Priority        *Priority
	AssignedTo      *string
	Status          *Status
	Location        *string
	ObservationDate *time.Time
	CompletionDate  *time.Time
}

// Create creates a new entry. The snag number is allocated inside the
// insert's own transaction by the repository.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Entry, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	if _, err := s.projects.GetByName(ctx, req.ProjectName); err != nil {
		return nil, fmt.Errorf("resolving project %q: %w", req.ProjectName, err)
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now()
	observed := req.ObservationDate
	if observed.IsZero() {
		observed = now
	}

	e := &Entry{
		ID:              uuid.NewString(),
		ProjectName:     req.ProjectName,
		Name:            req.Name,
		Description:     req.Description,
		PhotoPath:       req.PhotoPath,
		Priority:        priority,
		AssignedTo:      req.AssignedTo,
		Status:          StatusInProgress,
		Location:        req.Location,
		ObservationDate: observed,
		Annotations:     []Annotation{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.entries.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("entry created", "entry_id", e.ID, "project", e.ProjectName, "snag_number", e.SnagNumber)
	}

	return e, nil
}

// Update merges a partial update over the existing entry and persists it.
// Completing an entry stamps its completion date; moving it back to
// InProgress clears the stamp.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Entry, error) {
	if err := ValidateUpdateInput(req); err != nil {
		return nil, err
	}

	current, err := s.entries.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("loading entry: %w", err)
	}

	updated := *current
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.PhotoPath != nil {
		updated.PhotoPath = *req.PhotoPath
	}
	if req.Priority != nil {
		updated.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		updated.AssignedTo = *req.AssignedTo
	}
	if req.Location != nil {
		updated.Location = *req.Location
	}
	if req.ObservationDate != nil {
		updated.ObservationDate = *req.ObservationDate
	}
	if req.CompletionDate != nil {
		updated.CompletionDate = req.CompletionDate
	}
	if req.Status != nil {
		updated.Status = *req.Status
		switch *req.Status {
		case StatusCompleted:
			if updated.CompletionDate == nil {
				completed := time.Now()
				updated.CompletionDate = &completed
			}
		case StatusInProgress:
			updated.CompletionDate = nil
		}
	}
	updated.UpdatedAt = time.Now()

	if err := s.entries.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("updating entry: %w", err)
	}

	return &updated, nil
}

// CommitAnnotations replaces the entry's annotation list with the combined
// set produced by a reconciliation workspace. Every annotation is sanitized
// here regardless of caller; the write is all-or-nothing.
func (s *Service) CommitAnnotations(ctx context.Context, id string, annotations []Annotation) (*Entry, error) {
	sanitized := SanitizeAll(annotations)

	if err := s.entries.UpdateAnnotations(ctx, id, sanitized, time.Now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("committing annotations: %w", err)
	}

	updated, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reloading entry: %w", err)
	}
	return updated, nil
}

// Get returns an entry by ID.
func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	e, err := s.entries.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting entry: %w", err)
	}
	return e, nil
}

// GetBySnagNumber returns a project's entry with the given number.
func (s *Service) GetBySnagNumber(ctx context.Context, projectName string, number int64) (*Entry, error) {
	e, err := s.entries.GetBySnagNumber(ctx, projectName, number)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting entry by number: %w", err)
	}
	return e, nil
}

// ListByProject returns a project's entries ordered by snag number.
func (s *Service) ListByProject(ctx context.Context, projectName string) ([]Entry, error) {
	return s.entries.ListByProject(ctx, projectName)
}

// List returns entries ordered by creation time.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	return s.entries.List(ctx, opts)
}

// Delete removes an entry. Its snag number is never reused.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("deleting entry: %w", err)
	}
	return nil
}
