package entry

import (
	"context"
	"time"

	"github.com/fieldstack/snaglist/internal/domain/project"
)

// Repository provides persistence for entries.
type Repository interface {
	// Create inserts the entry, allocating its snag number inside the
	// same transaction as the insert.
	Create(ctx context.Context, e *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	GetBySnagNumber(ctx context.Context, projectName string, number int64) (*Entry, error)
	// Update writes every mutable column. It never touches id,
	// created_at, snag_number, or annotations.
	Update(ctx context.Context, e *Entry) error
	// UpdateAnnotations replaces the embedded annotation list in a single
	// all-or-nothing write.
	UpdateAnnotations(ctx context.Context, id string, annotations []Annotation, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	// ListByProject returns the project's entries ordered by snag number.
	ListByProject(ctx context.Context, projectName string) ([]Entry, error)
	// List returns entries ordered by creation time, newest first.
	List(ctx context.Context, opts ListOptions) ([]Entry, error)
}

// Projects provides the project lookups the entry service needs.
type Projects interface {
	GetByName(ctx context.Context, name string) (*project.Project, error)
}
