package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	GetByName(ctx context.Context, name string) (*Project, error)
	List(ctx context.Context) ([]Summary, error)
	// Delete removes the project and every entry carrying its name,
	// returning the number of entries removed with it.
	Delete(ctx context.Context, id string) (int64, error)
}
