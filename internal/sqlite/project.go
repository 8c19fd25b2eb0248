package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fieldstack/snaglist/internal/domain/project"
	"github.com/fieldstack/snaglist/internal/repository"
)

// ProjectRepository implements project.Repository using SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new SQLite project repository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, proj.ID, proj.Name, proj.CreatedAt, proj.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("project name %q: %w", proj.Name, repository.ErrNotUnique)
		}
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM projects
		WHERE id = ?
	`

	var proj project.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&proj.ID, &proj.Name, &proj.CreatedAt, &proj.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &proj, nil
}

// GetByName retrieves a project by its unique name
func (r *ProjectRepository) GetByName(ctx context.Context, name string) (*project.Project, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM projects
		WHERE name = ?
	`

	var proj project.Project
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&proj.ID, &proj.Name, &proj.CreatedAt, &proj.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project by name: %w", err)
	}

	return &proj, nil
}

// List returns summaries of every project with entry counts, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]project.Summary, error) {
	query := `
		SELECT p.id, p.name,
			COUNT(e.id) AS entry_count,
			COALESCE(SUM(CASE WHEN e.status = 'InProgress' THEN 1 ELSE 0 END), 0) AS open_entries,
			p.created_at
		FROM projects p
		LEFT JOIN entries e ON e.project_name = p.name
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var summaries []project.Summary
	for rows.Next() {
		var s project.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.EntryCount, &s.OpenEntries, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return summaries, nil
}

// Delete removes a project and every entry and recording carrying its name,
// all in one transaction. Returns the number of entries removed.
func (r *ProjectRepository) Delete(ctx context.Context, id string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var name string
	err = tx.QueryRowContext(ctx, "SELECT name FROM projects WHERE id = ?", id).Scan(&name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("failed to get project: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE project_name = ?", name)
	if err != nil {
		return 0, fmt.Errorf("failed to delete project entries: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted entries: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM recordings WHERE project_name = ?", name); err != nil {
		return 0, fmt.Errorf("failed to delete project recordings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id); err != nil {
		return 0, fmt.Errorf("failed to delete project: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}

	return removed, nil
}
