package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/repository"
)

// EntryRepository implements entry.Repository using SQLite
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new SQLite entry repository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

const entryColumns = `id, project_name, snag_number, name, description, photo_path,
	priority, assigned_to, status, location, observation_date, completion_date,
	annotations, created_at, updated_at`

// Create inserts a new entry, allocating its snag number inside the same
// transaction as the insert. SQLite serializes writers, so the scan and the
// insert cannot interleave with another allocation; the unique index on
// (project_name, snag_number) backstops the invariant regardless.
func (r *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(snag_number), 0) + 1 FROM entries WHERE project_name = ?",
		e.ProjectName,
	).Scan(&e.SnagNumber)
	if err != nil {
		return fmt.Errorf("failed to allocate snag number: %w", err)
	}

	annotations, err := marshalAnnotations(e.Annotations)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = tx.ExecContext(ctx, query,
		e.ID, e.ProjectName, e.SnagNumber, e.Name, e.Description, e.PhotoPath,
		e.Priority, e.AssignedTo, e.Status, e.Location, e.ObservationDate, e.CompletionDate,
		annotations, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("project %q: %w", e.ProjectName, repository.ErrForeignKeyViolation)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("snag number %d: %w", e.SnagNumber, repository.ErrConflict)
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit entry: %w", err)
	}

	return nil
}

// Get retrieves an entry by ID
func (r *EntryRepository) Get(ctx context.Context, id string) (*entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetBySnagNumber retrieves an entry by its project-scoped number
func (r *EntryRepository) GetBySnagNumber(ctx context.Context, projectName string, number int64) (*entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE project_name = ? AND snag_number = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, projectName, number))
}

// Update writes every mutable column. The entry's id, creation time, snag
// number, and annotations are never rewritten here.
func (r *EntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	query := `
		UPDATE entries
		SET name = ?, description = ?, photo_path = ?, priority = ?,
			assigned_to = ?, status = ?, location = ?, observation_date = ?,
			completion_date = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		e.Name, e.Description, e.PhotoPath, e.Priority,
		e.AssignedTo, e.Status, e.Location, e.ObservationDate,
		e.CompletionDate, e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateAnnotations replaces the entry's embedded annotation list
func (r *EntryRepository) UpdateAnnotations(ctx context.Context, id string, annotations []entry.Annotation, updatedAt time.Time) error {
	encoded, err := marshalAnnotations(annotations)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE entries SET annotations = ?, updated_at = ? WHERE id = ?",
		encoded, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update annotations: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes an entry. Its snag number is never reused.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListByProject returns the project's entries ordered by snag number
func (r *EntryRepository) ListByProject(ctx context.Context, projectName string) ([]entry.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE project_name = ? ORDER BY snag_number`

	rows, err := r.db.QueryContext(ctx, query, projectName)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// List returns entries matching the options, newest first
func (r *EntryRepository) List(ctx context.Context, opts entry.ListOptions) ([]entry.Entry, error) {
	var conditions []string
	var args []any

	if opts.ProjectName != "" {
		conditions = append(conditions, "project_name = ?")
		args = append(args, opts.ProjectName)
	}
	if len(opts.Statuses) > 0 {
		placeholders := make([]string, len(opts.Statuses))
		for i, s := range opts.Statuses {
			placeholders[i] = "?"
			args = append(args, s)
		}
		conditions = append(conditions, "status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if len(opts.Priorities) > 0 {
		placeholders := make([]string, len(opts.Priorities))
		for i, p := range opts.Priorities {
			placeholders[i] = "?"
			args = append(args, p)
		}
		conditions = append(conditions, "priority IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := `SELECT ` + entryColumns + ` FROM entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *EntryRepository) scanEntry(row rowScanner) (*entry.Entry, error) {
	var e entry.Entry
	var annotations string
	err := row.Scan(
		&e.ID, &e.ProjectName, &e.SnagNumber, &e.Name, &e.Description, &e.PhotoPath,
		&e.Priority, &e.AssignedTo, &e.Status, &e.Location, &e.ObservationDate, &e.CompletionDate,
		&annotations, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Annotations, err = unmarshalAnnotations(annotations)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (r *EntryRepository) scanOne(row *sql.Row) (*entry.Entry, error) {
	e, err := r.scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return e, nil
}

func (r *EntryRepository) scanAll(rows *sql.Rows) ([]entry.Entry, error) {
	var entries []entry.Entry
	for rows.Next() {
		e, err := r.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

func marshalAnnotations(annotations []entry.Annotation) (string, error) {
	if annotations == nil {
		annotations = []entry.Annotation{}
	}
	encoded, err := json.Marshal(annotations)
	if err != nil {
		return "", fmt.Errorf("failed to marshal annotations: %w", err)
	}
	return string(encoded), nil
}

func unmarshalAnnotations(encoded string) ([]entry.Annotation, error) {
	if encoded == "" {
		return []entry.Annotation{}, nil
	}
	var annotations []entry.Annotation
	if err := json.Unmarshal([]byte(encoded), &annotations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal annotations: %w", err)
	}
	if annotations == nil {
		annotations = []entry.Annotation{}
	}
	return annotations, nil
}
