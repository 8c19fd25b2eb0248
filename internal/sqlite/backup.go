package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldstack/snaglist/internal/backup"
	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/domain/project"
)

// BackupRepository implements backup.Store using SQLite
type BackupRepository struct {
	db *DB
}

// NewBackupRepository creates a new SQLite backup repository
func NewBackupRepository(db *DB) *BackupRepository {
	return &BackupRepository{db: db}
}

// ExportAll reads every project and entry into one snapshot. Recordings
// are excluded from snapshots; see the backup package doc.
func (r *BackupRepository) ExportAll(ctx context.Context) (*backup.Snapshot, error) {
	version, err := r.db.SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}

	projects, err := r.exportProjects(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := NewEntryRepository(r.db).List(ctx, entry.ListOptions{})
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []entry.Entry{}
	}

	return &backup.Snapshot{
		SchemaVersion: version,
		ExportedAt:    time.Now().UTC(),
		Projects:      projects,
		Entries:       entries,
	}, nil
}

func (r *BackupRepository) exportProjects(ctx context.Context) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM projects ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to export projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		var proj project.Project
		if err := rows.Scan(&proj.ID, &proj.Name, &proj.CreatedAt, &proj.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// RestoreAll clears every collection, recordings included, and repopulates
// from the snapshot. The whole replace runs in one transaction: a failed
// restore leaves the store exactly as it was.
func (r *BackupRepository) RestoreAll(ctx context.Context, snap *backup.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"recordings", "entries", "projects"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, proj := range snap.Projects {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO projects (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
			proj.ID, proj.Name, proj.CreatedAt, proj.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore project %q: %w", proj.Name, err)
		}
	}

	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, e := range snap.Entries {
		annotations, err := marshalAnnotations(e.Annotations)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, query,
			e.ID, e.ProjectName, e.SnagNumber, e.Name, e.Description, e.PhotoPath,
			e.Priority, e.AssignedTo, e.Status, e.Location, e.ObservationDate, e.CompletionDate,
			annotations, e.CreatedAt, e.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to restore entry %d in %q: %w", e.SnagNumber, e.ProjectName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}

	return nil
}
