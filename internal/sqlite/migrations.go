package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fieldstack/snaglist/internal/repository"
)

// A migration is one idempotent structural step. Steps only add structure
// or backfill fields; they never delete data. Each step runs in its own
// transaction together with the version bump, so a store is always at a
// whole version, never between two.
type migration struct {
	version int
	name    string
	apply   func(ctx context.Context, tx *sql.Tx) error
}

func schemaMigrations() []migration {
	return []migration{
		{version: 1, name: "base schema", apply: createBaseSchema},
		{version: 2, name: "entry annotations", apply: addEntryAnnotations},
	}
}

// SchemaVersion returns the store's current schema version.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// Migrate brings the store up to the latest schema version, running each
// outstanding step in order. A database locked by another connection
// surfaces as repository.ErrSchemaBlocked so callers can retry instead of
// treating it as fatal.
func (db *DB) Migrate(ctx context.Context) error {
	return db.migrateTo(ctx, len(schemaMigrations()))
}

func (db *DB) migrateTo(ctx context.Context, target int) error {
	current, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range schemaMigrations() {
		if m.version <= current || m.version > target {
			continue
		}
		if err := db.applyMigration(ctx, m); err != nil {
			return err
		}
	}

	return nil
}

func (db *DB) applyMigration(ctx context.Context, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		if isBusy(err) {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, repository.ErrSchemaBlocked)
		}
		return fmt.Errorf("migration %d (%s): begin: %w", m.version, m.name, err)
	}
	defer tx.Rollback()

	if err := m.apply(ctx, tx); err != nil {
		if isBusy(err) {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, repository.ErrSchemaBlocked)
		}
		return fmt.Errorf("migration %d (%s): %w", m.version, m.name, err)
	}

	// PRAGMA does not take placeholders; version is trusted internal data.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		return fmt.Errorf("migration %d (%s): bump version: %w", m.version, m.name, err)
	}

	if err := tx.Commit(); err != nil {
		if isBusy(err) {
			return fmt.Errorf("migration %d (%s): %w", m.version, m.name, repository.ErrSchemaBlocked)
		}
		return fmt.Errorf("migration %d (%s): commit: %w", m.version, m.name, err)
	}

	return nil
}

func createBaseSchema(ctx context.Context, tx *sql.Tx) error {
	schema := `
-- Projects table
CREATE TABLE projects (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE UNIQUE INDEX idx_projects_name ON projects(name);

-- Entries table. Entries reference their project by name, not id.
CREATE TABLE entries (
    id TEXT PRIMARY KEY,
    project_name TEXT NOT NULL,
    snag_number INTEGER NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    photo_path TEXT NOT NULL DEFAULT '',
    priority TEXT NOT NULL CHECK(priority IN ('Low', 'Medium', 'High')),
    assigned_to TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL CHECK(status IN ('InProgress', 'Completed')),
    location TEXT NOT NULL DEFAULT '',
    observation_date TIMESTAMP NOT NULL,
    completion_date TIMESTAMP,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    FOREIGN KEY (project_name) REFERENCES projects(name)
);
CREATE INDEX idx_entries_project ON entries(project_name);
CREATE INDEX idx_entries_created ON entries(created_at);
CREATE UNIQUE INDEX idx_entries_project_number ON entries(project_name, snag_number);

-- Recordings table
CREATE TABLE recordings (
    id TEXT PRIMARY KEY,
    project_name TEXT NOT NULL,
    file_name TEXT NOT NULL,
    audio BLOB NOT NULL,
    transcription TEXT,
    processed INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_recordings_project ON recordings(project_name);
CREATE INDEX idx_recordings_created ON recordings(created_at);
`

	_, err := tx.ExecContext(ctx, schema)
	return err
}

// addEntryAnnotations introduces the embedded annotation list. Existing
// entries are backfilled with [] in the same transaction, so after this
// step no entry lacks the field.
func addEntryAnnotations(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx,
		`ALTER TABLE entries ADD COLUMN annotations TEXT NOT NULL DEFAULT '[]'`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE entries SET annotations = '[]' WHERE annotations IS NULL OR annotations = ''`); err != nil {
		return err
	}
	return nil
}
