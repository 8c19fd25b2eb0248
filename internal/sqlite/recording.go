package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fieldstack/snaglist/internal/domain/recording"
	"github.com/fieldstack/snaglist/internal/repository"
)

// RecordingRepository implements recording.Repository using SQLite
type RecordingRepository struct {
	db *DB
}

// NewRecordingRepository creates a new SQLite recording repository
func NewRecordingRepository(db *DB) *RecordingRepository {
	return &RecordingRepository{db: db}
}

// Create inserts a new recording
func (r *RecordingRepository) Create(ctx context.Context, rec *recording.Recording) error {
	query := `
		INSERT INTO recordings (id, project_name, file_name, audio, transcription, processed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.ProjectName, rec.FileName, rec.Audio,
		rec.Transcription, rec.Processed, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create recording: %w", err)
	}

	return nil
}

// Get retrieves a recording by ID, audio blob included
func (r *RecordingRepository) Get(ctx context.Context, id string) (*recording.Recording, error) {
	query := `
		SELECT id, project_name, file_name, audio, transcription, processed, created_at
		FROM recordings
		WHERE id = ?
	`

	var rec recording.Recording
	var processed int
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.ProjectName, &rec.FileName, &rec.Audio,
		&rec.Transcription, &processed, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get recording: %w", err)
	}
	rec.Processed = processed != 0

	return &rec, nil
}

// ListByProject returns the project's recordings ordered by creation time.
// Audio blobs are omitted to keep listings cheap.
func (r *RecordingRepository) ListByProject(ctx context.Context, projectName string) ([]recording.Recording, error) {
	query := `
		SELECT id, project_name, file_name, transcription, processed, created_at
		FROM recordings
		WHERE project_name = ?
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, projectName)
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}
	defer rows.Close()

	var recordings []recording.Recording
	for rows.Next() {
		var rec recording.Recording
		var processed int
		if err := rows.Scan(&rec.ID, &rec.ProjectName, &rec.FileName,
			&rec.Transcription, &processed, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recording: %w", err)
		}
		rec.Processed = processed != 0
		recordings = append(recordings, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recordings: %w", err)
	}

	return recordings, nil
}

// SetTranscription stores the transcription and marks the recording
// processed. A recording transcribes at most once.
func (r *RecordingRepository) SetTranscription(ctx context.Context, id, transcription string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE recordings SET transcription = ?, processed = 1 WHERE id = ? AND processed = 0",
		transcription, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set transcription: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		// Distinguish missing from already processed.
		var exists int
		err := r.db.QueryRowContext(ctx, "SELECT 1 FROM recordings WHERE id = ?", id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check recording: %w", err)
		}
		return repository.ErrConflict
	}

	return nil
}

// Delete removes a recording
func (r *RecordingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
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
