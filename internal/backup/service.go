package backup

import (
	"context"
	"fmt"
	"log/slog"
)

// Store provides whole-store export and destructive restore.
type Store interface {
	// ExportAll reads every project and entry into one snapshot.
	ExportAll(ctx context.Context) (*Snapshot, error)
	// RestoreAll clears every collection, recordings included, and
	// repopulates from the snapshot inside one transaction.
	RestoreAll(ctx context.Context, snap *Snapshot) error
}

// Service handles backup operations.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a new backup service.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Export serializes the entire store. Recordings are excluded per the
// package policy.
func (s *Service) Export(ctx context.Context) (*Snapshot, error) {
	snap, err := s.store.ExportAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting store: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("store exported", "projects", len(snap.Projects), "entries", len(snap.Entries))
	}

	return snap, nil
}

// Restore destructively replaces the store's contents with the snapshot.
// Validation happens before the first delete, so malformed input never
// leaves a half-imported store.
func (s *Service) Restore(ctx context.Context, snap *Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	if err := s.store.RestoreAll(ctx, snap); err != nil {
		return fmt.Errorf("restoring store: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("store restored", "projects", len(snap.Projects), "entries", len(snap.Entries))
	}

	return nil
}
