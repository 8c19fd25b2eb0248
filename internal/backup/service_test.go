package backup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldstack/snaglist/internal/backup"
)

// fakeStore counts calls so tests can see whether a restore reached it.
type fakeStore struct {
	exported *backup.Snapshot
	restores int
}

func (f *fakeStore) ExportAll(ctx context.Context) (*backup.Snapshot, error) {
	return f.exported, nil
}

func (f *fakeStore) RestoreAll(ctx context.Context, snap *backup.Snapshot) error {
	f.restores++
	return nil
}

func TestExport(t *testing.T) {
	store := &fakeStore{exported: fixtureSnapshot()}
	svc := backup.NewService(store, nil)

	snap, err := svc.Export(context.Background())
	require.NoError(t, err)
	require.Equal(t, store.exported, snap)
}

func TestRestoreValidatesBeforeTouchingStore(t *testing.T) {
	store := &fakeStore{}
	svc := backup.NewService(store, nil)

	bad := fixtureSnapshot()
	bad.Entries[0].ProjectName = "Nowhere"

	err := svc.Restore(context.Background(), bad)
	require.ErrorIs(t, err, backup.ErrMalformedSnapshot)
	require.Zero(t, store.restores, "invalid snapshots never reach the store")
}

func TestRestoreValidSnapshot(t *testing.T) {
	store := &fakeStore{}
	svc := backup.NewService(store, nil)

	require.NoError(t, svc.Restore(context.Background(), fixtureSnapshot()))
	require.Equal(t, 1, store.restores)
}
