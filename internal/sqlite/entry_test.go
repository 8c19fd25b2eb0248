package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/repository"
)

func newTestEntry(projectName, name string) *entry.Entry {
	now := time.Now().UTC()
	return &entry.Entry{
		ID:              uuid.NewString(),
		ProjectName:     projectName,
		Name:            name,
		Priority:        entry.PriorityMedium,
		Status:          entry.StatusInProgress,
		ObservationDate: now,
		Annotations:     []entry.Annotation{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func seedProject(t *testing.T, db *DB, name string) {
	t.Helper()
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), newTestProject(name)))
}

func TestEntryCreateAllocatesNumbers(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	seedProject(t, db, "Site A")
	seedProject(t, db, "Site B")

	first := newTestEntry("Site A", "Cracked tile")
	require.NoError(t, repo.Create(ctx, first))
	require.Equal(t, int64(1), first.SnagNumber)

	second := newTestEntry("Site A", "Loose handrail")
	require.NoError(t, repo.Create(ctx, second))
	require.Equal(t, int64(2), second.SnagNumber)

	// Counters are per project.
	other := newTestEntry("Site B", "Paint drips")
	require.NoError(t, repo.Create(ctx, other))
	require.Equal(t, int64(1), other.SnagNumber)
}

func TestEntryNumbersNeverReused(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	seedProject(t, db, "Site A")

	first := newTestEntry("Site A", "One")
	second := newTestEntry("Site A", "Two")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	// Deleting the latest entry does not free its number.
	require.NoError(t, repo.Delete(ctx, second.ID))

	third := newTestEntry("Site A", "Three")
	require.NoError(t, repo.Create(ctx, third))
	require.Equal(t, int64(3), third.SnagNumber)
}

func TestEntryCreateUnknownProject(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)

	e := newTestEntry("Nowhere", "Orphan")
	err := repo.Create(context.Background(), e)
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestEntryGetBySnagNumber(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	seedProject(t, db, "Site A")

	e := newTestEntry("Site A", "Cracked tile")
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetBySnagNumber(ctx, "Site A", 1)
	require.NoError(t, err)
	require.Equal(t, e.ID, got.ID)

	_, err = repo.GetBySnagNumber(ctx, "Site A", 99)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEntryUpdate(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	seedProject(t, db, "Site A")

	e := newTestEntry("Site A", "Cracked tile")
	require.NoError(t, repo.Create(ctx, e))

	done := time.Now().UTC().Truncate(time.Second)
	e.Name = "Cracked tile in lobby"
	e.Status = entry.StatusCompleted
	e.CompletionDate = &done
	e.UpdatedAt = done
	require.NoError(t, repo.Update(ctx, e))

	got, err := repo.Get(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, "Cracked tile in lobby", got.Name)
	require.Equal(t, entry.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletionDate)
	require.Equal(t, e.SnagNumber, got.SnagNumber, "update must not touch the snag number")
}

func TestEntryUpdateNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)

	e := newTestEntry("Site A", "Ghost")
	err := repo.Update(context.Background(), e)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEntryUpdateAnnotations(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	seedProject(t, db, "Site A")

	e := newTestEntry("Site A", "Cracked tile")
	require.NoError(t, repo.Create(ctx, e))

	size := 14
	annotations := []entry.Annotation{
		{ID: uuid.NewString(), X: 10, Y: 20, Text: "here"},
		{ID: uuid.NewString(), X: 55.5, Y: 80, Text: "and here", Size: &size},
	}
	require.NoError(t, repo.UpdateAnnotations(ctx, e.ID, annotations, time.Now().UTC()))

	got, err := repo.Get(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, got.Annotations, 2)
	require.Equal(t, "here", got.Annotations[0].Text)
	require.NotNil(t, got.Annotations[1].Size)
	require.Equal(t, 14, *got.Annotations[1].Size)

	err = repo.UpdateAnnotations(ctx, "missing", annotations, time.Now().UTC())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEntryListByProjectOrder(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	seedProject(t, db, "Site A")

	for _, name := range []string{"One", "Two", "Three"} {
		require.NoError(t, repo.Create(ctx, newTestEntry("Site A", name)))
	}

	entries, err := repo.ListByProject(ctx, "Site A")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, e := range entries {
		require.Equal(t, int64(i+1), e.SnagNumber, "listing is ordered by snag number")
	}
}

func TestEntryListFilters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)
	ctx := context.Background()

	seedProject(t, db, "Site A")
	seedProject(t, db, "Site B")

	completed := newTestEntry("Site A", "Done")
	completed.Status = entry.StatusCompleted
	require.NoError(t, repo.Create(ctx, completed))

	high := newTestEntry("Site A", "Urgent")
	high.Priority = entry.PriorityHigh
	require.NoError(t, repo.Create(ctx, high))

	require.NoError(t, repo.Create(ctx, newTestEntry("Site B", "Elsewhere")))

	got, err := repo.List(ctx, entry.ListOptions{ProjectName: "Site A"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = repo.List(ctx, entry.ListOptions{Statuses: []entry.Status{entry.StatusCompleted}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Done", got[0].Name)

	got, err = repo.List(ctx, entry.ListOptions{
		ProjectName: "Site A",
		Priorities:  []entry.Priority{entry.PriorityHigh},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Urgent", got[0].Name)

	got, err = repo.List(ctx, entry.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestEntryDeleteNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEntryRepository(db)

	err := repo.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
