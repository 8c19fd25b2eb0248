package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/domain/project"
	"github.com/fieldstack/snaglist/internal/repository"
)

func newTestProject(name string) *project.Project {
	now := time.Now().UTC()
	return &project.Project{
		ID:        "proj-" + name,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestProjectCreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("Site A")
	err := repo.Create(ctx, proj)
	require.NoError(t, err)

	got, err := repo.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, proj.ID, got.ID)
	require.Equal(t, "Site A", got.Name)

	byName, err := repo.GetByName(ctx, "Site A")
	require.NoError(t, err)
	require.Equal(t, proj.ID, byName.ID)
}

func TestProjectGetNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByName(ctx, "Nowhere")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectDuplicateName(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, newTestProject("Site A"))
	require.NoError(t, err)

	dup := newTestProject("Site A")
	dup.ID = "other-id"
	err = repo.Create(ctx, dup)
	require.ErrorIs(t, err, repository.ErrNotUnique)
}

func TestProjectListCounts(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	entries := NewEntryRepository(db)
	ctx := context.Background()

	require.NoError(t, projects.Create(ctx, newTestProject("Site A")))
	require.NoError(t, projects.Create(ctx, newTestProject("Site B")))

	for i, status := range []entry.Status{entry.StatusInProgress, entry.StatusInProgress, entry.StatusCompleted} {
		e := newTestEntry("Site A", "Snag")
		e.ID = e.ID + string(rune('a'+i))
		e.Status = status
		require.NoError(t, entries.Create(ctx, e))
	}

	summaries, err := projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byName := map[string]project.Summary{}
	for _, s := range summaries {
		byName[s.Name] = s
	}
	require.Equal(t, 3, byName["Site A"].EntryCount)
	require.Equal(t, 2, byName["Site A"].OpenEntries)
	require.Equal(t, 0, byName["Site B"].EntryCount)
	require.Equal(t, 0, byName["Site B"].OpenEntries)
}

func TestProjectDeleteCascades(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	entries := NewEntryRepository(db)
	ctx := context.Background()

	proj := newTestProject("Site A")
	require.NoError(t, projects.Create(ctx, proj))
	require.NoError(t, projects.Create(ctx, newTestProject("Site B")))

	for _, id := range []string{"e1", "e2"} {
		e := newTestEntry("Site A", "Snag")
		e.ID = id
		require.NoError(t, entries.Create(ctx, e))
	}
	keeper := newTestEntry("Site B", "Keeper")
	require.NoError(t, entries.Create(ctx, keeper))

	removed, err := projects.Delete(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), removed)

	_, err = projects.GetByName(ctx, "Site A")
	require.ErrorIs(t, err, repository.ErrNotFound)

	left, err := entries.ListByProject(ctx, "Site B")
	require.NoError(t, err)
	require.Len(t, left, 1)
}

func TestProjectDeleteNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
