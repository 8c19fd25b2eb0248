package entry_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldstack/snaglist/internal/domain/entry"
)

// fakeCommitter records commits and plays back a configured result.
type fakeCommitter struct {
	committed [][]entry.Annotation
	err       error
}

func (f *fakeCommitter) CommitAnnotations(ctx context.Context, entryID string, annotations []entry.Annotation) (*entry.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.committed = append(f.committed, annotations)
	sanitized := entry.SanitizeAll(annotations)
	return &entry.Entry{ID: entryID, Annotations: sanitized}, nil
}

func workspaceEntry(annotations ...entry.Annotation) *entry.Entry {
	return &entry.Entry{ID: "e1", Annotations: annotations}
}

func TestWorkspaceAddDraftIsLocal(t *testing.T) {
	w := entry.NewWorkspace(workspaceEntry())

	a, err := w.AddDraft(json.RawMessage(`{"x": 25, "y": 40, "text": "crack starts here"}`))
	require.NoError(t, err)
	require.NotEmpty(t, a.ID, "draft gets an id immediately")
	require.Len(t, w.Draft(), 1)
	require.Empty(t, w.Persisted(), "drafts never touch the baseline")
}

func TestWorkspaceAddDraftMalformed(t *testing.T) {
	w := entry.NewWorkspace(workspaceEntry())

	_, err := w.AddDraft(json.RawMessage(`"just a string"`))
	require.ErrorIs(t, err, entry.ErrMalformedAnnotation)
	require.Empty(t, w.Draft())
}

func TestWorkspaceEditDraftText(t *testing.T) {
	w := entry.NewWorkspace(workspaceEntry())

	a, err := w.AddDraft(json.RawMessage(`{"x": 1, "y": 2, "text": "first"}`))
	require.NoError(t, err)

	require.NoError(t, w.EditText(a.ID, "second"))
	require.Equal(t, "second", w.Draft()[0].Text)
}

func TestWorkspaceEditPersistedIsPendingUntilCommit(t *testing.T) {
	persisted := entry.Annotation{ID: "a1", X: 10, Y: 10, Text: "old"}
	w := entry.NewWorkspace(workspaceEntry(persisted))

	require.NoError(t, w.EditText("a1", "new"))
	require.Equal(t, "old", w.Persisted()[0].Text, "baseline unchanged before commit")

	// A later edit replaces the earlier pending one.
	require.NoError(t, w.EditText("a1", "newest"))

	committer := &fakeCommitter{}
	updated, err := w.Commit(context.Background(), committer)
	require.NoError(t, err)
	require.Equal(t, "newest", updated.Annotations[0].Text)
}

func TestWorkspaceEditUnknownAnnotation(t *testing.T) {
	w := entry.NewWorkspace(workspaceEntry())

	err := w.EditText("nope", "text")
	require.ErrorIs(t, err, entry.ErrUnknownAnnotation)
}

func TestWorkspaceDeleteDraft(t *testing.T) {
	w := entry.NewWorkspace(workspaceEntry())

	a, err := w.AddDraft(json.RawMessage(`{"x": 1, "y": 2, "text": "t"}`))
	require.NoError(t, err)

	require.True(t, w.DeleteDraft(a.ID))
	require.Empty(t, w.Draft())
	require.False(t, w.DeleteDraft(a.ID))
}

func TestWorkspaceDeletePersistedClearsPendingEdit(t *testing.T) {
	persisted := entry.Annotation{ID: "a1", X: 10, Y: 10, Text: "old"}
	w := entry.NewWorkspace(workspaceEntry(persisted))

	require.NoError(t, w.EditText("a1", "edited"))
	require.True(t, w.DeletePersisted("a1"))
	require.Empty(t, w.Persisted())

	committer := &fakeCommitter{}
	updated, err := w.Commit(context.Background(), committer)
	require.NoError(t, err)
	require.Empty(t, updated.Annotations, "deleted annotation does not resurrect via its pending edit")
}

func TestWorkspaceCommitCombinesInOrder(t *testing.T) {
	first := entry.Annotation{ID: "a1", X: 1, Y: 1, Text: "first"}
	second := entry.Annotation{ID: "a2", X: 2, Y: 2, Text: "second"}
	w := entry.NewWorkspace(workspaceEntry(first, second))

	_, err := w.AddDraft(json.RawMessage(`{"x": 3, "y": 3, "text": "third"}`))
	require.NoError(t, err)

	committer := &fakeCommitter{}
	updated, err := w.Commit(context.Background(), committer)
	require.NoError(t, err)
	require.Len(t, updated.Annotations, 3)
	require.Equal(t, "first", updated.Annotations[0].Text)
	require.Equal(t, "second", updated.Annotations[1].Text)
	require.Equal(t, "third", updated.Annotations[2].Text, "persisted order then draft order")

	// The committed set becomes the new baseline and drafts clear.
	require.Len(t, w.Persisted(), 3)
	require.Empty(t, w.Draft())
}

func TestWorkspaceCommitIdempotent(t *testing.T) {
	w := entry.NewWorkspace(workspaceEntry(entry.Annotation{ID: "a1", X: 1, Y: 1, Text: "t"}))

	_, err := w.AddDraft(json.RawMessage(`{"x": 2, "y": 2, "text": "draft"}`))
	require.NoError(t, err)

	committer := &fakeCommitter{}
	first, err := w.Commit(context.Background(), committer)
	require.NoError(t, err)

	second, err := w.Commit(context.Background(), committer)
	require.NoError(t, err)
	require.Equal(t, first.Annotations, second.Annotations, "an unchanged recommit writes the same set")
}

func TestWorkspaceCommitFailureLosesNothing(t *testing.T) {
	persisted := entry.Annotation{ID: "a1", X: 1, Y: 1, Text: "keep"}
	w := entry.NewWorkspace(workspaceEntry(persisted))

	_, err := w.AddDraft(json.RawMessage(`{"x": 2, "y": 2, "text": "draft"}`))
	require.NoError(t, err)
	require.NoError(t, w.EditText("a1", "edited"))

	failing := &fakeCommitter{err: errors.New("store unavailable")}
	_, err = w.Commit(context.Background(), failing)
	require.Error(t, err)

	// Everything is still in place for a retry.
	require.Len(t, w.Draft(), 1)
	require.Equal(t, "keep", w.Persisted()[0].Text, "pending edit still uncommitted")

	working := &fakeCommitter{}
	updated, err := w.Commit(context.Background(), working)
	require.NoError(t, err)
	require.Len(t, updated.Annotations, 2)
	require.Equal(t, "edited", updated.Annotations[0].Text)
}
