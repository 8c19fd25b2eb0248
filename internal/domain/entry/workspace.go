package entry

import (
	"context"
	"encoding/json"
)

// Committer persists a combined annotation set for an entry.
type Committer interface {
	CommitAnnotations(ctx context.Context, entryID string, annotations []Annotation) (*Entry, error)
}

type pendingEdit struct {
	id   string
	text string
}

// Workspace reconciles an editing surface's local annotation state with the
// persisted set. It tracks the last known persisted annotations, the drafts
// created in this session, and at most one uncommitted text edit to a
// persisted annotation. Several surfaces may hold workspaces for the same
// entry at different times; each commits its own combined view.
type Workspace struct {
	entryID   string
	persisted []Annotation
	draft     []Annotation
	pending   *pendingEdit
}

// NewWorkspace starts an editing session against the entry's current
// persisted annotations. The workspace copies the slice, so later store
// reads don't alias it.
func NewWorkspace(e *Entry) *Workspace {
	return &Workspace{
		entryID:   e.ID,
		persisted: cloneAnnotations(e.Annotations),
	}
}

// EntryID returns the entry this workspace edits.
func (w *Workspace) EntryID() string { return w.entryID }

// AddDraft parses a newly drawn annotation and appends it to the draft set.
// Nothing reaches the store until Commit.
func (w *Workspace) AddDraft(raw json.RawMessage) (Annotation, error) {
	a, err := ParseAnnotation(raw)
	if err != nil {
		return Annotation{}, err
	}
	w.draft = append(w.draft, a)
	return a, nil
}

// EditText records a text edit. Draft annotations mutate in place; an edit
// to a persisted annotation is held as the single pending edit until
// Commit, replacing any earlier pending edit.
func (w *Workspace) EditText(id, text string) error {
	for i := range w.draft {
		if w.draft[i].ID == id {
			w.draft[i].Text = text
			return nil
		}
	}
	for _, a := range w.persisted {
		if a.ID == id {
			w.pending = &pendingEdit{id: id, text: text}
			return nil
		}
	}
	return ErrUnknownAnnotation
}

// DeleteDraft removes a draft annotation. Purely local, no store call.
func (w *Workspace) DeleteDraft(id string) bool {
	for i := range w.draft {
		if w.draft[i].ID == id {
			w.draft = append(w.draft[:i], w.draft[i+1:]...)
			return true
		}
	}
	return false
}

// DeletePersisted removes an annotation from the local persisted set. The
// store is untouched until the next Commit.
func (w *Workspace) DeletePersisted(id string) bool {
	for i := range w.persisted {
		if w.persisted[i].ID == id {
			w.persisted = append(w.persisted[:i], w.persisted[i+1:]...)
			if w.pending != nil && w.pending.id == id {
				w.pending = nil
			}
			return true
		}
	}
	return false
}

// Persisted returns a copy of the workspace's persisted baseline.
func (w *Workspace) Persisted() []Annotation {
	return cloneAnnotations(w.persisted)
}

// Draft returns a copy of the draft set.
func (w *Workspace) Draft() []Annotation {
	return cloneAnnotations(w.draft)
}

// Commit applies the pending edit, concatenates persisted then draft
// preserving relative order, and persists the combined list through the
// committer. On success the returned entry's annotations become the new
// baseline and the draft set empties. On failure the workspace is left
// exactly as it was, so no annotation is optimistically lost.
func (w *Workspace) Commit(ctx context.Context, committer Committer) (*Entry, error) {
	combined := make([]Annotation, 0, len(w.persisted)+len(w.draft))
	for _, a := range w.persisted {
		if w.pending != nil && w.pending.id == a.ID {
			a.Text = w.pending.text
		}
		combined = append(combined, a)
	}
	combined = append(combined, w.draft...)

	updated, err := committer.CommitAnnotations(ctx, w.entryID, combined)
	if err != nil {
		return nil, err
	}

	w.persisted = cloneAnnotations(updated.Annotations)
	w.draft = nil
	w.pending = nil
	return updated, nil
}

func cloneAnnotations(annotations []Annotation) []Annotation {
	out := make([]Annotation, len(annotations))
	copy(out, annotations)
	return out
}
