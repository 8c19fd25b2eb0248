// Package backup implements whole-store export and destructive restore.
//
// Snapshots exclude voice recordings: audio blobs dominate store size and
// would stop the backup file being a portable, human-inspectable JSON
// document. Because restore is a destructive replace of every collection,
// restoring a snapshot also drops any recordings in the target store.
// Callers surfacing backup to users must state both facts.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/domain/project"
)

// ErrMalformedSnapshot indicates restore input that fails shape validation.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// Snapshot is the portable serialized form of the entire store. It is
// self-describing: the document alone is enough to repopulate a fresh
// store.
type Snapshot struct {
	SchemaVersion int               `json:"schema_version"`
	ExportedAt    time.Time         `json:"exported_at"`
	Projects      []project.Project `json:"projects"`
	Entries       []entry.Entry     `json:"entries"`
}

// snapshotShape mirrors Snapshot with pointer collections so a missing
// top-level key is distinguishable from an empty one.
type snapshotShape struct {
	SchemaVersion *int               `json:"schema_version"`
	ExportedAt    time.Time          `json:"exported_at"`
	Projects      *[]project.Project `json:"projects"`
	Entries       *[]entry.Entry     `json:"entries"`
}

// Decode reads a snapshot document, failing fast with ErrMalformedSnapshot
// when the top-level shape doesn't match before any record is touched.
func Decode(r io.Reader) (*Snapshot, error) {
	var shape snapshotShape
	if err := json.NewDecoder(r).Decode(&shape); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if shape.SchemaVersion == nil || shape.Projects == nil || shape.Entries == nil {
		return nil, fmt.Errorf("%w: missing top-level collections", ErrMalformedSnapshot)
	}

	snap := &Snapshot{
		SchemaVersion: *shape.SchemaVersion,
		ExportedAt:    shape.ExportedAt,
		Projects:      *shape.Projects,
		Entries:       *shape.Entries,
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Encode writes the snapshot as indented JSON so backups stay readable.
func (s *Snapshot) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// Validate checks the snapshot's records before a restore. Restore never
// partially imports: any malformed record rejects the whole document.
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: empty document", ErrMalformedSnapshot)
	}
	if s.SchemaVersion < 1 {
		return fmt.Errorf("%w: schema_version %d", ErrMalformedSnapshot, s.SchemaVersion)
	}

	names := make(map[string]struct{}, len(s.Projects))
	for i, proj := range s.Projects {
		if proj.ID == "" || proj.Name == "" {
			return fmt.Errorf("%w: project %d missing id or name", ErrMalformedSnapshot, i)
		}
		if _, dup := names[proj.Name]; dup {
			return fmt.Errorf("%w: duplicate project name %q", ErrMalformedSnapshot, proj.Name)
		}
		names[proj.Name] = struct{}{}
	}

	for i, e := range s.Entries {
		if e.ID == "" || e.ProjectName == "" {
			return fmt.Errorf("%w: entry %d missing id or project", ErrMalformedSnapshot, i)
		}
		if e.SnagNumber < 1 {
			return fmt.Errorf("%w: entry %d snag_number %d", ErrMalformedSnapshot, i, e.SnagNumber)
		}
		if _, ok := names[e.ProjectName]; !ok {
			return fmt.Errorf("%w: entry %d references unknown project %q", ErrMalformedSnapshot, i, e.ProjectName)
		}
	}

	return nil
}
