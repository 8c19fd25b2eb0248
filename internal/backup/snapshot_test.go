package backup_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/fieldstack/snaglist/internal/backup"
	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/domain/project"
)

func fixtureSnapshot() *backup.Snapshot {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	exported := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC)
	size := 14

	return &backup.Snapshot{
		SchemaVersion: 2,
		ExportedAt:    exported,
		Projects: []project.Project{
			{ID: "p1", Name: "Site A", CreatedAt: created, UpdatedAt: created},
		},
		Entries: []entry.Entry{
			{
				ID:              "e1",
				ProjectName:     "Site A",
				SnagNumber:      1,
				Name:            "Cracked tile",
				Description:     "Lobby, east door",
				Priority:        entry.PriorityHigh,
				Status:          entry.StatusInProgress,
				ObservationDate: created,
				Annotations: []entry.Annotation{
					{ID: "a1", X: 25.5, Y: 80, Text: "starts here", Size: &size},
				},
				CreatedAt: created,
				UpdatedAt: created,
			},
		},
	}
}

// TestEncodeGolden pins the snapshot wire format. A diff here means old
// backup files may no longer restore.
func TestEncodeGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, fixtureSnapshot().Encode(&buf))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "snapshot", buf.Bytes())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	snap := fixtureSnapshot()

	var buf bytes.Buffer
	require.NoError(t, snap.Encode(&buf))

	decoded, err := backup.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, snap.SchemaVersion, decoded.SchemaVersion)
	require.Equal(t, snap.Projects, decoded.Projects)
	require.Equal(t, snap.Entries, decoded.Entries)
}

func TestDecodeNotJSON(t *testing.T) {
	_, err := backup.Decode(strings.NewReader("definitely not json"))
	require.ErrorIs(t, err, backup.ErrMalformedSnapshot)
}

func TestDecodeMissingCollections(t *testing.T) {
	cases := map[string]string{
		"no schema_version": `{"projects": [], "entries": []}`,
		"no projects":       `{"schema_version": 2, "entries": []}`,
		"no entries":        `{"schema_version": 2, "projects": []}`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := backup.Decode(strings.NewReader(doc))
			require.ErrorIs(t, err, backup.ErrMalformedSnapshot)
		})
	}
}

func TestDecodeEmptyStore(t *testing.T) {
	doc := `{"schema_version": 2, "exported_at": "2026-03-15T18:00:00Z", "projects": [], "entries": []}`

	snap, err := backup.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Empty(t, snap.Projects)
	require.Empty(t, snap.Entries)
}

func TestValidateRejectsBadRecords(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*backup.Snapshot)
	}{
		{"zero schema version", func(s *backup.Snapshot) { s.SchemaVersion = 0 }},
		{"project without name", func(s *backup.Snapshot) { s.Projects[0].Name = "" }},
		{"project without id", func(s *backup.Snapshot) { s.Projects[0].ID = "" }},
		{"duplicate project names", func(s *backup.Snapshot) {
			dup := s.Projects[0]
			dup.ID = "p2"
			s.Projects = append(s.Projects, dup)
		}},
		{"entry without id", func(s *backup.Snapshot) { s.Entries[0].ID = "" }},
		{"entry with zero snag number", func(s *backup.Snapshot) { s.Entries[0].SnagNumber = 0 }},
		{"entry referencing unknown project", func(s *backup.Snapshot) { s.Entries[0].ProjectName = "Nowhere" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := fixtureSnapshot()
			tc.mutate(snap)
			require.ErrorIs(t, snap.Validate(), backup.ErrMalformedSnapshot)
		})
	}
}

func TestValidateAcceptsFixture(t *testing.T) {
	require.NoError(t, fixtureSnapshot().Validate())
}
