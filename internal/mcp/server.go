package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fieldstack/snaglist/internal/backup"
	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/domain/project"
	"github.com/fieldstack/snaglist/internal/domain/recording"
	"github.com/fieldstack/snaglist/internal/store"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, name string) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	GetByName(ctx context.Context, name string) (*project.Project, error)
	List(ctx context.Context) ([]project.Summary, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// EntryService defines entry operations needed by MCP.
type EntryService interface {
	Create(ctx context.Context, req entry.CreateRequest) (*entry.Entry, error)
	Update(ctx context.Context, id string, req entry.UpdateRequest) (*entry.Entry, error)
	CommitAnnotations(ctx context.Context, id string, annotations []entry.Annotation) (*entry.Entry, error)
	Get(ctx context.Context, id string) (*entry.Entry, error)
	GetBySnagNumber(ctx context.Context, projectName string, number int64) (*entry.Entry, error)
	ListByProject(ctx context.Context, projectName string) ([]entry.Entry, error)
	List(ctx context.Context, opts entry.ListOptions) ([]entry.Entry, error)
	Delete(ctx context.Context, id string) error
}

// RecordingService defines recording operations needed by MCP.
type RecordingService interface {
	ListByProject(ctx context.Context, projectName string) ([]recording.Recording, error)
	SetTranscription(ctx context.Context, id, transcription string) error
	Delete(ctx context.Context, id string) error
}

// BackupService defines backup operations needed by MCP.
type BackupService interface {
	Export(ctx context.Context) (*backup.Snapshot, error)
	Restore(ctx context.Context, snap *backup.Snapshot) error
}

// StoreStatus reports the persistence connection state.
type StoreStatus interface {
	Status() store.Status
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects   ProjectService
	Entries    EntryService
	Recordings RecordingService
	Backup     BackupService
	Store      StoreStatus
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and resources.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "snaglist",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerPolicyResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}

const serverInstructions = `snaglist is a local snag-list store for construction projects: Projects → Entries → Annotations, plus voice Recordings.

Core concepts:
- Project: named container for entries. Names are unique and entries reference projects by name.
- Entry: one logged defect. Each entry carries a per-project snag number, allocated on creation, never reused.
- Annotation: a positioned comment pin on an entry's photo. Coordinates are percentages in [0,100].
- Recording: a voice note scoped to a project; transcribed at most once.

Rules of engagement:
1) Orient with list_projects, then list_entries for the project you care about.
2) Entries are addressed by id; within a project, get_entry_by_number resolves a snag number.
3) Annotations replace as a whole set via commit_annotations; there is no per-annotation mutation.
4) restore_backup destructively replaces the entire store and drops all recordings. Read snaglist://backup-policy before offering it to a user.
5) store_status reports the persistence connection; a "blocked" store is being migrated by another process and will retry on its own.
`
