package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fieldstack/snaglist/internal/backup"
	"github.com/fieldstack/snaglist/internal/domain/entry"
	"github.com/fieldstack/snaglist/internal/domain/project"
	"github.com/fieldstack/snaglist/internal/domain/recording"
)

type createProjectInput struct {
	Name string `json:"name" jsonschema:"Project display name, unique across the store"`
}

type listProjectsInput struct{}

type listProjectsOutput struct {
	Projects []project.Summary `json:"projects"`
}

type deleteProjectInput struct {
	ID string `json:"id" jsonschema:"Project ID"`
}

type deleteProjectOutput struct {
	EntriesRemoved int64 `json:"entries_removed"`
}

type createEntryInput struct {
	ProjectName     string `json:"project_name" jsonschema:"Name of the project this entry belongs to"`
	Name            string `json:"name" jsonschema:"Short defect title"`
	Description     string `json:"description,omitempty" jsonschema:"Longer defect description"`
	PhotoPath       string `json:"photo_path,omitempty" jsonschema:"Path to the defect photo"`
	Priority        string `json:"priority,omitempty" jsonschema:"Low, Medium, or High; defaults to Medium"`
	AssignedTo      string `json:"assigned_to,omitempty" jsonschema:"Person responsible"`
	Location        string `json:"location,omitempty" jsonschema:"Where on site the defect is"`
	ObservationDate string `json:"observation_date,omitempty" jsonschema:"RFC 3339 timestamp; defaults to now"`
}

type entryIDInput struct {
	ID string `json:"id" jsonschema:"Entry ID"`
}

type entryByNumberInput struct {
	ProjectName string `json:"project_name" jsonschema:"Project name"`
	SnagNumber  int64  `json:"snag_number" jsonschema:"Per-project snag number"`
}

type updateEntryInput struct {
	ID              string  `json:"id" jsonschema:"Entry ID"`
	Name            *string `json:"name,omitempty" jsonschema:"New title"`
	Description     *string `json:"description,omitempty" jsonschema:"New description"`
	PhotoPath       *string `json:"photo_path,omitempty" jsonschema:"New photo path"`
	Priority        *string `json:"priority,omitempty" jsonschema:"New priority: Low, Medium, or High"`
	AssignedTo      *string `json:"assigned_to,omitempty" jsonschema:"New assignee"`
	Status          *string `json:"status,omitempty" jsonschema:"InProgress or Completed"`
	Location        *string `json:"location,omitempty" jsonschema:"New location"`
	ObservationDate *string `json:"observation_date,omitempty" jsonschema:"New observation timestamp, RFC 3339"`
}

type listEntriesInput struct {
	ProjectName string   `json:"project_name,omitempty" jsonschema:"Filter to one project; when it is the only filter, entries come back in snag-number order"`
	Statuses    []string `json:"statuses,omitempty" jsonschema:"Filter by status (InProgress, Completed)"`
	Priorities  []string `json:"priorities,omitempty" jsonschema:"Filter by priority (Low, Medium, High)"`
	Limit       int      `json:"limit,omitempty" jsonschema:"Maximum number of results"`
	Offset      int      `json:"offset,omitempty" jsonschema:"Offset for pagination"`
}

type listEntriesOutput struct {
	Entries []entry.Entry `json:"entries"`
}

type commitAnnotationsInput struct {
	EntryID     string            `json:"entry_id" jsonschema:"Entry whose annotation set is being replaced"`
	Annotations []json.RawMessage `json:"annotations" jsonschema:"The complete combined annotation set; replaces the stored set as a whole"`
}

type listRecordingsInput struct {
	ProjectName string `json:"project_name" jsonschema:"Project name"`
}

type listRecordingsOutput struct {
	Recordings []recording.Recording `json:"recordings"`
}

type transcribeRecordingInput struct {
	ID            string `json:"id" jsonschema:"Recording ID"`
	Transcription string `json:"transcription" jsonschema:"Speech-to-text result; a recording transcribes at most once"`
}

type exportBackupInput struct{}

type exportBackupOutput struct {
	Snapshot string `json:"snapshot" jsonschema:"The backup document as indented JSON"`
}

type restoreBackupInput struct {
	Snapshot string `json:"snapshot" jsonschema:"A backup document previously produced by export_backup"`
}

type restoreBackupOutput struct {
	Projects int `json:"projects"`
	Entries  int `json:"entries"`
}

type storeStatusInput struct{}

type storeStatusOutput struct {
	Status string `json:"status" jsonschema:"disconnected, connected, blocked, or error"`
}

type emptyOutput struct{}

func registerTools(server *sdkmcp.Server, svcs Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project with a unique name",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in createProjectInput) (*sdkmcp.CallToolResult, *project.Project, error) {
		proj, err := svcs.Projects.Create(ctx, in.Name)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects with entry counts",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listProjectsInput) (*sdkmcp.CallToolResult, listProjectsOutput, error) {
		summaries, err := svcs.Projects.List(ctx)
		if err != nil {
			return nil, listProjectsOutput{}, toolError(err)
		}
		if summaries == nil {
			summaries = []project.Summary{}
		}
		return nil, listProjectsOutput{Projects: summaries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project and every entry and recording in it",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in deleteProjectInput) (*sdkmcp.CallToolResult, deleteProjectOutput, error) {
		removed, err := svcs.Projects.Delete(ctx, in.ID)
		if err != nil {
			return nil, deleteProjectOutput{}, toolError(err)
		}
		return nil, deleteProjectOutput{EntriesRemoved: removed}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_entry",
		Description: "Log a new snag in a project; its snag number is allocated automatically",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in createEntryInput) (*sdkmcp.CallToolResult, *entry.Entry, error) {
		createReq := entry.CreateRequest{
			ProjectName: in.ProjectName,
			Name:        in.Name,
			Description: in.Description,
			PhotoPath:   in.PhotoPath,
			Priority:    entry.Priority(in.Priority),
			AssignedTo:  in.AssignedTo,
			Location:    in.Location,
		}
		if in.ObservationDate != "" {
			observed, err := time.Parse(time.RFC3339, in.ObservationDate)
			if err != nil {
				return nil, nil, &APIError{Code: "INVALID_INPUT", Message: "observation_date is not RFC 3339"}
			}
			createReq.ObservationDate = observed
		}

		e, err := svcs.Entries.Create(ctx, createReq)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, e, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_entry",
		Description: "Get an entry by ID",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in entryIDInput) (*sdkmcp.CallToolResult, *entry.Entry, error) {
		e, err := svcs.Entries.Get(ctx, in.ID)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, e, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_entry_by_number",
		Description: "Get a project's entry by its snag number",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in entryByNumberInput) (*sdkmcp.CallToolResult, *entry.Entry, error) {
		e, err := svcs.Entries.GetBySnagNumber(ctx, in.ProjectName, in.SnagNumber)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, e, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_entry",
		Description: "Update an entry's fields; omitted fields are left unchanged",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in updateEntryInput) (*sdkmcp.CallToolResult, *entry.Entry, error) {
		updateReq := entry.UpdateRequest{
			Name:        in.Name,
			Description: in.Description,
			PhotoPath:   in.PhotoPath,
			AssignedTo:  in.AssignedTo,
			Location:    in.Location,
		}
		if in.Priority != nil {
			p := entry.Priority(*in.Priority)
			updateReq.Priority = &p
		}
		if in.Status != nil {
			s := entry.Status(*in.Status)
			updateReq.Status = &s
		}
		if in.ObservationDate != nil {
			observed, err := time.Parse(time.RFC3339, *in.ObservationDate)
			if err != nil {
				return nil, nil, &APIError{Code: "INVALID_INPUT", Message: "observation_date is not RFC 3339"}
			}
			updateReq.ObservationDate = &observed
		}

		e, err := svcs.Entries.Update(ctx, in.ID, updateReq)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, e, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_entry",
		Description: "Delete an entry; its snag number is never reused",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in entryIDInput) (*sdkmcp.CallToolResult, emptyOutput, error) {
		if err := svcs.Entries.Delete(ctx, in.ID); err != nil {
			return nil, emptyOutput{}, toolError(err)
		}
		return nil, emptyOutput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_entries",
		Description: "List entries, filtered by project, status, or priority",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listEntriesInput) (*sdkmcp.CallToolResult, listEntriesOutput, error) {
		var entries []entry.Entry
		var err error

		onlyProject := in.ProjectName != "" && len(in.Statuses) == 0 &&
			len(in.Priorities) == 0 && in.Limit == 0 && in.Offset == 0
		if onlyProject {
			entries, err = svcs.Entries.ListByProject(ctx, in.ProjectName)
		} else {
			opts := entry.ListOptions{
				ProjectName: in.ProjectName,
				Limit:       in.Limit,
				Offset:      in.Offset,
			}
			for _, s := range in.Statuses {
				opts.Statuses = append(opts.Statuses, entry.Status(s))
			}
			for _, p := range in.Priorities {
				opts.Priorities = append(opts.Priorities, entry.Priority(p))
			}
			entries, err = svcs.Entries.List(ctx, opts)
		}
		if err != nil {
			return nil, listEntriesOutput{}, toolError(err)
		}
		if entries == nil {
			entries = []entry.Entry{}
		}
		return nil, listEntriesOutput{Entries: entries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "commit_annotations",
		Description: "Replace an entry's annotation set with a reconciled combined set",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in commitAnnotationsInput) (*sdkmcp.CallToolResult, *entry.Entry, error) {
		annotations := make([]entry.Annotation, 0, len(in.Annotations))
		for _, raw := range in.Annotations {
			a, err := entry.ParseAnnotation(raw)
			if err != nil {
				return nil, nil, toolError(err)
			}
			annotations = append(annotations, a)
		}

		e, err := svcs.Entries.CommitAnnotations(ctx, in.EntryID, annotations)
		if err != nil {
			return nil, nil, toolError(err)
		}
		return nil, e, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_recordings",
		Description: "List a project's voice recordings (metadata only, no audio)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in listRecordingsInput) (*sdkmcp.CallToolResult, listRecordingsOutput, error) {
		recordings, err := svcs.Recordings.ListByProject(ctx, in.ProjectName)
		if err != nil {
			return nil, listRecordingsOutput{}, toolError(err)
		}
		if recordings == nil {
			recordings = []recording.Recording{}
		}
		return nil, listRecordingsOutput{Recordings: recordings}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "transcribe_recording",
		Description: "Attach a transcription to a recording; allowed once per recording",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in transcribeRecordingInput) (*sdkmcp.CallToolResult, emptyOutput, error) {
		if err := svcs.Recordings.SetTranscription(ctx, in.ID, in.Transcription); err != nil {
			return nil, emptyOutput{}, toolError(err)
		}
		return nil, emptyOutput{}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_backup",
		Description: "Export the whole store as a JSON snapshot; recordings are excluded",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in exportBackupInput) (*sdkmcp.CallToolResult, exportBackupOutput, error) {
		snap, err := svcs.Backup.Export(ctx)
		if err != nil {
			return nil, exportBackupOutput{}, toolError(err)
		}
		var buf bytes.Buffer
		if err := snap.Encode(&buf); err != nil {
			return nil, exportBackupOutput{}, toolError(err)
		}
		return nil, exportBackupOutput{Snapshot: buf.String()}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "restore_backup",
		Description: "DESTRUCTIVE: replace the entire store with a snapshot; all current data and every recording is dropped",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in restoreBackupInput) (*sdkmcp.CallToolResult, restoreBackupOutput, error) {
		snap, err := backup.Decode(bytes.NewReader([]byte(in.Snapshot)))
		if err != nil {
			return nil, restoreBackupOutput{}, toolError(err)
		}
		if err := svcs.Backup.Restore(ctx, snap); err != nil {
			return nil, restoreBackupOutput{}, toolError(err)
		}
		return nil, restoreBackupOutput{
			Projects: len(snap.Projects),
			Entries:  len(snap.Entries),
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "store_status",
		Description: "Report the persistence connection state",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in storeStatusInput) (*sdkmcp.CallToolResult, storeStatusOutput, error) {
		return nil, storeStatusOutput{Status: string(svcs.Store.Status())}, nil
	})
}
