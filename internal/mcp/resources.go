package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type policyResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var policyResources = []policyResource{
	{
		URI:         "snaglist://backup-policy",
		Name:        "backup_policy",
		Title:       "Backup and restore policy",
		Description: "What export_backup includes, what restore_backup destroys, and what to tell the user before either.",
		Content: `# Backup and restore policy

## What a snapshot contains

A snapshot is a self-describing JSON document holding every project and
every entry, including annotations and snag numbers. It is portable: a
fresh store restored from a snapshot behaves identically for everything
the snapshot covers.

## Voice recordings are NOT included

Audio blobs dominate store size and would stop the backup being a
portable, inspectable document. ` + "`export_backup`" + ` therefore skips
recordings entirely.

## Restore is destructive

` + "`restore_backup`" + ` replaces the ENTIRE store in one transaction:

- every current project and entry is deleted, then the snapshot's
  records are written;
- every recording is deleted too, and since snapshots carry none,
  recordings do not come back.

A snapshot that fails validation is rejected before anything is deleted;
a failed restore leaves the store untouched.

## What to tell the user

Before offering restore, state both facts plainly: current data is
replaced wholesale, and all voice recordings are lost. Suggest exporting
first.
`,
	},
}

func registerPolicyResources(server *sdkmcp.Server) {
	for _, doc := range policyResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
