package recording

import "time"

// Recording is a project-scoped voice note. The audio blob lives only in
// the local store and is deliberately excluded from backups.
type Recording struct {
	ID            string    `json:"id"`
	ProjectName   string    `json:"project_name"`
	FileName      string    `json:"file_name"`
	Audio         []byte    `json:"-"`
	Transcription *string   `json:"transcription,omitempty"`
	Processed     bool      `json:"processed"`
	CreatedAt     time.Time `json:"created_at"`
}
