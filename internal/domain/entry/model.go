package entry

import "time"

// Priority of an entry.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Status of an entry.
type Status string

const (
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

// Annotation is a positioned comment pin on an entry's photo. X and Y are
// percentages of the image's rendered bounding box, not pixels, so they
// stay valid across differently sized viewers.
type Annotation struct {
	ID   string  `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
	Size *int    `json:"size,omitempty"`
}

// Entry is one logged snag: a numbered, photographed defect inside a
// project. Annotations live on the entry and have no lifecycle of their
// own.
type Entry struct {
	ID              string       `json:"id"`
	ProjectName     string       `json:"project_name"`
	SnagNumber      int64        `json:"snag_number"`
	Name            string       `json:"name"`
	Description     string       `json:"description,omitempty"`
	PhotoPath       string       `json:"photo_path,omitempty"`
	Priority        Priority     `json:"priority"`
	AssignedTo      string       `json:"assigned_to,omitempty"`
	Status          Status       `json:"status"`
	Location        string       `json:"location,omitempty"`
	ObservationDate time.Time    `json:"observation_date"`
	CompletionDate  *time.Time   `json:"completion_date,omitempty"`
	Annotations     []Annotation `json:"annotations"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// ValidPriority reports whether p is one of the known priorities.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
