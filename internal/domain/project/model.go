package project

import "time"

// Project groups entries under a unique, human-chosen name. Entries refer
// to their project by this name, not by ID.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is a lightweight representation for listing
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	EntryCount  int       `json:"entry_count"`
	OpenEntries int       `json:"open_entries"`
	CreatedAt   time.Time `json:"created_at"`
}
