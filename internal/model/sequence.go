package model

import "time"

// Sequence statuses.
const (
	SequenceActive    = "active"
	SequenceCompleted = "completed"
	SequenceArchived  = "archived"
)

// ValidSequenceStatuses are the allowed sequence status values.
var ValidSequenceStatuses = map[string]bool{
	SequenceActive:    true,
	SequenceCompleted: true,
	SequenceArchived:  true,
}

// Sequence is a durable, named container of thoughts for one reasoning
// session.
type Sequence struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"lastModified"`
	ThoughtCount int       `json:"thoughtCount"`
}

// ExportBundle is the export/import interchange format. Import always
// allocates a fresh sequence id and re-parents the thoughts to it.
type ExportBundle struct {
	Sequence Sequence        `json:"sequence"`
	Thoughts []ThoughtRecord `json:"thoughts"`
}
