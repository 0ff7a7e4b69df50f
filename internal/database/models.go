package database

import "time"

// Event is a chronicle entry pinned to a single Calmarendian day.
//
// Dates are stored as the absolute day reference so range queries are plain
// integer comparisons; callers render the notational forms from the ADR.
type Event struct {
	ID        int64     `json:"id"`
	ADR       int       `json:"adr"`
	Title     string    `json:"title"`
	Details   *string   `json:"details,omitempty"` // nullable free text
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
