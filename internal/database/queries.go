package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns the zero time if parsing fails.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// scanEvent scans a single event row.
func scanEvent(row interface{ Scan(...any) error }) (*Event, error) {
	var e Event
	var details sql.NullString
	var createdAt, updatedAt string

	if err := row.Scan(&e.ID, &e.ADR, &e.Title, &details, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	if details.Valid {
		e.Details = &details.String
	}
	e.CreatedAt = parseTimestamp(createdAt)
	e.UpdatedAt = parseTimestamp(updatedAt)

	return &e, nil
}

const eventColumns = "id, adr, title, details, created_at, updated_at"

// =============================================================================
// Event Queries
// =============================================================================

// CreateEvent inserts a new chronicle event and fills in its generated ID
// and timestamps.
func (db *DB) CreateEvent(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO events (adr, title, details)
		VALUES (?, ?, ?)
		RETURNING id, created_at, updated_at
	`

	var createdAt, updatedAt string
	err := db.QueryRowContext(ctx, query, event.ADR, event.Title, event.Details).
		Scan(&event.ID, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	event.CreatedAt = parseTimestamp(createdAt)
	event.UpdatedAt = parseTimestamp(updatedAt)

	return nil
}

// GetEventByID retrieves a single event.
// Returns ErrNotFound if no event has the given ID.
func (db *DB) GetEventByID(ctx context.Context, id int64) (*Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = ?", eventColumns)

	event, err := scanEvent(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event %d: %w", id, err)
	}

	return event, nil
}

// GetEventsByADR retrieves all events recorded for a single day.
func (db *DB) GetEventsByADR(ctx context.Context, adr int) ([]*Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE adr = ? ORDER BY id", eventColumns)

	return db.queryEvents(ctx, query, adr)
}

// GetEventsInRange retrieves all events with startADR <= adr <= endADR,
// ordered by day then insertion order.
func (db *DB) GetEventsInRange(ctx context.Context, startADR, endADR int) ([]*Event, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM events WHERE adr BETWEEN ? AND ? ORDER BY adr, id", eventColumns)

	return db.queryEvents(ctx, query, startADR, endADR)
}

// DeleteEvent removes an event.
// Returns ErrNotFound if no event has the given ID.
func (db *DB) DeleteEvent(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete event %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event %d: rows affected: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// CountEvents returns the total number of chronicle events.
func (db *DB) CountEvents(ctx context.Context) (int64, error) {
	var count int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

// queryEvents runs a multi-row event query.
func (db *DB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// =============================================================================
// Transaction Variants
// =============================================================================

// CreateEvent inserts a new event within a transaction; used by the bulk
// importer so a bad file leaves the chronicle untouched.
func (tx *Tx) CreateEvent(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO events (adr, title, details)
		VALUES (?, ?, ?)
		RETURNING id, created_at, updated_at
	`

	var createdAt, updatedAt string
	err := tx.QueryRowContext(ctx, query, event.ADR, event.Title, event.Details).
		Scan(&event.ID, &createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	event.CreatedAt = parseTimestamp(createdAt)
	event.UpdatedAt = parseTimestamp(updatedAt)

	return nil
}
