package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1Events,
}

// migrationV1Events creates the chronicle events schema.
//
// Key design decisions:
//
// 1. ADR AS THE DATE COLUMN
//   - Events store the absolute day reference, not a notation string.
//   - Range queries become integer comparisons and never depend on the
//     textual form the event was submitted in.
//
// 2. TIMESTAMPS AS TEXT
//   - SQLite has no native datetime type; datetime('now') gives a stable
//     lexicographically sortable format.
const migrationV1Events = `
-- Migration 001: chronicle events

CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	adr INTEGER NOT NULL,
	title TEXT NOT NULL,
	details TEXT,
	created_at TEXT NOT NULL DEFAULT (datetime('now')),
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_events_adr ON events(adr);
`
