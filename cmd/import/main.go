// Command import loads a JSON file of chronicle events into the SQLite
// database.
//
// Usage:
//
//	go run ./cmd/import -json data/chronicle.json -db data/chronicle.db
//
// The file is a JSON array of objects with a "date" (either notation),
// a "title" and optional "details". All events are imported in a single
// transaction: a bad entry anywhere leaves the database untouched.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/calmarendian/calendar-api/internal/calmar"
	"github.com/calmarendian/calendar-api/internal/database"
)

type eventEntry struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Details string `json:"details,omitempty"`
}

func main() {
	jsonPath := flag.String("json", "data/chronicle.json", "Path to events JSON file")
	dbPath := flag.String("db", "data/chronicle.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	if err := run(*jsonPath, *dbPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(jsonPath, dbPath string, logger *slog.Logger) error {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", jsonPath, err)
	}

	var entries []eventEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse %s: %w", jsonPath, err)
	}

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	err = db.WithTx(ctx, func(tx *database.Tx) error {
		for i, entry := range entries {
			if entry.Title == "" {
				return fmt.Errorf("entry %d: title is required", i)
			}

			date, err := calmar.Parse(entry.Date)
			if err != nil {
				return fmt.Errorf("entry %d (%q): %w", i, entry.Date, err)
			}

			event := &database.Event{
				ADR:   date.ADR(),
				Title: entry.Title,
			}
			if entry.Details != "" {
				details := entry.Details
				event.Details = &details
			}

			if err := tx.CreateEvent(ctx, event); err != nil {
				return fmt.Errorf("entry %d (%q): %w", i, entry.Title, err)
			}

			logger.Debug("imported event",
				slog.String("date", date.String()),
				slog.String("title", entry.Title),
			)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("import complete", slog.Int("events", len(entries)))
	return nil
}
