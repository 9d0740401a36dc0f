package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/adapters/fingerprint"
)

const batchSize = 1000

func main() {
	csvPath := flag.String("csv", "data/oui/maclookup.csv", "Path to CSV file")
	dbPath := flag.String("db", "data/oui/oui.db", "Path to OUI database (CYBERDASH_OUI_DB)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	f, err := os.Open(*csvPath)
	if err != nil {
		logger.Error("Failed to open CSV", "path", *csvPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	entries, skipped, err := fingerprint.ParseOUICSV(f, time.Now())
	if err != nil {
		logger.Error("Failed to parse CSV", "error", err)
		os.Exit(1)
	}

	db, err := fingerprint.NewOUIDatabase(*dbPath, 1, nil)
	if err != nil {
		logger.Error("Failed to open database", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	for start := 0; start < len(entries); start += batchSize {
		end := min(start+batchSize, len(entries))
		if err := db.BulkInsertOUIs(ctx, entries[start:end]); err != nil {
			logger.Error("Bulk insert failed", "error", err)
			os.Exit(1)
		}
		logger.Debug("Inserted batch", "through", end)
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		logger.Error("Failed to get stats", "error", err)
		os.Exit(1)
	}
	logger.Info("Import complete", "imported", len(entries), "skipped", skipped, "total", stats.TotalEntries)
}
