// Command load_initial_data bulk-loads donor spreadsheets from the command
// line, running the same import pipeline the API exposes. Useful for seeding a
// fresh database or backfilling a large export without going through the
// upload endpoint.
//
// Usage:
//
//	go run scripts/load_initial_data.go -file donors.xlsx [-client-id 3] [-assigned-by seed]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"calltime-backend/internal/config"
	"calltime-backend/internal/database"
	"calltime-backend/internal/service"
	"calltime-backend/internal/tabular"

	"github.com/joho/godotenv"
)

func main() {
	var (
		file       = flag.String("file", "", "path to the donor spreadsheet (.xlsx or .csv)")
		clientID   = flag.Uint("client-id", 0, "fallback client for rows that name no client (0 = leave unassigned)")
		assignedBy = flag.String("assigned-by", "seed-script", "attribution recorded on assignments created by this run")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.Initialize(cfg.DatabasePath, &database.Options{
		BusyTimeout: time.Duration(cfg.DatabaseBusyMillis) * time.Millisecond,
	})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("Failed to open spreadsheet:", err)
	}
	defer f.Close()

	rows, err := tabular.ParseFile(filepath.Base(*file), f)
	if err != nil {
		log.Fatal("Failed to parse spreadsheet:", err)
	}
	log.Printf("Parsed %d rows from %s", len(rows), *file)

	opts := service.ImportOptions{AssignedBy: *assignedBy}
	if *clientID > 0 {
		id := uint(*clientID)
		opts.FallbackClientID = &id
	} else if cfg.DefaultImportClientID > 0 {
		id := cfg.DefaultImportClientID
		opts.FallbackClientID = &id
	}

	summary, err := service.NewImportService(db).ImportRows(rows, opts)
	if err != nil {
		log.Fatal("Import failed:", err)
	}

	log.Printf("Batch %s: %d created, %d updated, %d skipped", summary.BatchID, summary.Created, summary.Updated, summary.Skipped)
	for _, msg := range summary.Errors {
		fmt.Fprintln(os.Stderr, "  row error:", msg)
	}
	if len(summary.Errors) > 0 {
		log.Printf("%d rows reported errors", len(summary.Errors))
	}
}
