// roictl is a local data utility for the roipulse store: bulk CSV import,
// export to stdout, and clear-all.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"roipulse/internal/export"
	"roipulse/internal/store"
)

func main() {
	dbPath := flag.String("db", "roipulse.db", "sqlite database path")
	file := flag.String("file", "", "CSV file to import")
	format := flag.String("format", "json", "export format: json or csv")
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	kv, err := store.NewSQLiteKV(*dbPath)
	if err != nil {
		fatal("open %s: %v", *dbPath, err)
	}
	defer kv.Close()
	rs := store.NewRecordStore(kv, logger)

	switch flag.Arg(0) {
	case "import":
		if *file == "" {
			fatal("import needs -file")
		}
		runImport(rs, *file)
	case "export":
		runExport(rs, *format)
	case "clear":
		rs.Clear()
		fmt.Fprintln(os.Stderr, "cleared all collections")
	default:
		usage()
	}
}

func runImport(rs *store.RecordStore, path string) {
	f, err := os.Open(path)
	if err != nil {
		fatal("open %s: %v", path, err)
	}
	defer f.Close()

	records, err := export.ReadCSV(f)
	if err != nil {
		fatal("parse %s: %v", path, err)
	}

	existing := rs.Load()
	bar := progressbar.Default(int64(len(records)))
	now := time.Now().UTC()
	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = "roi_" + uuid.NewString()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		existing = append(existing, rec)
		_ = bar.Add(1)
	}
	rs.Save(existing)
	fmt.Fprintf(os.Stderr, "imported %d records\n", len(records))
}

func runExport(rs *store.RecordStore, format string) {
	records := rs.Load()
	switch format {
	case "csv":
		if err := export.WriteCSV(os.Stdout, records); err != nil {
			fatal("write csv: %v", err)
		}
	case "json":
		if err := export.WriteJSON(os.Stdout, records, time.Now().UTC()); err != nil {
			fatal("write json: %v", err)
		}
	default:
		fatal("unknown format %q", format)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: roictl [-db path] [-file data.csv] [-format json|csv] import|export|clear")
	os.Exit(2)
}

func fatal(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}
