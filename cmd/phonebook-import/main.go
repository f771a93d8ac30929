// Command phonebook-import bulk-loads contacts into the database from a
// CSV or XML file, using the same validation and skip rules as the HTTP
// import endpoint, or dumps the active contacts to stdout. It is
// intended for migrations and initial loads, not as part of the running
// server.
//
// Flags:
//
//	--file      path to the input file (.csv or .xml)
//	--format    csv|xml, default inferred from the file extension
//	--category  category assigned to imported contacts (default "other");
//	            on export, filters the output when set explicitly
//	--dry-run   parse and validate without writing to the database
//	--export    csv|vcard|xml: write the active contacts to stdout
//	            instead of importing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mverbeek/phonebook-backend/internal/adapter/sqlite"
	contactrepo "github.com/mverbeek/phonebook-backend/internal/adapter/sqlite/contact"
	"github.com/mverbeek/phonebook-backend/internal/app"
	"github.com/mverbeek/phonebook-backend/internal/config"
	"github.com/mverbeek/phonebook-backend/internal/domain"
	"github.com/mverbeek/phonebook-backend/internal/service/phonebook"
	"github.com/mverbeek/phonebook-backend/internal/transcode"
)

func main() {
	fileFlag := flag.String("file", "", "path to the input file (.csv or .xml)")
	formatFlag := flag.String("format", "", "csv or xml (default: file extension)")
	categoryFlag := flag.String("category", domain.CategoryOther, "category for imported contacts")
	dryRunFlag := flag.Bool("dry-run", false, "validate without writing to the database")
	exportFlag := flag.String("export", "", "csv, vcard or xml: write active contacts to stdout")
	flag.Parse()

	categorySet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "category" {
			categorySet = true
		}
	})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *exportFlag != "" {
		filter := domain.ContactFilter{}
		if categorySet {
			filter.Category = *categoryFlag
		}
		if err := runExport(ctx, cfg, logger, strings.ToLower(*exportFlag), filter); err != nil {
			logger.Error("export", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if *fileFlag == "" {
		flag.Usage()
		os.Exit(1)
	}

	format := strings.ToLower(*formatFlag)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(*fileFlag)), ".")
	}
	if format != "csv" && format != "xml" {
		log.Fatalf("unsupported format %q (want csv or xml)", format)
	}

	f, err := os.Open(*fileFlag)
	if err != nil {
		logger.Error("open input file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer f.Close()

	if *dryRunFlag {
		valid, skipped, err := countValid(f, format)
		if err != nil {
			logger.Error("parse input", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("dry run: %d valid, %d skipped\n", valid, skipped)
		return
	}

	svc, db, err := openService(ctx, cfg, logger)
	if err != nil {
		logger.Error("open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	var imported int
	switch format {
	case "csv":
		imported, err = svc.ImportCSV(ctx, f, *categoryFlag)
	case "xml":
		imported, err = svc.ImportXML(ctx, f, *categoryFlag)
	}
	if err != nil {
		logger.Error("import", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("imported %d contacts\n", imported)
}

func openService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*phonebook.Service, *sqlite.DB, error) {
	db, err := sqlite.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := sqlite.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return phonebook.NewService(logger, contactrepo.New(db), sqlite.NewTxManager(db)), db, nil
}

func runExport(ctx context.Context, cfg *config.Config, logger *slog.Logger, format string, filter domain.ContactFilter) error {
	svc, db, err := openService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	contacts, err := svc.ListContacts(ctx, filter)
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		return transcode.WriteCSV(os.Stdout, contacts)
	case "vcard":
		return transcode.WriteVCard(os.Stdout, contacts)
	case "xml":
		entries := make([]domain.Entry, 0, len(contacts))
		for _, c := range contacts {
			entries = append(entries, domain.Entry{Name: c.Name, Telephone: c.Telephone})
		}
		doc, err := transcode.MarshalDirectory(entries)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(doc)
		return err
	default:
		return fmt.Errorf("unsupported export format %q (want csv, vcard or xml)", format)
	}
}

func countValid(f *os.File, format string) (valid, skipped int, err error) {
	var entries []domain.Entry
	switch format {
	case "csv":
		entries, err = transcode.ParseCSV(f)
	case "xml":
		entries, err = transcode.ParseDirectoryXML(f)
	}
	if err != nil {
		return 0, 0, err
	}

	for _, e := range entries {
		if domain.ValidateContact(e.Name, e.Telephone) != nil {
			skipped++
			continue
		}
		valid++
	}
	return valid, skipped, nil
}
