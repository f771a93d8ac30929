package phonebook

import (
	"context"
	"io"
	"log/slog"

	"github.com/mverbeek/phonebook-backend/internal/domain"
	"github.com/mverbeek/phonebook-backend/internal/transcode"
)

// ImportCSV bulk-imports contacts from a CSV stream. Rows that fail
// validation are skipped; the valid remainder is inserted in a single
// transaction. A file with zero valid rows imports nothing and is not
// an error, and neither is an unparseable file: both come back as an
// imported count of zero.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader, category string) (int, error) {
	entries, err := transcode.ParseCSV(r)
	if err != nil {
		s.log.WarnContext(ctx, "csv import unparseable", slog.Any("error", err))
		return 0, nil
	}
	return s.importEntries(ctx, entries, category)
}

// ImportXML bulk-imports contacts from a directory XML stream, in
// either the Yealink or the legacy dialect. Unparseable documents
// import zero contacts.
func (s *Service) ImportXML(ctx context.Context, r io.Reader, category string) (int, error) {
	entries, err := transcode.ParseDirectoryXML(r)
	if err != nil {
		s.log.WarnContext(ctx, "xml import unparseable", slog.Any("error", err))
		return 0, nil
	}
	return s.importEntries(ctx, entries, category)
}

func (s *Service) importEntries(ctx context.Context, entries []domain.Entry, category string) (int, error) {
	if category == "" {
		category = domain.CategoryOther
	}

	valid := entries[:0]
	skipped := 0
	for _, e := range entries {
		if domain.ValidateContact(e.Name, e.Telephone) != nil {
			skipped++
			continue
		}
		valid = append(valid, e)
	}

	if len(valid) == 0 {
		s.log.InfoContext(ctx, "import skipped, no valid entries",
			slog.Int("skipped", skipped),
		)
		return 0, nil
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, e := range valid {
			if _, err := s.contacts.Create(txCtx, e.Name, e.Telephone, category); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "contacts imported",
		slog.Int("imported", len(valid)),
		slog.Int("skipped", skipped),
		slog.String("category", category),
	)

	return len(valid), nil
}
