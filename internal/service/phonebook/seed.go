package phonebook

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// SeedFromFile imports an XML seed file on first run. It is a no-op
// when the contacts table has ever held a row (active or not) or when
// the file does not exist, so restarts never duplicate the seed.
func (s *Service) SeedFromFile(ctx context.Context, path string) (int, error) {
	count, err := s.contacts.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.InfoContext(ctx, "no seed file, skipping", slog.String("path", path))
			return 0, nil
		}
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	n, err := s.ImportXML(ctx, f, domain.CategoryOther)
	if err != nil {
		return 0, fmt.Errorf("seed from %s: %w", path, err)
	}

	s.log.InfoContext(ctx, "seeded contacts",
		slog.String("path", path),
		slog.Int("imported", n),
	)

	return n, nil
}
