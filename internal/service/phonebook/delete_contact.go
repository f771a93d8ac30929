package phonebook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// DeleteContact marks a contact inactive. Deleting an absent or
// already-inactive contact returns domain.ErrNotFound.
func (s *Service) DeleteContact(ctx context.Context, id int64) error {
	ok, err := s.contacts.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("contact %d: %w", id, domain.ErrNotFound)
	}

	s.log.InfoContext(ctx, "contact deleted", slog.Int64("contact_id", id))

	return nil
}
