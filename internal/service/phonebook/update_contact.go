package phonebook

import (
	"context"
	"log/slog"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// UpdateContact merges the input over the stored contact, validates the
// result, and writes it back. The read and write share one transaction
// so a concurrent edit cannot slip between them.
func (s *Service) UpdateContact(ctx context.Context, id int64, input UpdateContactInput) (*domain.Contact, error) {
	var updated *domain.Contact
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.contacts.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		name, telephone, category := input.merged(current)
		if err := domain.ValidateContact(name, telephone); err != nil {
			return err
		}
		if category == "" {
			category = domain.CategoryOther
		}

		updated, err = s.contacts.Update(txCtx, id, name, telephone, category)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "contact updated", slog.Int64("contact_id", id))

	return updated, nil
}
