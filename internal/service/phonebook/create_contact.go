package phonebook

import (
	"context"
	"log/slog"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// CreateContact validates and stores a new contact.
func (s *Service) CreateContact(ctx context.Context, input CreateContactInput) (*domain.Contact, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	contact, err := s.contacts.Create(ctx, input.Name, input.Telephone, input.category())
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "contact created",
		slog.Int64("contact_id", contact.ID),
		slog.String("name", contact.Name),
	)

	return contact, nil
}
