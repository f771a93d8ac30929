package phonebook

import (
	"context"
	"strings"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// ListContacts returns active contacts matching the filter, ordered by
// name. The query is trimmed before matching; a blank query means no
// text filter.
func (s *Service) ListContacts(ctx context.Context, filter domain.ContactFilter) ([]domain.Contact, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Category = strings.TrimSpace(filter.Category)
	return s.contacts.List(ctx, filter)
}

// GetContact returns a single active contact by id.
func (s *Service) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	return s.contacts.GetByID(ctx, id)
}
