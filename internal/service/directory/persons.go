package directory

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// CreateContactPerson stores a person with their phone numbers in one
// transaction. At least one of first or last name must be set.
func (s *Service) CreateContactPerson(ctx context.Context, cp *domain.ContactPerson) (*domain.ContactPerson, error) {
	if strings.TrimSpace(cp.FirstName) == "" && strings.TrimSpace(cp.LastName) == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}

	var created *domain.ContactPerson
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.CreateContactPerson(txCtx, cp)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "contact person created",
		slog.Int64("person_id", created.ID),
	)

	return created, nil
}

// GetContactPerson returns a person with their phone numbers.
func (s *Service) GetContactPerson(ctx context.Context, id int64) (*domain.ContactPerson, error) {
	return s.repo.GetContactPerson(ctx, id)
}

// DeleteContactPerson removes a person; association rows on both sides
// go with them.
func (s *Service) DeleteContactPerson(ctx context.Context, id int64) error {
	if err := s.repo.DeleteContactPerson(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "contact person deleted", slog.Int64("person_id", id))
	return nil
}
