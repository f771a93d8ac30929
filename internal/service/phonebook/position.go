package phonebook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// Position-addressed operations. Older provisioning clients address a
// contact by its zero-based position in the name-ordered active
// listing instead of by id. The listing is recomputed inside the same
// transaction as the mutation, so the position cannot go stale between
// resolve and write.

// DeleteContactAt removes the contact at the given position.
// Out-of-range positions return domain.ErrNotFound.
func (s *Service) DeleteContactAt(ctx context.Context, position int) error {
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		contact, err := s.resolvePosition(txCtx, position)
		if err != nil {
			return err
		}

		ok, err := s.contacts.SoftDelete(txCtx, contact.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("contact %d: %w", contact.ID, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "contact deleted by position", slog.Int("position", position))

	return nil
}

// UpdateContactAt edits the contact at the given position.
func (s *Service) UpdateContactAt(ctx context.Context, position int, input UpdateContactInput) (*domain.Contact, error) {
	var updated *domain.Contact
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		contact, err := s.resolvePosition(txCtx, position)
		if err != nil {
			return err
		}

		name, telephone, category := input.merged(contact)
		if err := domain.ValidateContact(name, telephone); err != nil {
			return err
		}
		if category == "" {
			category = domain.CategoryOther
		}

		updated, err = s.contacts.Update(txCtx, contact.ID, name, telephone, category)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "contact updated by position", slog.Int("position", position))

	return updated, nil
}

func (s *Service) resolvePosition(ctx context.Context, position int) (*domain.Contact, error) {
	if position < 0 {
		return nil, fmt.Errorf("position %d: %w", position, domain.ErrNotFound)
	}

	contacts, err := s.contacts.List(ctx, domain.ContactFilter{})
	if err != nil {
		return nil, err
	}
	if position >= len(contacts) {
		return nil, fmt.Errorf("position %d: %w", position, domain.ErrNotFound)
	}

	return &contacts[position], nil
}
