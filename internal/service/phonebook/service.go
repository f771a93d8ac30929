// Package phonebook implements the contact management operations:
// CRUD, position-addressed edits, bulk import, and first-run seeding.
package phonebook

import (
	"context"
	"log/slog"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

type contactRepo interface {
	List(ctx context.Context, f domain.ContactFilter) ([]domain.Contact, error)
	GetByID(ctx context.Context, id int64) (*domain.Contact, error)
	Create(ctx context.Context, name, telephone, category string) (*domain.Contact, error)
	Update(ctx context.Context, id int64, name, telephone, category string) (*domain.Contact, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides contact management operations.
type Service struct {
	contacts contactRepo
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new phonebook service.
func NewService(log *slog.Logger, contacts contactRepo, tx txManager) *Service {
	return &Service{
		contacts: contacts,
		tx:       tx,
		log:      log.With("service", "phonebook"),
	}
}
