// Package directory implements management of the extended directory:
// practices, suppliers, and their contact persons.
package directory

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

type directoryRepo interface {
	CreatePractice(ctx context.Context, p *domain.Practice) (*domain.Practice, error)
	GetPractice(ctx context.Context, id int64) (*domain.Practice, error)
	ListPractices(ctx context.Context) ([]domain.Practice, error)
	DeletePractice(ctx context.Context, id int64) error
	LinkPracticeContact(ctx context.Context, practiceID int64, link domain.ContactLink) error

	CreateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
	LinkSupplierContact(ctx context.Context, supplierID int64, link domain.ContactLink) error

	CreateContactPerson(ctx context.Context, cp *domain.ContactPerson) (*domain.ContactPerson, error)
	GetContactPerson(ctx context.Context, id int64) (*domain.ContactPerson, error)
	DeleteContactPerson(ctx context.Context, id int64) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides extended directory operations.
type Service struct {
	repo directoryRepo
	tx   txManager
	log  *slog.Logger
}

// NewService creates a new directory service.
func NewService(log *slog.Logger, repo directoryRepo, tx txManager) *Service {
	return &Service{
		repo: repo,
		tx:   tx,
		log:  log.With("service", "directory"),
	}
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "name is required")
	}
	return nil
}
