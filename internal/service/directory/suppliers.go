package directory

import (
	"context"
	"log/slog"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// CreateSupplier stores a supplier with its address and phone numbers
// in one transaction.
func (s *Service) CreateSupplier(ctx context.Context, sup *domain.Supplier) (*domain.Supplier, error) {
	if err := requireName(sup.Name); err != nil {
		return nil, err
	}

	var created *domain.Supplier
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.CreateSupplier(txCtx, sup)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "supplier created",
		slog.Int64("supplier_id", created.ID),
		slog.String("name", created.Name),
	)

	return created, nil
}

// GetSupplier returns a supplier with its full graph.
func (s *Service) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

// ListSuppliers returns all suppliers ordered by name.
func (s *Service) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

// DeleteSupplier removes a supplier and everything it owns.
func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSupplier(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "supplier deleted", slog.Int64("supplier_id", id))
	return nil
}

// LinkSupplierContact associates an existing contact person with a supplier.
func (s *Service) LinkSupplierContact(ctx context.Context, supplierID int64, link domain.ContactLink) error {
	return s.repo.LinkSupplierContact(ctx, supplierID, link)
}
