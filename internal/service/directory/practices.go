package directory

import (
	"context"
	"log/slog"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// CreatePractice stores a practice with its address and phone numbers
// in one transaction.
func (s *Service) CreatePractice(ctx context.Context, p *domain.Practice) (*domain.Practice, error) {
	if err := requireName(p.Name); err != nil {
		return nil, err
	}

	var created *domain.Practice
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.repo.CreatePractice(txCtx, p)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "practice created",
		slog.Int64("practice_id", created.ID),
		slog.String("name", created.Name),
	)

	return created, nil
}

// GetPractice returns a practice with its full graph.
func (s *Service) GetPractice(ctx context.Context, id int64) (*domain.Practice, error) {
	return s.repo.GetPractice(ctx, id)
}

// ListPractices returns all practices ordered by name.
func (s *Service) ListPractices(ctx context.Context) ([]domain.Practice, error) {
	return s.repo.ListPractices(ctx)
}

// DeletePractice removes a practice and everything it owns.
func (s *Service) DeletePractice(ctx context.Context, id int64) error {
	if err := s.repo.DeletePractice(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "practice deleted", slog.Int64("practice_id", id))
	return nil
}

// LinkPracticeContact associates an existing contact person with a practice.
func (s *Service) LinkPracticeContact(ctx context.Context, practiceID int64, link domain.ContactLink) error {
	return s.repo.LinkPracticeContact(ctx, practiceID, link)
}
