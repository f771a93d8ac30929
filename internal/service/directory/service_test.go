package directory

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

type repoMock struct {
	directoryRepo

	CreatePracticeFunc      func(ctx context.Context, p *domain.Practice) (*domain.Practice, error)
	CreateContactPersonFunc func(ctx context.Context, cp *domain.ContactPerson) (*domain.ContactPerson, error)
}

func (m *repoMock) CreatePractice(ctx context.Context, p *domain.Practice) (*domain.Practice, error) {
	return m.CreatePracticeFunc(ctx, p)
}

func (m *repoMock) CreateContactPerson(ctx context.Context, cp *domain.ContactPerson) (*domain.ContactPerson, error) {
	return m.CreateContactPersonFunc(ctx, cp)
}

type txMock struct{ calls int }

func (m *txMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func TestCreatePractice_RequiresName(t *testing.T) {
	svc := NewService(slog.New(slog.DiscardHandler), &repoMock{}, &txMock{})

	_, err := svc.CreatePractice(context.Background(), &domain.Practice{Name: "   "})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreatePractice_WrapsInTx(t *testing.T) {
	repo := &repoMock{
		CreatePracticeFunc: func(ctx context.Context, p *domain.Practice) (*domain.Practice, error) {
			out := *p
			out.ID = 1
			return &out, nil
		},
	}
	tx := &txMock{}
	svc := NewService(slog.New(slog.DiscardHandler), repo, tx)

	created, err := svc.CreatePractice(context.Background(), &domain.Practice{Name: "Noord"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, 1, tx.calls)
}

func TestCreateContactPerson_RequiresAName(t *testing.T) {
	svc := NewService(slog.New(slog.DiscardHandler), &repoMock{}, &txMock{})

	_, err := svc.CreateContactPerson(context.Background(), &domain.ContactPerson{})
	require.ErrorIs(t, err, domain.ErrValidation)

	repo := &repoMock{
		CreateContactPersonFunc: func(ctx context.Context, cp *domain.ContactPerson) (*domain.ContactPerson, error) {
			out := *cp
			out.ID = 2
			return &out, nil
		},
	}
	svc = NewService(slog.New(slog.DiscardHandler), repo, &txMock{})

	created, err := svc.CreateContactPerson(context.Background(), &domain.ContactPerson{LastName: "Jansen"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)
}
