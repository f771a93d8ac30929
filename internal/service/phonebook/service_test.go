package phonebook

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// contactRepoMock implements contactRepo with settable funcs. Unset
// funcs fail the calling test.
type contactRepoMock struct {
	t *testing.T

	ListFunc       func(ctx context.Context, f domain.ContactFilter) ([]domain.Contact, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*domain.Contact, error)
	CreateFunc     func(ctx context.Context, name, telephone, category string) (*domain.Contact, error)
	UpdateFunc     func(ctx context.Context, id int64, name, telephone, category string) (*domain.Contact, error)
	SoftDeleteFunc func(ctx context.Context, id int64) (bool, error)
	CountFunc      func(ctx context.Context) (int, error)

	createCalls int
}

func (m *contactRepoMock) List(ctx context.Context, f domain.ContactFilter) ([]domain.Contact, error) {
	if m.ListFunc == nil {
		m.t.Fatal("unexpected List call")
	}
	return m.ListFunc(ctx, f)
}

func (m *contactRepoMock) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	if m.GetByIDFunc == nil {
		m.t.Fatal("unexpected GetByID call")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *contactRepoMock) Create(ctx context.Context, name, telephone, category string) (*domain.Contact, error) {
	if m.CreateFunc == nil {
		m.t.Fatal("unexpected Create call")
	}
	m.createCalls++
	return m.CreateFunc(ctx, name, telephone, category)
}

func (m *contactRepoMock) Update(ctx context.Context, id int64, name, telephone, category string) (*domain.Contact, error) {
	if m.UpdateFunc == nil {
		m.t.Fatal("unexpected Update call")
	}
	return m.UpdateFunc(ctx, id, name, telephone, category)
}

func (m *contactRepoMock) SoftDelete(ctx context.Context, id int64) (bool, error) {
	if m.SoftDeleteFunc == nil {
		m.t.Fatal("unexpected SoftDelete call")
	}
	return m.SoftDeleteFunc(ctx, id)
}

func (m *contactRepoMock) Count(ctx context.Context) (int, error) {
	if m.CountFunc == nil {
		m.t.Fatal("unexpected Count call")
	}
	return m.CountFunc(ctx)
}

type txManagerMock struct {
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func newTestService(t *testing.T, repo *contactRepoMock, tx *txManagerMock) *Service {
	t.Helper()
	repo.t = t
	return NewService(slog.New(slog.DiscardHandler), repo, tx)
}

func ptr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// CreateContact
// ---------------------------------------------------------------------------

func TestCreateContact_Success(t *testing.T) {
	repo := &contactRepoMock{
		CreateFunc: func(ctx context.Context, name, telephone, category string) (*domain.Contact, error) {
			return &domain.Contact{ID: 1, Name: name, Telephone: telephone, Category: category, Active: true}, nil
		},
	}
	svc := newTestService(t, repo, &txManagerMock{})

	got, err := svc.CreateContact(context.Background(), CreateContactInput{
		Name:      "Alice",
		Telephone: "+31 6 12345678",
		Category:  "practice",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "practice", got.Category)
}

func TestCreateContact_DefaultsCategory(t *testing.T) {
	repo := &contactRepoMock{
		CreateFunc: func(ctx context.Context, name, telephone, category string) (*domain.Contact, error) {
			assert.Equal(t, domain.CategoryOther, category)
			return &domain.Contact{ID: 1, Name: name, Telephone: telephone, Category: category, Active: true}, nil
		},
	}
	svc := newTestService(t, repo, &txManagerMock{})

	_, err := svc.CreateContact(context.Background(), CreateContactInput{Name: "A", Telephone: "1"})
	require.NoError(t, err)
}

func TestCreateContact_Invalid(t *testing.T) {
	svc := newTestService(t, &contactRepoMock{}, &txManagerMock{})

	_, err := svc.CreateContact(context.Background(), CreateContactInput{Name: "", Telephone: "abc"})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"name is required", "invalid telephone number"}, verr.Messages())
}

// ---------------------------------------------------------------------------
// UpdateContact
// ---------------------------------------------------------------------------

func TestUpdateContact_MergesOverCurrent(t *testing.T) {
	current := &domain.Contact{ID: 7, Name: "Old", Telephone: "100", Category: "supplier", Active: true}
	repo := &contactRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Contact, error) {
			assert.Equal(t, int64(7), id)
			return current, nil
		},
		UpdateFunc: func(ctx context.Context, id int64, name, telephone, category string) (*domain.Contact, error) {
			assert.Equal(t, "New", name)
			assert.Equal(t, "100", telephone)
			assert.Equal(t, "supplier", category)
			return &domain.Contact{ID: id, Name: name, Telephone: telephone, Category: category, Active: true}, nil
		},
	}
	tx := &txManagerMock{}
	svc := newTestService(t, repo, tx)

	got, err := svc.UpdateContact(context.Background(), 7, UpdateContactInput{Name: ptr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, 1, tx.calls, "read and write must share a transaction")
}

func TestUpdateContact_ValidatesMergedResult(t *testing.T) {
	repo := &contactRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Contact, error) {
			return &domain.Contact{ID: 7, Name: "Old", Telephone: "100", Category: "other", Active: true}, nil
		},
	}
	svc := newTestService(t, repo, &txManagerMock{})

	_, err := svc.UpdateContact(context.Background(), 7, UpdateContactInput{Telephone: ptr("not-a-number")})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateContact_NotFound(t *testing.T) {
	repo := &contactRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Contact, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(t, repo, &txManagerMock{})

	_, err := svc.UpdateContact(context.Background(), 99, UpdateContactInput{Name: ptr("X")})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// DeleteContact
// ---------------------------------------------------------------------------

func TestDeleteContact(t *testing.T) {
	repo := &contactRepoMock{
		SoftDeleteFunc: func(ctx context.Context, id int64) (bool, error) {
			return id == 1, nil
		},
	}
	svc := newTestService(t, repo, &txManagerMock{})

	require.NoError(t, svc.DeleteContact(context.Background(), 1))
	require.ErrorIs(t, svc.DeleteContact(context.Background(), 2), domain.ErrNotFound)
}

// ---------------------------------------------------------------------------
// Position-addressed operations
// ---------------------------------------------------------------------------

func sortedContacts() []domain.Contact {
	cs := []domain.Contact{
		{ID: 30, Name: "Alice", Telephone: "1", Category: "other", Active: true},
		{ID: 10, Name: "Bob", Telephone: "2", Category: "other", Active: true},
		{ID: 20, Name: "Carol", Telephone: "3", Category: "other", Active: true},
	}
	sort.Slice(cs, func(i, j int) bool { return cs[i].Name < cs[j].Name })
	return cs
}

func TestDeleteContactAt_ResolvesInsideTx(t *testing.T) {
	var deleted int64
	repo := &contactRepoMock{
		ListFunc: func(ctx context.Context, f domain.ContactFilter) ([]domain.Contact, error) {
			return sortedContacts(), nil
		},
		SoftDeleteFunc: func(ctx context.Context, id int64) (bool, error) {
			deleted = id
			return true, nil
		},
	}
	tx := &txManagerMock{}
	svc := newTestService(t, repo, tx)

	require.NoError(t, svc.DeleteContactAt(context.Background(), 1))
	assert.Equal(t, int64(10), deleted, "position 1 is Bob (id 10)")
	assert.Equal(t, 1, tx.calls)
}

func TestDeleteContactAt_OutOfRange(t *testing.T) {
	repo := &contactRepoMock{
		ListFunc: func(ctx context.Context, f domain.ContactFilter) ([]domain.Contact, error) {
			return sortedContacts(), nil
		},
	}
	svc := newTestService(t, repo, &txManagerMock{})

	require.ErrorIs(t, svc.DeleteContactAt(context.Background(), 3), domain.ErrNotFound)
	require.ErrorIs(t, svc.DeleteContactAt(context.Background(), -1), domain.ErrNotFound)
}

func TestUpdateContactAt(t *testing.T) {
	repo := &contactRepoMock{
		ListFunc: func(ctx context.Context, f domain.ContactFilter) ([]domain.Contact, error) {
			return sortedContacts(), nil
		},
		UpdateFunc: func(ctx context.Context, id int64, name, telephone, category string) (*domain.Contact, error) {
			assert.Equal(t, int64(20), id, "position 2 is Carol (id 20)")
			return &domain.Contact{ID: id, Name: name, Telephone: telephone, Category: category, Active: true}, nil
		},
	}
	svc := newTestService(t, repo, &txManagerMock{})

	got, err := svc.UpdateContactAt(context.Background(), 2, UpdateContactInput{Telephone: ptr("999")})
	require.NoError(t, err)
	assert.Equal(t, "999", got.Telephone)
	assert.Equal(t, "Carol", got.Name, "unset fields keep stored values")
}

// ---------------------------------------------------------------------------
// Import
// ---------------------------------------------------------------------------

func TestImportCSV_SkipsInvalidRows(t *testing.T) {
	repo := &contactRepoMock{
		CreateFunc: func(ctx context.Context, name, telephone, category string) (*domain.Contact, error) {
			return &domain.Contact{ID: 1, Name: name, Telephone: telephone, Category: category, Active: true}, nil
		},
	}
	tx := &txManagerMock{}
	svc := newTestService(t, repo, tx)

	in := "name,telephone\n" +
		"Alice,+31611111111\n" +
		",12345\n" + // missing name
		"Bob,not-a-number\n" +
		"Carol,0502222222\n"

	n, err := svc.ImportCSV(context.Background(), strings.NewReader(in), "practice")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, repo.createCalls)
	assert.Equal(t, 1, tx.calls)
}

func TestImportCSV_AllInvalidIsNoOp(t *testing.T) {
	tx := &txManagerMock{}
	svc := newTestService(t, &contactRepoMock{}, tx)

	in := "name,telephone\n,abc\n,def\n"
	n, err := svc.ImportCSV(context.Background(), strings.NewReader(in), "")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, tx.calls, "no transaction when nothing imports")
}

func TestImportCSV_MalformedImportsNothing(t *testing.T) {
	tx := &txManagerMock{}
	svc := newTestService(t, &contactRepoMock{}, tx)

	n, err := svc.ImportCSV(context.Background(), strings.NewReader("foo,bar\nx,y\n"), "")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, tx.calls)

	n, err = svc.ImportXML(context.Background(), strings.NewReader("not xml"), "")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestImportXML(t *testing.T) {
	var categories []string
	repo := &contactRepoMock{
		CreateFunc: func(ctx context.Context, name, telephone, category string) (*domain.Contact, error) {
			categories = append(categories, category)
			return &domain.Contact{ID: 1, Name: name, Telephone: telephone, Category: category, Active: true}, nil
		},
	}
	svc := newTestService(t, repo, &txManagerMock{})

	doc := `<YealinkIPPhoneDirectory>
  <DirectoryEntry><Name>Alice</Name><Telephone>1</Telephone></DirectoryEntry>
  <DirectoryEntry><Name>Bob</Name><Telephone>2</Telephone></DirectoryEntry>
</YealinkIPPhoneDirectory>`

	n, err := svc.ImportXML(context.Background(), strings.NewReader(doc), "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"other", "other"}, categories, "empty category defaults to other")
}

func TestImport_RolledBackOnRepoError(t *testing.T) {
	boom := errors.New("disk full")
	repo := &contactRepoMock{
		CreateFunc: func(ctx context.Context, name, telephone, category string) (*domain.Contact, error) {
			return nil, boom
		},
	}
	svc := newTestService(t, repo, &txManagerMock{})

	_, err := svc.ImportCSV(context.Background(), strings.NewReader("name,telephone\nA,1\n"), "")
	require.ErrorIs(t, err, boom)
}

// ---------------------------------------------------------------------------
// Seed
// ---------------------------------------------------------------------------

func TestSeedFromFile_SkipsWhenTableEverHeldRows(t *testing.T) {
	repo := &contactRepoMock{
		CountFunc: func(ctx context.Context) (int, error) { return 3, nil },
	}
	svc := newTestService(t, repo, &txManagerMock{})

	n, err := svc.SeedFromFile(context.Background(), "does-not-matter.xml")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedFromFile_MissingFileIsNoOp(t *testing.T) {
	repo := &contactRepoMock{
		CountFunc: func(ctx context.Context) (int, error) { return 0, nil },
	}
	svc := newTestService(t, repo, &txManagerMock{})

	n, err := svc.SeedFromFile(context.Background(), "/nonexistent/phonebook.xml")
	require.NoError(t, err)
	assert.Zero(t, n)
}
