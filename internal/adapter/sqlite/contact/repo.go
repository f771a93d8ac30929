// Package contact implements the Contact repository using SQLite.
// The active-set invariant lives here: every read path filters on
// active = 1 and orders by name, so callers cannot drift apart.
package contact

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/mverbeek/phonebook-backend/internal/adapter/sqlite"
	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// Repo provides contact persistence backed by SQLite.
type Repo struct {
	db *sqlite.DB
}

// New creates a new contact repository.
func New(db *sqlite.DB) *Repo {
	return &Repo{db: db}
}

const (
	createSQL = `
INSERT INTO contacts (name, telephone, category, active)
VALUES (?, ?, ?, 1)`

	getByIDSQL = `
SELECT id, name, telephone, category, active
FROM contacts
WHERE id = ? AND active = 1`

	updateSQL = `
UPDATE contacts SET name = ?, telephone = ?, category = ?
WHERE id = ? AND active = 1`

	softDeleteSQL = `
UPDATE contacts SET active = 0
WHERE id = ? AND active = 1`

	countSQL = `SELECT count(*) FROM contacts`

	countActiveSQL = `SELECT count(*) FROM contacts WHERE active = 1`
)

// List returns active contacts matching the filter, ordered by name.
// Query matches case-insensitively against name or telephone; Category
// is an exact match. Both compose with AND.
func (r *Repo) List(ctx context.Context, f domain.ContactFilter) ([]domain.Contact, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	b := sq.Select("id", "name", "telephone", "category", "active").
		From("contacts").
		Where(sq.Eq{"active": 1}).
		OrderBy("name ASC")

	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		b = b.Where(sq.Or{
			sq.Expr("lower(name) LIKE ?", pattern),
			sq.Expr("lower(telephone) LIKE ?", pattern),
		})
	}
	if f.Category != "" {
		b = b.Where(sq.Eq{"category": f.Category})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sqlite.MapError(err, "contact", 0)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Telephone, &c.Category, &c.Active); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}

	return contacts, nil
}

// GetByID returns an active contact by primary key.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Contact, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var c domain.Contact
	err := q.QueryRowContext(ctx, getByIDSQL, id).
		Scan(&c.ID, &c.Name, &c.Telephone, &c.Category, &c.Active)
	if err != nil {
		return nil, sqlite.MapError(err, "contact", id)
	}

	return &c, nil
}

// Create inserts a new active contact and returns it with the assigned id.
// Validation is the caller's responsibility so trusted importers can reuse
// this path.
func (r *Repo) Create(ctx context.Context, name, telephone, category string) (*domain.Contact, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, createSQL, name, telephone, category)
	if err != nil {
		return nil, sqlite.MapError(err, "contact", 0)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("contact insert id: %w", err)
	}

	return &domain.Contact{
		ID:        id,
		Name:      name,
		Telephone: telephone,
		Category:  category,
		Active:    true,
	}, nil
}

// Update replaces the fields of an active contact in place.
// Returns domain.ErrNotFound if the id is absent or inactive.
func (r *Repo) Update(ctx context.Context, id int64, name, telephone, category string) (*domain.Contact, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, updateSQL, name, telephone, category, id)
	if err != nil {
		return nil, sqlite.MapError(err, "contact", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("contact %d rows affected: %w", id, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("contact %d: %w", id, domain.ErrNotFound)
	}

	return &domain.Contact{
		ID:        id,
		Name:      name,
		Telephone: telephone,
		Category:  category,
		Active:    true,
	}, nil
}

// SoftDelete marks a contact inactive. Returns false (not an error) when
// the id is absent or already inactive, so retries are safe.
func (r *Repo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, softDeleteSQL, id)
	if err != nil {
		return false, sqlite.MapError(err, "contact", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("contact %d rows affected: %w", id, err)
	}

	return n > 0, nil
}

// Count returns the number of contacts, active AND inactive. The seed
// importer uses it: seeding happens only when the table has never held
// a row.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var n int
	if err := q.QueryRowContext(ctx, countSQL).Scan(&n); err != nil {
		return 0, sqlite.MapError(err, "contact", 0)
	}
	return n, nil
}

// CountActive returns the number of active contacts.
func (r *Repo) CountActive(ctx context.Context) (int, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var n int
	if err := q.QueryRowContext(ctx, countActiveSQL).Scan(&n); err != nil {
		return 0, sqlite.MapError(err, "contact", 0)
	}
	return n, nil
}
