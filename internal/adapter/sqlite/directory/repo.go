// Package directory implements persistence for the extended directory
// entities: practices, suppliers, contact persons, addresses, and their
// owned phone numbers and association rows. Unlike contacts these are
// hard-deleted; owned rows go with the parent via ON DELETE CASCADE.
package directory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mverbeek/phonebook-backend/internal/adapter/sqlite"
	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// Repo provides directory persistence backed by SQLite.
type Repo struct {
	db *sqlite.DB
}

// New creates a new directory repository.
func New(db *sqlite.DB) *Repo {
	return &Repo{db: db}
}

const (
	insertAddressSQL = `
INSERT INTO addresses (street, number, postal_code, city, country)
VALUES (?, ?, ?, ?, ?)`

	insertPersonSQL = `
INSERT INTO contact_persons (first_name, last_name, email, function)
VALUES (?, ?, ?, ?)`

	getPersonSQL = `
SELECT id, first_name, last_name, email, function
FROM contact_persons
WHERE id = ?`
)

// nullable maps the empty string to NULL so optional text columns stay
// NULL instead of accumulating empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ---------------------------------------------------------------------------
// Practices
// ---------------------------------------------------------------------------

// CreatePractice inserts a practice with its optional address and owned
// phone numbers, returning the stored entity with assigned ids.
func (r *Repo) CreatePractice(ctx context.Context, p *domain.Practice) (*domain.Practice, error) {
	return r.createParty(ctx, "practices", "practice_id", p)
}

// GetPractice returns a practice with address, phones, and contact links.
func (r *Repo) GetPractice(ctx context.Context, id int64) (*domain.Practice, error) {
	return r.getParty(ctx, "practices", "practice_id", "practice_contacts", id)
}

// ListPractices returns all practices ordered by name.
func (r *Repo) ListPractices(ctx context.Context) ([]domain.Practice, error) {
	return r.listParties(ctx, "practices", "practice_id", "practice_contacts")
}

// DeletePractice removes a practice; its phone numbers and association
// rows are removed by cascade. Returns domain.ErrNotFound for absent ids.
func (r *Repo) DeletePractice(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, "practices", "practice", id)
}

// LinkPracticeContact associates a contact person with a practice.
func (r *Repo) LinkPracticeContact(ctx context.Context, practiceID int64, link domain.ContactLink) error {
	return r.linkContact(ctx, "practice_contacts", "practice_id", practiceID, link)
}

// ---------------------------------------------------------------------------
// Suppliers
// ---------------------------------------------------------------------------

// CreateSupplier mirrors CreatePractice for the supplier side.
func (r *Repo) CreateSupplier(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error) {
	p := domain.Practice(*s)
	created, err := r.createParty(ctx, "suppliers", "supplier_id", &p)
	if err != nil {
		return nil, err
	}
	out := domain.Supplier(*created)
	return &out, nil
}

// GetSupplier returns a supplier with address, phones, and contact links.
func (r *Repo) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	p, err := r.getParty(ctx, "suppliers", "supplier_id", "supplier_contacts", id)
	if err != nil {
		return nil, err
	}
	out := domain.Supplier(*p)
	return &out, nil
}

// ListSuppliers returns all suppliers ordered by name.
func (r *Repo) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	ps, err := r.listParties(ctx, "suppliers", "supplier_id", "supplier_contacts")
	if err != nil {
		return nil, err
	}
	out := make([]domain.Supplier, len(ps))
	for i, p := range ps {
		out[i] = domain.Supplier(p)
	}
	return out, nil
}

// DeleteSupplier removes a supplier and its owned rows.
func (r *Repo) DeleteSupplier(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, "suppliers", "supplier", id)
}

// LinkSupplierContact associates a contact person with a supplier.
func (r *Repo) LinkSupplierContact(ctx context.Context, supplierID int64, link domain.ContactLink) error {
	return r.linkContact(ctx, "supplier_contacts", "supplier_id", supplierID, link)
}

// ---------------------------------------------------------------------------
// Contact persons
// ---------------------------------------------------------------------------

// CreateContactPerson inserts a person with owned phone numbers.
func (r *Repo) CreateContactPerson(ctx context.Context, cp *domain.ContactPerson) (*domain.ContactPerson, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, insertPersonSQL,
		cp.FirstName, cp.LastName, nullable(cp.Email), nullable(cp.Function))
	if err != nil {
		return nil, sqlite.MapError(err, "contact_person", 0)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("contact_person insert id: %w", err)
	}

	out := *cp
	out.ID = id
	out.Phones = nil
	for _, ph := range cp.Phones {
		stored, err := r.insertPhone(ctx, "contact_person_id", id, ph)
		if err != nil {
			return nil, err
		}
		out.Phones = append(out.Phones, *stored)
	}

	return &out, nil
}

// GetContactPerson returns a person with owned phone numbers.
func (r *Repo) GetContactPerson(ctx context.Context, id int64) (*domain.ContactPerson, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var (
		cp              domain.ContactPerson
		email, function sql.NullString
	)
	err := q.QueryRowContext(ctx, getPersonSQL, id).
		Scan(&cp.ID, &cp.FirstName, &cp.LastName, &email, &function)
	if err != nil {
		return nil, sqlite.MapError(err, "contact_person", id)
	}
	cp.Email = email.String
	cp.Function = function.String

	cp.Phones, err = r.loadPhones(ctx, "contact_person_id", id)
	if err != nil {
		return nil, err
	}

	return &cp, nil
}

// DeleteContactPerson removes a person, cascading to phone numbers and
// association rows on both the practice and supplier sides.
func (r *Repo) DeleteContactPerson(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, "contact_persons", "contact_person", id)
}

// ---------------------------------------------------------------------------
// Shared plumbing (practices and suppliers mirror each other exactly)
// ---------------------------------------------------------------------------

func (r *Repo) createParty(ctx context.Context, table, ownerCol string, p *domain.Practice) (*domain.Practice, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	out := *p
	out.Phones = nil

	var addressID any
	if p.Address != nil {
		res, err := q.ExecContext(ctx, insertAddressSQL,
			nullable(p.Address.Street), nullable(p.Address.Number),
			nullable(p.Address.PostalCode), nullable(p.Address.City),
			nullable(p.Address.Country))
		if err != nil {
			return nil, sqlite.MapError(err, "address", 0)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("address insert id: %w", err)
		}
		addr := *p.Address
		addr.ID = id
		out.Address = &addr
		addressID = id
	}

	insertSQL := fmt.Sprintf("INSERT INTO %s (name, email, address_id) VALUES (?, ?, ?)", table)
	res, err := q.ExecContext(ctx, insertSQL, p.Name, nullable(p.Email), addressID)
	if err != nil {
		return nil, sqlite.MapError(err, table, 0)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%s insert id: %w", table, err)
	}
	out.ID = id

	for _, ph := range p.Phones {
		stored, err := r.insertPhone(ctx, ownerCol, id, ph)
		if err != nil {
			return nil, err
		}
		out.Phones = append(out.Phones, *stored)
	}

	return &out, nil
}

func (r *Repo) getParty(ctx context.Context, table, ownerCol, linkTable string, id int64) (*domain.Practice, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := fmt.Sprintf(`
SELECT p.id, p.name, p.email,
       a.id, a.street, a.number, a.postal_code, a.city, a.country
FROM %s p
LEFT JOIN addresses a ON p.address_id = a.id
WHERE p.id = ?`, table)

	p, err := scanParty(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, sqlite.MapError(err, table, id)
	}

	if err := r.fillParty(ctx, ownerCol, linkTable, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repo) listParties(ctx context.Context, table, ownerCol, linkTable string) ([]domain.Practice, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := fmt.Sprintf(`
SELECT p.id, p.name, p.email,
       a.id, a.street, a.number, a.postal_code, a.city, a.country
FROM %s p
LEFT JOIN addresses a ON p.address_id = a.id
ORDER BY p.name ASC`, table)

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, sqlite.MapError(err, table, 0)
	}
	defer rows.Close()

	var parties []domain.Practice
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		parties = append(parties, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	for i := range parties {
		if err := r.fillParty(ctx, ownerCol, linkTable, &parties[i]); err != nil {
			return nil, err
		}
	}

	return parties, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParty(row rowScanner) (*domain.Practice, error) {
	var (
		p                                     domain.Practice
		email                                 sql.NullString
		addrID                                sql.NullInt64
		street, number, postal, city, country sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &email,
		&addrID, &street, &number, &postal, &city, &country)
	if err != nil {
		return nil, err
	}
	p.Email = email.String
	if addrID.Valid {
		p.Address = &domain.Address{
			ID:         addrID.Int64,
			Street:     street.String,
			Number:     number.String,
			PostalCode: postal.String,
			City:       city.String,
			Country:    country.String,
		}
	}
	return &p, nil
}

// fillParty loads the owned phone numbers and contact links.
func (r *Repo) fillParty(ctx context.Context, ownerCol, linkTable string, p *domain.Practice) error {
	phones, err := r.loadPhones(ctx, ownerCol, p.ID)
	if err != nil {
		return err
	}
	p.Phones = phones

	links, err := r.loadLinks(ctx, linkTable, ownerCol, p.ID)
	if err != nil {
		return err
	}
	p.Contacts = links
	return nil
}

func (r *Repo) insertPhone(ctx context.Context, ownerCol string, ownerID int64, ph domain.PhoneNumber) (*domain.PhoneNumber, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := fmt.Sprintf("INSERT INTO phone_numbers (number, type, %s) VALUES (?, ?, ?)", ownerCol)
	res, err := q.ExecContext(ctx, query, ph.Number, nullable(ph.Type), ownerID)
	if err != nil {
		return nil, sqlite.MapError(err, "phone_number", 0)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("phone_number insert id: %w", err)
	}

	stored := ph
	stored.ID = id
	return &stored, nil
}

func (r *Repo) loadPhones(ctx context.Context, ownerCol string, ownerID int64) ([]domain.PhoneNumber, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := fmt.Sprintf("SELECT id, number, type FROM phone_numbers WHERE %s = ? ORDER BY id", ownerCol)
	rows, err := q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, sqlite.MapError(err, "phone_number", ownerID)
	}
	defer rows.Close()

	var phones []domain.PhoneNumber
	for rows.Next() {
		var (
			ph  domain.PhoneNumber
			typ sql.NullString
		)
		if err := rows.Scan(&ph.ID, &ph.Number, &typ); err != nil {
			return nil, fmt.Errorf("scan phone_number: %w", err)
		}
		ph.Type = typ.String
		phones = append(phones, ph)
	}
	return phones, rows.Err()
}

func (r *Repo) loadLinks(ctx context.Context, linkTable, ownerCol string, ownerID int64) ([]domain.ContactLink, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := fmt.Sprintf("SELECT contact_id, role, is_primary FROM %s WHERE %s = ? ORDER BY contact_id", linkTable, ownerCol)
	rows, err := q.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, sqlite.MapError(err, linkTable, ownerID)
	}
	defer rows.Close()

	var links []domain.ContactLink
	for rows.Next() {
		var (
			link domain.ContactLink
			role sql.NullString
		)
		if err := rows.Scan(&link.PersonID, &role, &link.IsPrimary); err != nil {
			return nil, fmt.Errorf("scan %s: %w", linkTable, err)
		}
		link.Role = role.String
		links = append(links, link)
	}
	return links, rows.Err()
}

func (r *Repo) linkContact(ctx context.Context, linkTable, ownerCol string, ownerID int64, link domain.ContactLink) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := fmt.Sprintf("INSERT INTO %s (%s, contact_id, role, is_primary) VALUES (?, ?, ?, ?)", linkTable, ownerCol)
	_, err := q.ExecContext(ctx, query, ownerID, link.PersonID, nullable(link.Role), link.IsPrimary)
	if err != nil {
		return sqlite.MapError(err, linkTable, ownerID)
	}
	return nil
}

func (r *Repo) deleteRow(ctx context.Context, table, entity string, id int64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", table), id)
	if err != nil {
		return sqlite.MapError(err, entity, id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d rows affected: %w", entity, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
