package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mverbeek/phonebook-backend/internal/domain"
)

type directoryService interface {
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

// DirectoryHandler serves the extended directory endpoints.
type DirectoryHandler struct {
	svc directoryService
	log *slog.Logger
}

// NewDirectoryHandler creates a DirectoryHandler.
func NewDirectoryHandler(log *slog.Logger, svc directoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc, log: log}
}

type addressJSON struct {
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
}

type phoneJSON struct {
	ID     int64  `json:"id,omitempty"`
	Number string `json:"number"`
	Type   string `json:"type,omitempty"`
}

type linkJSON struct {
	PersonID  int64  `json:"person_id"`
	Role      string `json:"role,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

type partyJSON struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email,omitempty"`
	Address  *addressJSON `json:"address,omitempty"`
	Phones   []phoneJSON  `json:"phones,omitempty"`
	Contacts []linkJSON   `json:"contacts,omitempty"`
}

func toPartyJSON(p *domain.Practice) partyJSON {
	out := partyJSON{ID: p.ID, Name: p.Name, Email: p.Email}
	if p.Address != nil {
		out.Address = &addressJSON{
			Street:     p.Address.Street,
			Number:     p.Address.Number,
			PostalCode: p.Address.PostalCode,
			City:       p.Address.City,
			Country:    p.Address.Country,
		}
	}
	for _, ph := range p.Phones {
		out.Phones = append(out.Phones, phoneJSON{ID: ph.ID, Number: ph.Number, Type: ph.Type})
	}
	for _, l := range p.Contacts {
		out.Contacts = append(out.Contacts, linkJSON{PersonID: l.PersonID, Role: l.Role, IsPrimary: l.IsPrimary})
	}
	return out
}

func fromPartyJSON(in partyJSON) *domain.Practice {
	p := &domain.Practice{Name: in.Name, Email: in.Email}
	if in.Address != nil {
		p.Address = &domain.Address{
			Street:     in.Address.Street,
			Number:     in.Address.Number,
			PostalCode: in.Address.PostalCode,
			City:       in.Address.City,
			Country:    in.Address.Country,
		}
	}
	for _, ph := range in.Phones {
		p.Phones = append(p.Phones, domain.PhoneNumber{Number: ph.Number, Type: ph.Type})
	}
	return p
}

// ListPractices handles GET /api/practices.
func (h *DirectoryHandler) ListPractices(w http.ResponseWriter, r *http.Request) {
	practices, err := h.svc.ListPractices(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]partyJSON, 0, len(practices))
	for i := range practices {
		out = append(out, toPartyJSON(&practices[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetPractice handles GET /api/practices/{id}.
func (h *DirectoryHandler) GetPractice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.svc.GetPractice(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPartyJSON(p))
}

// CreatePractice handles POST /api/practices.
func (h *DirectoryHandler) CreatePractice(w http.ResponseWriter, r *http.Request) {
	var body partyJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	created, err := h.svc.CreatePractice(r.Context(), fromPartyJSON(body))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPartyJSON(created))
}

// DeletePractice handles DELETE /api/practices/{id}.
func (h *DirectoryHandler) DeletePractice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeletePractice(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LinkPracticeContact handles POST /api/practices/{id}/contacts.
func (h *DirectoryHandler) LinkPracticeContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body linkJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	err := h.svc.LinkPracticeContact(r.Context(), id, domain.ContactLink{
		PersonID:  body.PersonID,
		Role:      body.Role,
		IsPrimary: body.IsPrimary,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSuppliers handles GET /api/suppliers.
func (h *DirectoryHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.svc.ListSuppliers(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	out := make([]partyJSON, 0, len(suppliers))
	for i := range suppliers {
		p := domain.Practice(suppliers[i])
		out = append(out, toPartyJSON(&p))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetSupplier handles GET /api/suppliers/{id}.
func (h *DirectoryHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s, err := h.svc.GetSupplier(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	p := domain.Practice(*s)
	writeJSON(w, http.StatusOK, toPartyJSON(&p))
}

// CreateSupplier handles POST /api/suppliers.
func (h *DirectoryHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var body partyJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	in := domain.Supplier(*fromPartyJSON(body))
	created, err := h.svc.CreateSupplier(r.Context(), &in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	p := domain.Practice(*created)
	writeJSON(w, http.StatusCreated, toPartyJSON(&p))
}

// DeleteSupplier handles DELETE /api/suppliers/{id}.
func (h *DirectoryHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteSupplier(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LinkSupplierContact handles POST /api/suppliers/{id}/contacts.
func (h *DirectoryHandler) LinkSupplierContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body linkJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	err := h.svc.LinkSupplierContact(r.Context(), id, domain.ContactLink{
		PersonID:  body.PersonID,
		Role:      body.Role,
		IsPrimary: body.IsPrimary,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type personJSON struct {
	ID        int64       `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email,omitempty"`
	Function  string      `json:"function,omitempty"`
	Phones    []phoneJSON `json:"phones,omitempty"`
}

// CreateContactPerson handles POST /api/contact-persons.
func (h *DirectoryHandler) CreateContactPerson(w http.ResponseWriter, r *http.Request) {
	var body personJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	in := &domain.ContactPerson{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Function:  body.Function,
	}
	for _, ph := range body.Phones {
		in.Phones = append(in.Phones, domain.PhoneNumber{Number: ph.Number, Type: ph.Type})
	}

	created, err := h.svc.CreateContactPerson(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := personJSON{
		ID:        created.ID,
		FirstName: created.FirstName,
		LastName:  created.LastName,
		Email:     created.Email,
		Function:  created.Function,
	}
	for _, ph := range created.Phones {
		out.Phones = append(out.Phones, phoneJSON{ID: ph.ID, Number: ph.Number, Type: ph.Type})
	}
	writeJSON(w, http.StatusCreated, out)
}

// GetContactPerson handles GET /api/contact-persons/{id}.
func (h *DirectoryHandler) GetContactPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	cp, err := h.svc.GetContactPerson(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := personJSON{
		ID:        cp.ID,
		FirstName: cp.FirstName,
		LastName:  cp.LastName,
		Email:     cp.Email,
		Function:  cp.Function,
	}
	for _, ph := range cp.Phones {
		out.Phones = append(out.Phones, phoneJSON{ID: ph.ID, Number: ph.Number, Type: ph.Type})
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteContactPerson handles DELETE /api/contact-persons/{id}.
func (h *DirectoryHandler) DeleteContactPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteContactPerson(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
