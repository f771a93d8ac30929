package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mverbeek/phonebook-backend/internal/domain"
	"github.com/mverbeek/phonebook-backend/internal/service/phonebook"
)

type phonebookService interface {
	ListContacts(ctx context.Context, filter domain.ContactFilter) ([]domain.Contact, error)
	GetContact(ctx context.Context, id int64) (*domain.Contact, error)
	CreateContact(ctx context.Context, input phonebook.CreateContactInput) (*domain.Contact, error)
	UpdateContact(ctx context.Context, id int64, input phonebook.UpdateContactInput) (*domain.Contact, error)
	DeleteContact(ctx context.Context, id int64) error
}

// ContactHandler serves the JSON contact CRUD endpoints.
type ContactHandler struct {
	svc phonebookService
	log *slog.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(log *slog.Logger, svc phonebookService) *ContactHandler {
	return &ContactHandler{svc: svc, log: log}
}

// contactJSON is the wire form of a contact. Active is not exposed:
// inactive contacts never leave the store.
type contactJSON struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Telephone string `json:"telephone"`
	Category  string `json:"category"`
}

func toContactJSON(c *domain.Contact) contactJSON {
	return contactJSON{ID: c.ID, Name: c.Name, Telephone: c.Telephone, Category: c.Category}
}

// List handles GET /api/contacts?q=&category=.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ContactFilter{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("category"),
	}

	contacts, err := h.svc.ListContacts(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]contactJSON, 0, len(contacts))
	for i := range contacts {
		out = append(out, toContactJSON(&contacts[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/contacts/{id}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	contact, err := h.svc.GetContact(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toContactJSON(contact))
}

// Create handles POST /api/contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string `json:"name"`
		Telephone string `json:"telephone"`
		Category  string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	contact, err := h.svc.CreateContact(r.Context(), phonebook.CreateContactInput{
		Name:      body.Name,
		Telephone: body.Telephone,
		Category:  body.Category,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toContactJSON(contact))
}

// Update handles PUT /api/contacts/{id}. Omitted fields keep their
// stored values.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var body struct {
		Name      *string `json:"name"`
		Telephone *string `json:"telephone"`
		Category  *string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	contact, err := h.svc.UpdateContact(r.Context(), id, phonebook.UpdateContactInput{
		Name:      body.Name,
		Telephone: body.Telephone,
		Category:  body.Category,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toContactJSON(contact))
}

// Delete handles DELETE /api/contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteContact(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LegacyDelete handles the form-post route /delete/{id}: soft delete
// then redirect back to the listing page. The DELETE method on the
// same path answers JSON like the API route.
func (h *ContactHandler) LegacyDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.svc.DeleteContact(r.Context(), id)

	if r.Method == http.MethodPost {
		// The form flow redirects regardless of outcome, like the
		// page it came from.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathID parses the {id} path segment. Writes a 404 and returns false
// when it is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}
