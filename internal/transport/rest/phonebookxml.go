package rest

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"net/http"
	"time"

	"github.com/mverbeek/phonebook-backend/internal/domain"
	"github.com/mverbeek/phonebook-backend/internal/transcode"
)

type feedService interface {
	ListContacts(ctx context.Context, filter domain.ContactFilter) ([]domain.Contact, error)
}

type modTimer interface {
	ModTime() (time.Time, error)
}

// FeedHandler serves the XML directory feeds the desk phones poll.
// Every response carries an ETag (MD5 of the body) and a Last-Modified
// derived from the database file, so a fleet of phones refreshing on
// schedule costs a 304 most of the time.
type FeedHandler struct {
	svc feedService
	mod modTimer
	log *slog.Logger
}

// NewFeedHandler creates a FeedHandler.
func NewFeedHandler(log *slog.Logger, svc feedService, mod modTimer) *FeedHandler {
	return &FeedHandler{svc: svc, mod: mod, log: log}
}

// Menu handles GET /phonebook/root.xml: the top-level menu linking the
// per-category feeds.
func (h *FeedHandler) Menu(w http.ResponseWriter, r *http.Request) {
	body, err := transcode.MarshalMenu([]transcode.MenuItem{
		{Name: "All", URL: "/phonebook/all.xml"},
		{Name: "Practices", URL: "/phonebook/practices.xml"},
		{Name: "Suppliers", URL: "/phonebook/suppliers.xml"},
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.respondConditional(w, r, body)
}

// All handles GET /phonebook/all.xml.
func (h *FeedHandler) All(w http.ResponseWriter, r *http.Request) {
	h.directory(w, r, "")
}

// Practices handles GET /phonebook/practices.xml.
func (h *FeedHandler) Practices(w http.ResponseWriter, r *http.Request) {
	h.directory(w, r, domain.CategoryPractice)
}

// Suppliers handles GET /phonebook/suppliers.xml.
func (h *FeedHandler) Suppliers(w http.ResponseWriter, r *http.Request) {
	h.directory(w, r, domain.CategorySupplier)
}

func (h *FeedHandler) directory(w http.ResponseWriter, r *http.Request, category string) {
	contacts, err := h.svc.ListContacts(r.Context(), domain.ContactFilter{Category: category})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	entries := make([]domain.Entry, 0, len(contacts))
	for _, c := range contacts {
		entries = append(entries, domain.Entry{Name: c.Name, Telephone: c.Telephone})
	}

	body, err := transcode.MarshalDirectory(entries)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.respondConditional(w, r, body)
}

// respondConditional writes the feed with its cache validators, short-
// circuiting to 304 when the client's validators still hold. The ETag
// is the raw MD5 hex of the body and is compared verbatim, which is
// what the phone firmware sends back.
func (h *FeedHandler) respondConditional(w http.ResponseWriter, r *http.Request, body []byte) {
	sum := md5.Sum(body)
	etag := hex.EncodeToString(sum[:])

	lastMod, err := h.mod.ModTime()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	lastMod = lastMod.UTC().Truncate(time.Second)

	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", lastMod.Format(http.TimeFormat))
	w.Header().Set("Content-Type", "application/xml")

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if ims := r.Header.Get("If-Modified-Since"); ims != "" {
		// A malformed date is ignored, not rejected.
		if t, err := http.ParseTime(ims); err == nil && !lastMod.After(t) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck
}
