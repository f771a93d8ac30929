package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/mverbeek/phonebook-backend/internal/domain"
	"github.com/mverbeek/phonebook-backend/internal/transcode"
)

// maxImportSize caps uploaded import files at 10 MiB.
const maxImportSize = 10 << 20

type importService interface {
	ImportCSV(ctx context.Context, r io.Reader, category string) (int, error)
	ImportXML(ctx context.Context, r io.Reader, category string) (int, error)
}

type exportService interface {
	ListContacts(ctx context.Context, filter domain.ContactFilter) ([]domain.Contact, error)
}

// ImportExportHandler serves the bulk import and file export endpoints.
type ImportExportHandler struct {
	importer importService
	exporter exportService
	log      *slog.Logger
}

// NewImportExportHandler creates an ImportExportHandler.
func NewImportExportHandler(log *slog.Logger, importer importService, exporter exportService) *ImportExportHandler {
	return &ImportExportHandler{
		importer: importer,
		exporter: exporter,
		log:      log,
	}
}

// Import handles POST /import: a multipart "file" part dispatched on
// its extension, with an optional "category" field.
func (h *ImportExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	category := r.FormValue("category")

	var imported int
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		imported, err = h.importer.ImportCSV(r.Context(), file, category)
	case ".xml":
		imported, err = h.importer.ImportXML(r.Context(), file, category)
	default:
		writeError(w, http.StatusBadRequest, "unsupported file type")
		return
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}

// ExportCSV handles GET /export/contacts.csv.
func (h *ImportExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.exporter.ListContacts(r.Context(), domain.ContactFilter{})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=contacts.csv")
	if err := transcode.WriteCSV(w, contacts); err != nil {
		h.log.ErrorContext(r.Context(), "csv export write failed", slog.Any("error", err))
	}
}

// ExportVCard handles GET /export/contacts.vcf.
func (h *ImportExportHandler) ExportVCard(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.exporter.ListContacts(r.Context(), domain.ContactFilter{})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/vcard")
	w.Header().Set("Content-Disposition", "attachment; filename=contacts.vcf")
	if err := transcode.WriteVCard(w, contacts); err != nil {
		h.log.ErrorContext(r.Context(), "vcard export write failed", slog.Any("error", err))
	}
}
