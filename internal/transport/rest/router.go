package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Contacts     *ContactHandler
	ImportExport *ImportExportHandler
	Feeds        *FeedHandler
	Directory    *DirectoryHandler
	Health       *HealthHandler
}

// NewRouter wires all routes onto a ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	// Contact CRUD.
	mux.HandleFunc("GET /api/contacts", h.Contacts.List)
	mux.HandleFunc("GET /api/contacts/{id}", h.Contacts.Get)
	mux.HandleFunc("POST /api/contacts", h.Contacts.Create)
	mux.HandleFunc("PUT /api/contacts/{id}", h.Contacts.Update)
	mux.HandleFunc("DELETE /api/contacts/{id}", h.Contacts.Delete)

	// Legacy form-post delete route.
	mux.HandleFunc("POST /delete/{id}", h.Contacts.LegacyDelete)
	mux.HandleFunc("DELETE /delete/{id}", h.Contacts.LegacyDelete)

	// Bulk import and exports.
	mux.HandleFunc("POST /import", h.ImportExport.Import)
	mux.HandleFunc("GET /export/contacts.csv", h.ImportExport.ExportCSV)
	mux.HandleFunc("GET /export/contacts.vcf", h.ImportExport.ExportVCard)

	// Device XML feeds.
	mux.HandleFunc("GET /phonebook/root.xml", h.Feeds.Menu)
	mux.HandleFunc("GET /phonebook/all.xml", h.Feeds.All)
	mux.HandleFunc("GET /phonebook/practices.xml", h.Feeds.Practices)
	mux.HandleFunc("GET /phonebook/suppliers.xml", h.Feeds.Suppliers)

	// Extended directory.
	mux.HandleFunc("GET /api/practices", h.Directory.ListPractices)
	mux.HandleFunc("GET /api/practices/{id}", h.Directory.GetPractice)
	mux.HandleFunc("POST /api/practices", h.Directory.CreatePractice)
	mux.HandleFunc("DELETE /api/practices/{id}", h.Directory.DeletePractice)
	mux.HandleFunc("POST /api/practices/{id}/contacts", h.Directory.LinkPracticeContact)

	mux.HandleFunc("GET /api/suppliers", h.Directory.ListSuppliers)
	mux.HandleFunc("GET /api/suppliers/{id}", h.Directory.GetSupplier)
	mux.HandleFunc("POST /api/suppliers", h.Directory.CreateSupplier)
	mux.HandleFunc("DELETE /api/suppliers/{id}", h.Directory.DeleteSupplier)
	mux.HandleFunc("POST /api/suppliers/{id}/contacts", h.Directory.LinkSupplierContact)

	mux.HandleFunc("POST /api/contact-persons", h.Directory.CreateContactPerson)
	mux.HandleFunc("GET /api/contact-persons/{id}", h.Directory.GetContactPerson)
	mux.HandleFunc("DELETE /api/contact-persons/{id}", h.Directory.DeleteContactPerson)

	// Probes.
	mux.HandleFunc("GET /health", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)

	return mux
}
