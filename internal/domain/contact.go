package domain

// Conventional category values. Category is free text — these are the
// values the device feeds and the UI know about, not a closed set.
const (
	CategoryPractice = "practice"
	CategorySupplier = "supplier"
	CategoryOther    = "other"
)

// Contact is a phonebook entry. A soft-deleted contact keeps its row and
// id but has Active unset; it is invisible to every read path.
type Contact struct {
	ID        int64
	Name      string
	Telephone string
	Category  string
	Active    bool
}

// ContactFilter narrows List results. The zero value selects all active
// contacts ordered by name.
type ContactFilter struct {
	// Query matches case-insensitively as a substring of name or telephone.
	Query string
	// Category is an exact match.
	Category string
}

// Entry is the {name, telephone} pair carried by the import/export wire
// formats. Category and id are not part of the device formats.
type Entry struct {
	Name      string
	Telephone string
}
