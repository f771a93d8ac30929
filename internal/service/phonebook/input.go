package phonebook

import (
	"github.com/mverbeek/phonebook-backend/internal/domain"
)

// CreateContactInput holds the parameters for creating a contact.
// An empty Category defaults to "other".
type CreateContactInput struct {
	Name      string
	Telephone string
	Category  string
}

// Validate checks the name and telephone rules, collecting all errors.
func (i CreateContactInput) Validate() error {
	return domain.ValidateContact(i.Name, i.Telephone)
}

func (i CreateContactInput) category() string {
	if i.Category == "" {
		return domain.CategoryOther
	}
	return i.Category
}

// UpdateContactInput holds the parameters for updating a contact.
// Nil fields keep the stored value.
type UpdateContactInput struct {
	Name      *string
	Telephone *string
	Category  *string
}

// merged applies the input on top of the current contact.
func (i UpdateContactInput) merged(current *domain.Contact) (name, telephone, category string) {
	name, telephone, category = current.Name, current.Telephone, current.Category
	if i.Name != nil {
		name = *i.Name
	}
	if i.Telephone != nil {
		telephone = *i.Telephone
	}
	if i.Category != nil {
		category = *i.Category
	}
	return name, telephone, category
}
