package domain

// Extended directory entities. Unlike Contact these use hard delete:
// removing a practice, supplier, or contact person cascades to its owned
// phone numbers and association rows.

// Address is a postal address referenced by at most one practice or supplier.
type Address struct {
	ID         int64
	Street     string
	Number     string
	PostalCode string
	City       string
	Country    string
}

// Practice is a veterinary/medical practice with owned phone numbers and
// linked contact persons.
type Practice struct {
	ID       int64
	Name     string
	Email    string
	Address  *Address
	Phones   []PhoneNumber
	Contacts []ContactLink
}

// Supplier mirrors Practice for the supplier side of the directory.
type Supplier struct {
	ID       int64
	Name     string
	Email    string
	Address  *Address
	Phones   []PhoneNumber
	Contacts []ContactLink
}

// ContactPerson is a human linked to zero or more practices/suppliers.
type ContactPerson struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Function  string
	Phones    []PhoneNumber
}

// PhoneNumber is owned exclusively by its parent entity and is removed
// when the parent is deleted.
type PhoneNumber struct {
	ID     int64
	Number string
	Type   string
}

// ContactLink is the association between a practice/supplier and a
// contact person. Composite key: parent id + person id.
type ContactLink struct {
	PersonID  int64
	Role      string
	IsPrimary bool
}
