package domain

import (
	"regexp"
	"strings"
)

// Telephone numbers may contain spaces and an optional leading plus,
// e.g. "+31 6 28330622".
var telephoneRe = regexp.MustCompile(`^\+?[0-9 ]+$`)

// maxTelephoneDigits is the E.164 bound on significant digits.
const maxTelephoneDigits = 15

// ValidateContact checks a name/telephone pair. The two rules are
// evaluated independently so a caller can report every problem at once.
// Returns nil or a *ValidationError with errors ordered name first,
// telephone second.
func ValidateContact(name, telephone string) error {
	var errs []FieldError

	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if !validTelephone(telephone) {
		errs = append(errs, FieldError{Field: "telephone", Message: "invalid telephone number"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// validTelephone applies the character-class check first, then strips
// spaces and at most one leading plus and requires a non-empty all-digit
// remainder of at most 15 characters.
func validTelephone(telephone string) bool {
	if telephone == "" || !telephoneRe.MatchString(telephone) {
		return false
	}

	digits := strings.ReplaceAll(telephone, " ", "")
	digits = strings.TrimPrefix(digits, "+")
	if digits == "" || len(digits) > maxTelephoneDigits {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
