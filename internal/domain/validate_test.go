package domain

import (
	"errors"
	"testing"
)

func TestValidateContact_Valid(t *testing.T) {
	cases := []struct {
		name      string
		telephone string
	}{
		{"Bob", "123"},
		{"Bob", "+31612345678"},
		{"Bob", "+31 6 12345678"},
		{"Bob", "123456789012345"}, // exactly 15 digits
		{"  ", "123"},              // whitespace-only name is accepted as specified
	}

	for _, tc := range cases {
		if err := ValidateContact(tc.name, tc.telephone); err != nil {
			t.Errorf("ValidateContact(%q, %q): unexpected error: %v", tc.name, tc.telephone, err)
		}
	}
}

func TestValidateContact_Invalid(t *testing.T) {
	cases := []struct {
		label      string
		name       string
		telephone  string
		wantFields []string
	}{
		{"empty name", "", "123", []string{"name"}},
		{"bad characters", "Bob", "abc", []string{"telephone"}},
		{"16 digits", "Bob", "1234567890123456", []string{"telephone"}},
		{"plus only", "Bob", "+", []string{"telephone"}},
		{"spaces only", "Bob", "   ", []string{"telephone"}},
		{"empty telephone", "Bob", "", []string{"telephone"}},
		{"both fail", "", "abc", []string{"name", "telephone"}},
	}

	for _, tc := range cases {
		err := ValidateContact(tc.name, tc.telephone)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.label)
			continue
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("%s: error does not unwrap to ErrValidation: %v", tc.label, err)
		}

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("%s: error is not a *ValidationError: %v", tc.label, err)
			continue
		}
		if len(vErr.Errors) != len(tc.wantFields) {
			t.Errorf("%s: got %d field errors, want %d", tc.label, len(vErr.Errors), len(tc.wantFields))
			continue
		}
		for i, want := range tc.wantFields {
			if vErr.Errors[i].Field != want {
				t.Errorf("%s: field[%d] = %q, want %q", tc.label, i, vErr.Errors[i].Field, want)
			}
		}
	}
}

func TestValidateContact_MessagesOrdered(t *testing.T) {
	err := ValidateContact("", "abc")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	msgs := vErr.Messages()
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0] != "name is required" {
		t.Errorf("messages[0] = %q, want %q", msgs[0], "name is required")
	}
	if msgs[1] != "invalid telephone number" {
		t.Errorf("messages[1] = %q, want %q", msgs[1], "invalid telephone number")
	}
}

func TestValidationError_SixteenDigitsWithSpaces(t *testing.T) {
	// Spaces don't count toward the 15-digit bound; stripped form decides.
	if err := ValidateContact("Bob", "1 2 3 4 5 6 7 8 9 0 1 2 3 4 5"); err != nil {
		t.Errorf("15 digits with spaces should be valid: %v", err)
	}
	if err := ValidateContact("Bob", "1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6"); err == nil {
		t.Error("16 digits with spaces should be invalid")
	}
}
