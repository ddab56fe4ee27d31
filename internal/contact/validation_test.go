package contact

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid name", input: "John Doe", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: true},
		{name: "at limit", input: strings.Repeat("a", 100), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidName) {
				t.Errorf("error should wrap ErrInvalidName, got %v", err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid email", input: "john@acme.com", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "missing at sign", input: "john.acme.com", wantErr: true},
		{name: "bare at sign accepted", input: "a@b", wantErr: false},
		{name: "too long", input: strings.Repeat("a", 250) + "@x.com", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidEmail) {
				t.Errorf("error should wrap ErrInvalidEmail, got %v", err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	phone := "  555-0101  "
	company := "   "
	c := Contact{
		Name:    "  John Doe  ",
		Email:   "  John.Doe@ACME.com ",
		Phone:   &phone,
		Company: &company,
	}

	Normalize(&c)

	if c.Name != "John Doe" {
		t.Errorf("name: got %q", c.Name)
	}
	if c.Email != "john.doe@acme.com" {
		t.Errorf("email: got %q, want lowercased and trimmed", c.Email)
	}
	if c.Phone == nil || *c.Phone != "555-0101" {
		t.Errorf("phone: got %v", c.Phone)
	}
	// Whitespace-only optional fields become nil
	if c.Company != nil {
		t.Errorf("company: got %q, want nil", *c.Company)
	}
}

func TestValidate(t *testing.T) {
	longPhone := strings.Repeat("5", 21)
	longCompany := strings.Repeat("c", 101)

	tests := []struct {
		name    string
		contact Contact
		wantErr error
	}{
		{
			name:    "valid minimal",
			contact: Contact{Name: "John", Email: "john@acme.com"},
		},
		{
			name:    "empty name",
			contact: Contact{Name: "", Email: "john@acme.com"},
			wantErr: ErrInvalidName,
		},
		{
			name:    "bad email",
			contact: Contact{Name: "John", Email: "not-an-email"},
			wantErr: ErrInvalidEmail,
		},
		{
			name:    "phone too long",
			contact: Contact{Name: "John", Email: "john@acme.com", Phone: &longPhone},
			wantErr: ErrInvalidField,
		},
		{
			name:    "company too long",
			contact: Contact{Name: "John", Email: "john@acme.com", Company: &longCompany},
			wantErr: ErrInvalidField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.contact)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
