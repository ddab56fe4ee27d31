package contact

import (
	"fmt"
	"strings"
)

// Field length limits.
const (
	maxNameLength    = 100
	maxEmailLength   = 254
	maxPhoneLength   = 20
	maxCompanyLength = 100
)

// Normalize cleans a contact's fields in place before validation and storage:
// name, phone, and company are trimmed; email is trimmed and lowercased so
// uniqueness is effectively case-insensitive; optional fields that trim to
// empty become nil.
func Normalize(c *Contact) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = normalizeOptional(c.Phone)
	c.Company = normalizeOptional(c.Company)
}

// normalizeOptional trims an optional field, converting empty values to nil.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Validate checks a contact's fields before persistence.
// The contact should be normalised first; Validate does not mutate it.
func Validate(c *Contact) error {
	if err := ValidateName(c.Name); err != nil {
		return err
	}
	if err := ValidateEmail(c.Email); err != nil {
		return err
	}
	if c.Phone != nil && len(*c.Phone) > maxPhoneLength {
		return fmt.Errorf("%w: phone exceeds %d characters", ErrInvalidField, maxPhoneLength)
	}
	if c.Company != nil && len(*c.Company) > maxCompanyLength {
		return fmt.Errorf("%w: company exceeds %d characters", ErrInvalidField, maxCompanyLength)
	}
	return nil
}

// ValidateName checks that a contact name is non-empty and within limits.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required and cannot be empty", ErrInvalidName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameLength)
	}
	return nil
}

// ValidateEmail checks that an email is present and contains an "@".
// Deliberately minimal: full RFC 5322 parsing rejects real-world addresses
// more often than it catches typos.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidEmail)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email must contain %q", ErrInvalidEmail, "@")
	}
	if len(email) > maxEmailLength {
		return fmt.Errorf("%w: email exceeds %d characters", ErrInvalidEmail, maxEmailLength)
	}
	return nil
}
