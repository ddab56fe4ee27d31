package contact

import "errors"

var (
	// ErrNotFound is returned when a contact ID does not exist.
	ErrNotFound = errors.New("contact not found")

	// ErrDuplicateEmail is returned when an email address is already in use
	// by another contact.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidName is returned when a contact name fails validation.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidEmail is returned when an email address fails validation.
	ErrInvalidEmail = errors.New("invalid email")

	// ErrInvalidField is returned when an optional field exceeds its limits.
	ErrInvalidField = errors.New("invalid field")
)
