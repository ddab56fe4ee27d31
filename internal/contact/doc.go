// Package contact defines the Contact entity and its SQLite persistence.
//
// A Contact is the only persisted entity in the service: an id, a name, a
// unique email, and optional phone and company fields, plus an immutable
// creation timestamp. The package provides:
//
//   - Validation and normalisation of incoming contact data
//   - A Repository interface with a SQLite implementation
//   - List filtering (company, substring search), pagination, and sorting
//     over an allow-listed set of columns
//   - CSV and XLSX export of contact lists
//   - Idempotent sample-data seeding for development
//
// Email uniqueness is enforced by the database's UNIQUE index; the
// repository maps the constraint violation to ErrDuplicateEmail so callers
// never race a pre-check against the insert.
package contact
