package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Repository defines the interface for contact persistence operations.
type Repository interface {
	Create(ctx context.Context, c *Contact) error
	Get(ctx context.Context, id int64) (*Contact, error)
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	ListAll(ctx context.Context, filter ListFilter) ([]Contact, error)
	Update(ctx context.Context, c *Contact) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	CountByCompany(ctx context.Context) ([]CompanyCount, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed contact repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new contact and fills in its assigned ID and creation time.
// Returns ErrDuplicateEmail if the email is already in use.
func (r *SQLiteRepository) Create(ctx context.Context, c *Contact) error {
	createdAt := time.Now().UTC().Truncate(time.Second)

	const query = `INSERT INTO contacts (name, email, phone, company, created_at)
		VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Email, nullStr(c.Phone), nullStr(c.Company),
		createdAt.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("inserting contact: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading contact id: %w", err)
	}
	c.ID = id
	c.CreatedAt = createdAt
	return nil
}

// Get returns a single contact by ID, or ErrNotFound.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*Contact, error) {
	const query = `SELECT id, name, email, phone, company, created_at
		FROM contacts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanContact(row)
}

// List returns contacts matching the filter, plus the total match count.
//
// The filter's sort column is checked against the allow-list and the order
// against asc/desc before either is placed in the query; user input is never
// interpolated into SQL unchecked. Invalid values fall back to id ascending.
func (r *SQLiteRepository) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	where, args := buildWhere(filter)

	// Total matching rows for the pagination envelope
	var count int
	countQuery := "SELECT COUNT(*) FROM contacts" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, fmt.Errorf("counting contacts: %w", err)
	}

	query := `SELECT id, name, email, phone, company, created_at FROM contacts` +
		where + orderClause(filter.SortBy, filter.Order) + " LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]Contact, 0)
	for rows.Next() {
		c, err := scanContactRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact row: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact rows: %w", err)
	}

	return &ListResult{
		Data:   contacts,
		Count:  count,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// ListAll returns every contact matching the filter's company/search/sort
// settings, ignoring pagination. Used by the export endpoints.
func (r *SQLiteRepository) ListAll(ctx context.Context, filter ListFilter) ([]Contact, error) {
	where, args := buildWhere(filter)
	query := `SELECT id, name, email, phone, company, created_at FROM contacts` +
		where + orderClause(filter.SortBy, filter.Order)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		c, err := scanContactRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contact row: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contact rows: %w", err)
	}
	return contacts, nil
}

// Update replaces a contact's mutable fields (name, email, phone, company).
// ID and created_at never change. Returns ErrNotFound for unknown IDs and
// ErrDuplicateEmail if the new email belongs to another contact.
func (r *SQLiteRepository) Update(ctx context.Context, c *Contact) error {
	const query = `UPDATE contacts SET name = ?, email = ?, phone = ?, company = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.Email, nullStr(c.Phone), nullStr(c.Company), c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("updating contact %d: %w", c.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	// Re-read to return the stored created_at alongside the new fields
	updated, err := r.Get(ctx, c.ID)
	if err != nil {
		return err
	}
	c.CreatedAt = updated.CreatedAt
	return nil
}

// Delete removes a contact by ID. Returns ErrNotFound for unknown IDs.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting contact %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of contacts.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting contacts: %w", err)
	}
	return count, nil
}

// CountByCompany returns contact counts grouped by company, largest first.
// Contacts without a company are grouped under an empty string.
func (r *SQLiteRepository) CountByCompany(ctx context.Context) ([]CompanyCount, error) {
	const query = `SELECT COALESCE(company, ''), COUNT(*) FROM contacts
		GROUP BY COALESCE(company, '') ORDER BY COUNT(*) DESC, COALESCE(company, '')`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("counting contacts by company: %w", err)
	}
	defer rows.Close()

	var counts []CompanyCount
	for rows.Next() {
		var cc CompanyCount
		if err := rows.Scan(&cc.Company, &cc.Count); err != nil {
			return nil, fmt.Errorf("scanning company count: %w", err)
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating company counts: %w", err)
	}
	return counts, nil
}

// buildWhere constructs the WHERE clause shared by List, ListAll, and the
// count query. Returns the clause (with leading " WHERE", or empty) and args.
func buildWhere(filter ListFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Company != "" {
		conditions = append(conditions, "LOWER(company) = LOWER(?)")
		args = append(args, filter.Company)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(name LIKE ? OR email LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderClause returns the ORDER BY clause for a validated sort column and
// direction. Both fall back to defaults rather than erroring, matching the
// list endpoint's lenient query semantics.
func orderClause(sortBy, order string) string {
	if !SortFields[sortBy] {
		sortBy = "id"
	}
	direction := "ASC"
	if strings.EqualFold(order, "desc") {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)
}

// nullStr converts a *string to a sql.NullString for nullable columns.
func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// scanContact scans a single row into a Contact (for QueryRow).
func scanContact(row *sql.Row) (*Contact, error) {
	var c Contact
	var phone, company sql.NullString
	var createdAt string

	err := row.Scan(&c.ID, &c.Name, &c.Email, &phone, &company, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning contact: %w", err)
	}

	applyNullables(&c, phone, company, createdAt)
	return &c, nil
}

// scanContactRow scans a contact from a Rows cursor.
func scanContactRow(rows *sql.Rows) (*Contact, error) {
	var c Contact
	var phone, company sql.NullString
	var createdAt string

	if err := rows.Scan(&c.ID, &c.Name, &c.Email, &phone, &company, &createdAt); err != nil {
		return nil, err
	}

	applyNullables(&c, phone, company, createdAt)
	return &c, nil
}

// applyNullables copies nullable columns and the parsed timestamp onto c.
func applyNullables(c *Contact, phone, company sql.NullString, createdAt string) {
	if phone.Valid {
		c.Phone = &phone.String
	}
	if company.Valid {
		c.Company = &company.String
	}
	c.CreatedAt = parseTime(createdAt)
}

// parseTime parses a stored timestamp. Rows written by this service are
// RFC3339; the SQLite strftime default uses the same shape.
func parseTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	// Fallback for rows written by other tools
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
