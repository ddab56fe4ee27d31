package contact

import "time"

// Contact represents a single CRM record with identifying and
// contact-method fields.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Company   *string   `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Sort and pagination bounds for list queries.
const (
	// DefaultLimit is the page size when the caller does not specify one.
	DefaultLimit = 10

	// MaxLimit is the largest page size a caller may request.
	MaxLimit = 50
)

// SortFields is the allow-list of columns a list query may sort by.
// Anything outside this list falls back to "id".
var SortFields = map[string]bool{
	"id":         true,
	"name":       true,
	"email":      true,
	"company":    true,
	"created_at": true,
}

// ListFilter describes filtering, pagination, and sorting for List queries.
type ListFilter struct {
	// Company filters by case-insensitive exact company match. Empty means no filter.
	Company string

	// Search matches a substring in name or email. Empty means no filter.
	Search string

	// Limit is the maximum number of records to return.
	Limit int

	// Offset is the number of records to skip.
	Offset int

	// SortBy is the sort column; must be in SortFields or it defaults to "id".
	SortBy string

	// Order is "asc" or "desc"; anything else defaults to "asc".
	Order string
}

// ListResult is a page of contacts plus the total match count.
type ListResult struct {
	Data   []Contact `json:"data"`
	Count  int       `json:"count"` // total rows matching the filter, not the page size
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// CompanyCount is a per-company contact tally for the stats endpoint.
type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}
