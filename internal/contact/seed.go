package contact

import (
	"context"
	"errors"
	"fmt"
)

// sampleContacts is the development roster inserted by Seed.
var sampleContacts = []Contact{
	{Name: "John Doe", Email: "john.doe@acme.com", Phone: ptr("555-0101"), Company: ptr("Acme Corp")},
	{Name: "Jane Smith", Email: "jane.smith@techco.com", Phone: ptr("555-0102"), Company: ptr("TechCo")},
	{Name: "Alice Johnson", Email: "alice.j@startupx.com", Phone: ptr("555-0103"), Company: ptr("StartupX")},
	{Name: "Bob Wilson", Email: "bob.w@acme.com", Phone: ptr("555-0104"), Company: ptr("Acme Corp")},
	{Name: "Carol Brown", Email: "carol.b@freelance.com", Phone: ptr("555-0105")},
}

// Seed inserts sample contacts for development and demos.
//
// It is idempotent: contacts whose email already exists are skipped, and a
// non-empty table is left untouched entirely.
//
// Returns the number of contacts inserted.
func Seed(ctx context.Context, repo Repository) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking contact count before seed: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, sample := range sampleContacts {
		c := sample
		Normalize(&c)
		if err := repo.Create(ctx, &c); err != nil {
			if errors.Is(err, ErrDuplicateEmail) {
				continue
			}
			return inserted, fmt.Errorf("seeding contact %q: %w", c.Email, err)
		}
		inserted++
	}
	return inserted, nil
}

// ptr returns a pointer to s, for building optional fields.
func ptr(s string) *string {
	return &s
}
