package contact

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

// exportFixture returns two contacts with a mix of set and nil optionals.
func exportFixture() []Contact {
	return []Contact{
		{
			ID:        1,
			Name:      "John Doe",
			Email:     "john.doe@acme.com",
			Phone:     ptr("555-0101"),
			Company:   ptr("Acme Corp"),
			CreatedAt: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Name:      "Carol Brown",
			Email:     "carol.b@freelance.com",
			CreatedAt: time.Date(2026, 1, 11, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, exportFixture()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing CSV output: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(records))
	}
	if records[0][1] != "Name" || records[0][2] != "Email" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "1" || records[1][2] != "john.doe@acme.com" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	// Nil optionals render as empty cells
	if records[2][3] != "" || records[2][4] != "" {
		t.Errorf("expected empty phone/company cells: %v", records[2])
	}
	if records[1][5] != "2026-01-10T12:00:00Z" {
		t.Errorf("created_at cell: got %q", records[1][5])
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing CSV output: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d rows, want header only", len(records))
	}
}

func TestExportXLSX(t *testing.T) {
	data, err := ExportXLSX(exportFixture())
	if err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("ExportXLSX returned no bytes")
	}

	// Read the workbook back and verify contents
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("opening generated workbook: %v", err)
	}
	defer f.Close() //nolint:errcheck // Test cleanup

	rows, err := f.GetRows("Contacts")
	if err != nil {
		t.Fatalf("reading Contacts sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][1] != "Name" {
		t.Errorf("unexpected header row: %v", rows[0])
	}
	if rows[1][2] != "john.doe@acme.com" {
		t.Errorf("first data row email: got %q", rows[1][2])
	}
	if rows[2][1] != "Carol Brown" {
		t.Errorf("second data row name: got %q", rows[2][1])
	}
}
