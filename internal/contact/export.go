package contact

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// exportHeader is the column order used by both export formats.
var exportHeader = []string{"ID", "Name", "Email", "Phone", "Company", "Created At"}

// xlsxSheetName is the worksheet name in XLSX exports.
const xlsxSheetName = "Contacts"

// WriteCSV writes contacts as CSV (header row plus one row per contact).
func WriteCSV(w io.Writer, contacts []Contact) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, c := range contacts {
		record := []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Email,
			deref(c.Phone),
			deref(c.Company),
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row for contact %d: %w", c.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}

// ExportXLSX renders contacts as an XLSX workbook with a styled header row.
//
// Returns the file contents as bytes, ready to be streamed as a download.
func ExportXLSX(contacts []Contact) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // In-memory file, close is best effort

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	// Header row
	for col, header := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("converting coordinates: %w", err)
		}
		if err := f.SetCellValue(xlsxSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("setting header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(xlsxSheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("styling header cell %s: %w", cell, err)
		}
	}

	// Data rows
	for i, c := range contacts {
		row := i + 2 // row 1 is the header
		values := []any{
			c.ID,
			c.Name,
			c.Email,
			deref(c.Phone),
			deref(c.Company),
			c.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("converting coordinates: %w", err)
			}
			if err := f.SetCellValue(xlsxSheetName, cell, v); err != nil {
				return nil, fmt.Errorf("setting cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetColWidth(xlsxSheetName, "B", "F", 24); err != nil {
		return nil, fmt.Errorf("setting column widths: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// deref returns the value of an optional field, or "" for nil.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
