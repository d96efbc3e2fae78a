package seed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/medsys/hospital/internal/domain/clinical"
	"github.com/medsys/hospital/internal/domain/reference"
)

// Workbook sheet names. The first row of every sheet is a header.
const (
	SheetDiagnostics     = "diagnostics"
	SheetDoctors         = "doctors"
	SheetSpecializations = "specializations"
	SheetCommissions     = "commissions"
	SheetDiseases        = "diseases"
)

// LoadWorkbook reads a catalogue from an .xlsx file.
func LoadWorkbook(path string) (*Catalogue, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return ParseWorkbook(f)
}

// ParseWorkbook converts the known sheets of f into a catalogue. Sheets with
// other names are ignored, as are rows whose first cell is blank.
//
//	diagnostics, doctors: name | expires_in_days
//	specializations, commissions: title
//	diseases: code | title | source
func ParseWorkbook(f *xlsx.File) (*Catalogue, error) {
	c := &Catalogue{}
	for _, sheet := range f.Sheets {
		name := strings.ToLower(strings.TrimSpace(sheet.Name))
		for i, row := range sheet.Rows {
			if i == 0 || row == nil {
				continue
			}
			cells := values(row)
			if len(cells) == 0 || cells[0] == "" {
				continue
			}
			// Spreadsheet rows are 1-based.
			line := i + 1
			switch name {
			case SheetDiagnostics:
				days, err := intCell(cells, 1, name, line)
				if err != nil {
					return nil, err
				}
				c.Diagnostics = append(c.Diagnostics, reference.Diagnostic{Name: cells[0], ExpiresInDays: days})
			case SheetDoctors:
				days, err := intCell(cells, 1, name, line)
				if err != nil {
					return nil, err
				}
				c.Doctors = append(c.Doctors, reference.Doctor{Name: cells[0], ExpiresInDays: days})
			case SheetSpecializations:
				c.Specializations = append(c.Specializations, cells[0])
			case SheetCommissions:
				c.Commissions = append(c.Commissions, cells[0])
			case SheetDiseases:
				if len(cells) < 2 || cells[1] == "" {
					return nil, fmt.Errorf("sheet %s row %d: title is required", name, line)
				}
				source, err := intCell(cells, 2, name, line)
				if err != nil {
					return nil, err
				}
				c.Diseases = append(c.Diseases, clinical.Disease{Code: cells[0], Title: cells[1], Source: source, IsActual: true})
			}
		}
	}
	return c, nil
}

func values(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		out[i] = strings.TrimSpace(cell.Value)
	}
	return out
}

// intCell parses column col as a non-negative integer. A missing cell is 0.
func intCell(cells []string, col int, sheet string, line int) (int, error) {
	if col >= len(cells) || cells[col] == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(cells[col])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("sheet %s row %d: column %d must be a non-negative integer, got %q", sheet, line, col+1, cells[col])
	}
	return n, nil
}
