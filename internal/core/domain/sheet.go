package domain

import (
	"encoding/json"
	"fmt"
	"os"
)

// Logical column names recognised by the sheet column mapping.
const (
	ColumnTitle         = "TITLE"
	ColumnAuthors       = "AUTHORS"
	ColumnYear          = "YEAR"
	ColumnImageURL      = "IMAGE_URL"
	ColumnGoogleBooksID = "GOOGLE_BOOKS_ID"
	ColumnComments      = "COMMENTS"
	ColumnDateRead      = "DATE_READ"
	ColumnPublic        = "PUBLIC"
)

// publicMarker is the only cell value that marks a row as publishable.
// The comparison is case-sensitive: "true", "1" etc. do not qualify.
const publicMarker = "TRUE"

// SheetSpec maps logical column names to spreadsheet column letters and names
// the row range to fetch. Loaded once at startup and immutable thereafter.
type SheetSpec struct {
	Range   string            `json:"range"`
	Columns map[string]string `json:"columns"`
}

// LoadSheetSpec reads a SheetSpec from a JSON file.
func LoadSheetSpec(path string) (*SheetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet spec %s: %w", path, err)
	}
	var spec SheetSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse sheet spec %s: %w", path, err)
	}
	if spec.Range == "" {
		return nil, fmt.Errorf("sheet spec %s: range is required", path)
	}
	if len(spec.Columns) == 0 {
		return nil, fmt.Errorf("sheet spec %s: columns are required", path)
	}
	return &spec, nil
}

// ColumnIndex converts the configured column letter(s) for name into a
// zero-based index. Unknown names and malformed letters return -1.
func (s *SheetSpec) ColumnIndex(name string) int {
	letters, ok := s.Columns[name]
	if !ok || letters == "" {
		return -1
	}
	idx := 0
	for _, r := range letters {
		if r < 'A' || r > 'Z' {
			return -1
		}
		idx = idx*26 + int(r-'A') + 1
	}
	return idx - 1
}

// Cell returns the value of the named column in row, or "" when the column is
// not mapped or the row is too short. Row shape is never assumed uniform.
func (s *SheetSpec) Cell(row []string, name string) string {
	col := s.ColumnIndex(name)
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// IsPublic reports whether row is flagged for publishing.
func (s *SheetSpec) IsPublic(row []string) bool {
	return s.Cell(row, ColumnPublic) == publicMarker
}
