package domain

import "fmt"

// BookEntry is one published row of a user's book sheet.
// Ordinal is the zero-based row index within the fetched range; it is a stable
// identifier within a single publish only, not across publishes.
type BookEntry struct {
	Ordinal       int    `json:"ordinal"`
	Title         string `json:"title"`
	Authors       string `json:"authors"`
	Year          string `json:"year"`
	ImageURL      string `json:"image_url"`
	GoogleBooksID string `json:"google_books_id"`
	Comments      string `json:"comments"`
	DateRead      string `json:"date_read"`
}

// NewBookEntry maps one spreadsheet row through the column mapping.
// Cells missing from the row resolve to empty strings.
func NewBookEntry(ordinal int, row []string, spec *SheetSpec) BookEntry {
	return BookEntry{
		Ordinal:       ordinal,
		Title:         spec.Cell(row, ColumnTitle),
		Authors:       spec.Cell(row, ColumnAuthors),
		Year:          spec.Cell(row, ColumnYear),
		ImageURL:      spec.Cell(row, ColumnImageURL),
		GoogleBooksID: spec.Cell(row, ColumnGoogleBooksID),
		Comments:      spec.Cell(row, ColumnComments),
		DateRead:      spec.Cell(row, ColumnDateRead),
	}
}

func (b BookEntry) String() string {
	read := "Not read."
	if b.DateRead != "" {
		read = "Read: " + b.DateRead + "."
	}
	return fmt.Sprintf("%s, by %s (%s). %s", b.Title, b.Authors, b.Year, read)
}
