package shelfread

import (
	"fmt"
	"strconv"
	"time"
)

// ValidationMode controls how strictly Book.Validate treats fields that
// were optional in some historical shelf layouts.
type ValidationMode int

// Validation modes for Book construction.
const (
	// ValidationLenient requires title and author name only.
	ValidationLenient ValidationMode = iota

	// ValidationStrict additionally requires a read date, matching the
	// behavior of shelves where undated reviews are excluded.
	ValidationStrict
)

// Rating values mapped from the shelf's textual star labels.
const (
	RatingNone          = 0
	RatingDidNotLikeIt  = 1
	RatingItWasOK       = 2
	RatingLikedIt       = 3
	RatingReallyLikedIt = 4
	RatingItWasAmazing  = 5
)

// Series represents a series designation extracted from a title
// annotation, e.g. "(Foundation, #1)".
type Series struct {
	Name  string
	Entry float64
}

// Book represents one reviewed item from a reader's shelf.
// Books are constructed once per row during parsing and treated as
// immutable afterwards.
type Book struct {
	Title         string
	AuthorName    string
	NumberOfPages *int
	DateRead      *time.Time
	UserRating    int // 0 means unrated
	UserReview    *string
	SeriesName    *string
	SeriesEntry   *float64
}

// Validate returns an error if the book violates required-field or
// cross-field constraints under the given mode.
func (b *Book) Validate(mode ValidationMode) error {
	if b.Title == "" {
		return Errorf(EINVALID, "book title required")
	}
	if b.AuthorName == "" {
		return Errorf(EINVALID, "book author name required")
	}
	if mode == ValidationStrict && b.DateRead == nil {
		return Errorf(EINVALID, "book read date required")
	}
	if (b.SeriesName != nil) != (b.SeriesEntry != nil) {
		return Errorf(EINVALID, "series name and series entry must be set together")
	}
	if b.UserRating < RatingNone || b.UserRating > RatingItWasAmazing {
		return Errorf(EINVALID, "user rating %d out of range", b.UserRating)
	}
	return nil
}

// FullTitle composes the canonical display title:
// "{title} ({series name}, #{series entry}) by {author name}" when the
// series fields are present, else "{title} by {author name}". A whole
// series entry renders without a decimal point.
func (b *Book) FullTitle() string {
	if b.SeriesName != nil && b.SeriesEntry != nil {
		entry := strconv.FormatFloat(*b.SeriesEntry, 'f', -1, 64)
		return fmt.Sprintf("%s (%s, #%s) by %s", b.Title, *b.SeriesName, entry, b.AuthorName)
	}
	return fmt.Sprintf("%s by %s", b.Title, b.AuthorName)
}

// ColumnType identifies the scalar type of a tabular column.
type ColumnType string

// Column types for the tabular projection.
const (
	ColumnInteger ColumnType = "integer"
	ColumnFloat   ColumnType = "float"
	ColumnText    ColumnType = "text"
	ColumnDate    ColumnType = "date"
)

// Column describes one column of the tabular projection.
type Column struct {
	Label string
	Type  ColumnType
}

// BookColumns returns the column schema for books in canonical order.
// Export collaborators build typed tables from this schema without
// knowing internal field names.
func BookColumns() []Column {
	return []Column{
		{Label: "Title", Type: ColumnText},
		{Label: "Author Name", Type: ColumnText},
		{Label: "Number of Pages", Type: ColumnInteger},
		{Label: "Date Read", Type: ColumnDate},
		{Label: "User Rating", Type: ColumnInteger},
		{Label: "User Review", Type: ColumnText},
		{Label: "Series Name", Type: ColumnText},
		{Label: "Series Entry", Type: ColumnFloat},
	}
}

// Row returns the book's values in the same order as BookColumns.
// Absent optional fields are nil.
func (b *Book) Row() []any {
	row := make([]any, 0, 8)
	row = append(row, b.Title, b.AuthorName)
	if b.NumberOfPages != nil {
		row = append(row, *b.NumberOfPages)
	} else {
		row = append(row, nil)
	}
	if b.DateRead != nil {
		row = append(row, *b.DateRead)
	} else {
		row = append(row, nil)
	}
	row = append(row, b.UserRating)
	if b.UserReview != nil {
		row = append(row, *b.UserReview)
	} else {
		row = append(row, nil)
	}
	if b.SeriesName != nil {
		row = append(row, *b.SeriesName)
	} else {
		row = append(row, nil)
	}
	if b.SeriesEntry != nil {
		row = append(row, *b.SeriesEntry)
	} else {
		row = append(row, nil)
	}
	return row
}
