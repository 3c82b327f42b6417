// Package csv exports harvested libraries as CSV files built from the
// canonical column schema.
package csv

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"shelfread"
)

// dateLayout is the cell format for date columns.
const dateLayout = "2006-01-02"

// Writer writes a library as CSV: one header row of column labels
// followed by one row per book in discovery order. The writer only
// consumes the tabular projection (BookColumns and Book.Row), never the
// book fields themselves.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write renders the library to out. Absent optional values become
// empty cells.
func (w *Writer) Write(out io.Writer, lib *shelfread.Library) error {
	cols := shelfread.BookColumns()

	cw := csv.NewWriter(out)

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Label
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, book := range lib.Books {
		record := make([]string, len(cols))
		for i, value := range book.Row() {
			cell, err := formatCell(value, cols[i])
			if err != nil {
				return err
			}
			record[i] = cell
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatCell renders one value according to its column's declared type.
func formatCell(value any, col shelfread.Column) (string, error) {
	if value == nil {
		return "", nil
	}

	switch col.Type {
	case shelfread.ColumnInteger:
		n, ok := value.(int)
		if !ok {
			return "", shelfread.Errorf(shelfread.EINTERNAL, "column %q: expected integer, got %T", col.Label, value)
		}
		return strconv.Itoa(n), nil
	case shelfread.ColumnFloat:
		f, ok := value.(float64)
		if !ok {
			return "", shelfread.Errorf(shelfread.EINTERNAL, "column %q: expected float, got %T", col.Label, value)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	case shelfread.ColumnDate:
		t, ok := value.(time.Time)
		if !ok {
			return "", shelfread.Errorf(shelfread.EINTERNAL, "column %q: expected date, got %T", col.Label, value)
		}
		return t.Format(dateLayout), nil
	case shelfread.ColumnText:
		s, ok := value.(string)
		if !ok {
			return "", shelfread.Errorf(shelfread.EINTERNAL, "column %q: expected text, got %T", col.Label, value)
		}
		return s, nil
	}
	return "", shelfread.Errorf(shelfread.EINTERNAL, "column %q: unknown type %q", col.Label, col.Type)
}
