package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"shelfread"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	lib, err := deps.Libraries.FindLibraryByUserID(deps.Ctx, c.UserID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shelfread.ErrorMessage(err))
		return err
	}

	if len(lib.Books) == 0 {
		fmt.Fprintf(deps.Stdout, "Library %d is empty.\n", lib.UserID)
		return nil
	}

	cols := shelfread.BookColumns()
	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col.Label
	}

	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.AppendHeader(header)
	for _, book := range lib.Books {
		row := make(table.Row, len(cols))
		for i, value := range book.Row() {
			row[i] = formatValue(value)
		}
		t.AppendRow(row)
	}
	t.Render()

	fmt.Fprintf(deps.Stdout, "%d book(s)\n", len(lib.Books))
	return nil
}

// formatValue renders one tabular cell for display.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		return v.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
