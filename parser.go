package shelfread

// RowError records one shelf row that failed validation.
// Rejections are row-scoped: the rest of the page still parses.
type RowError struct {
	// RowID is the markup id of the rejected row, e.g. "review_12345".
	RowID string

	// Err is the validation error that caused the rejection.
	Err error
}

// ParseResult holds the outcome of parsing one shelf page.
type ParseResult struct {
	// Books are the validated records in document order.
	Books []*Book

	// Rejected lists rows that were dropped, for observability.
	// A non-empty Rejected never makes the parse itself fail.
	Rejected []RowError
}

// ShelfParser extracts validated books from one shelf page's markup.
// A page with zero review rows yields an empty result, not an error.
type ShelfParser interface {
	ParseShelf(html string) (*ParseResult, error)
}

// PageCounter discovers the total number of shelf pages from the first
// page's pagination markup. Pages without pagination count as 1.
type PageCounter interface {
	PageCount(html string) int
}
