package mock

import "shelfread"

var _ shelfread.ShelfParser = (*ShelfParser)(nil)

// ShelfParser is a mock implementation of shelfread.ShelfParser.
type ShelfParser struct {
	ParseShelfFn func(html string) (*shelfread.ParseResult, error)
}

func (p *ShelfParser) ParseShelf(html string) (*shelfread.ParseResult, error) {
	return p.ParseShelfFn(html)
}

var _ shelfread.PageCounter = (*PageCounter)(nil)

// PageCounter is a mock implementation of shelfread.PageCounter.
type PageCounter struct {
	PageCountFn func(html string) int
}

func (c *PageCounter) PageCount(html string) int {
	return c.PageCountFn(html)
}
