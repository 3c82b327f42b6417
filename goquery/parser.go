// Package goquery implements shelf-page parsing on top of goquery
// selections. It maps one review table row to a validated
// shelfread.Book via a fixed family of per-field extraction rules.
package goquery

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"shelfread"
)

// reviewRowPattern matches the markup ids of review rows: a fixed
// prefix followed by the numeric review id.
var reviewRowPattern = regexp.MustCompile(`^review_\d+$`)

// pageNumberPattern captures the first run of 1-6 digits that is not
// immediately followed by another digit.
var pageNumberPattern = regexp.MustCompile(`(\d{1,6})(?:\D|$)`)

// seriesPatterns are tried in order against a series annotation;
// the first match wins. Entries may be decimal ("2.5").
var seriesPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\((.*?)(?:,\s*|\s+)#(\d+(?:\.\d+)?)\)`),
	regexp.MustCompile(`^(.*?),?\s*Vol\.\s*(\d+(?:\.\d+)?)\b`),
	regexp.MustCompile(`\((.*?)\s+Book\s+(\d+(?:\.\d+)?)\)`),
}

// volumePattern is the "Vol. N" fallback retried against the raw title
// text when no annotation span is present.
var volumePattern = seriesPatterns[1]

// dateFormats are the supported read-date layouts, tried in order.
var dateFormats = []string{"Jan 2, 2006", "Jan 2006"}

// ratingsByLabel maps the shelf's textual star labels to ratings.
var ratingsByLabel = map[string]int{
	"did not like it": shelfread.RatingDidNotLikeIt,
	"it was ok":       shelfread.RatingItWasOK,
	"liked it":        shelfread.RatingLikedIt,
	"really liked it": shelfread.RatingReallyLikedIt,
	"it was amazing":  shelfread.RatingItWasAmazing,
}

// Ensure Parser implements the domain interfaces at compile time.
var (
	_ shelfread.ShelfParser = (*Parser)(nil)
	_ shelfread.PageCounter = (*Parser)(nil)
)

// Parser extracts validated books from shelf-page markup.
type Parser struct {
	mode shelfread.ValidationMode
}

// Option configures a Parser.
type Option func(*Parser)

// WithValidationMode sets the validation mode applied to each row.
// Defaults to shelfread.ValidationLenient.
func WithValidationMode(mode shelfread.ValidationMode) Option {
	return func(p *Parser) {
		p.mode = mode
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{mode: shelfread.ValidationLenient}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseShelf parses one shelf page and returns the validated books in
// document order. Rows that fail validation are reported in
// ParseResult.Rejected and never abort the page; a page with zero
// review rows yields an empty result.
func (p *Parser) ParseShelf(pageHTML string) (*shelfread.ParseResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return nil, shelfread.Errorf(shelfread.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &shelfread.ParseResult{}
	doc.Find("tr[id^='review_']").Each(func(_ int, row *goquery.Selection) {
		id, _ := row.Attr("id")
		if !reviewRowPattern.MatchString(id) {
			return
		}

		book := parseRow(row).book()
		if err := book.Validate(p.mode); err != nil {
			result.Rejected = append(result.Rejected, shelfread.RowError{RowID: id, Err: err})
			return
		}
		result.Books = append(result.Books, book)
	})

	return result, nil
}

// PageCount returns the number of shelf pages advertised by the
// pagination block on the first page. Pages without pagination (or
// unparseable markup) count as a single page.
func (p *Parser) PageCount(pageHTML string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return 1
	}

	pages := 1
	doc.Find("div#reviewPagination a").Each(func(_ int, sel *goquery.Selection) {
		n, err := strconv.Atoi(strings.TrimSpace(sel.Text()))
		if err != nil {
			return
		}
		if n > pages {
			pages = n
		}
	})
	return pages
}

// rowData is the intermediate builder the extractors fill in before
// validation. Optional fields stay nil when absent; the zero rating
// already encodes "unrated".
type rowData struct {
	title         *string
	authorName    *string
	numberOfPages *int
	dateRead      *time.Time
	userRating    int
	userReview    *string
	series        *shelfread.Series
}

// fieldExtractors is the closed set of per-field extraction rules,
// applied uniformly to every row. Each rule is stateless and tolerates
// missing markup by leaving its field unset.
var fieldExtractors = []struct {
	name    string
	extract func(row *goquery.Selection, data *rowData)
}{
	{"authorName", extractAuthor},
	{"title", extractTitle},
	{"series", extractSeries},
	{"dateRead", extractDateRead},
	{"numberOfPages", extractPageCount},
	{"userRating", extractRating},
	{"userReview", extractReview},
}

// parseRow runs every field extractor against one review row.
func parseRow(row *goquery.Selection) *rowData {
	data := &rowData{}
	for _, fe := range fieldExtractors {
		fe.extract(row, data)
	}
	return data
}

// book converts the assembled row data into a Book, splitting a series
// match into its name and entry attributes.
func (d *rowData) book() *shelfread.Book {
	b := &shelfread.Book{
		NumberOfPages: d.numberOfPages,
		DateRead:      d.dateRead,
		UserRating:    d.userRating,
		UserReview:    d.userReview,
	}
	if d.title != nil {
		b.Title = *d.title
	}
	if d.authorName != nil {
		b.AuthorName = *d.authorName
	}
	if d.series != nil {
		name, entry := d.series.Name, d.series.Entry
		b.SeriesName = &name
		b.SeriesEntry = &entry
	}
	return b
}

// fieldCell returns the <td class="field {name}"> cell selection.
// The selection is empty when the cell is not present.
func fieldCell(row *goquery.Selection, name string) *goquery.Selection {
	return row.Find("td.field." + name)
}

func extractAuthor(row *goquery.Selection, data *rowData) {
	link := fieldCell(row, "author").Find("a").First()
	if text := strings.TrimSpace(link.Text()); text != "" {
		data.authorName = &text
	}
}

func extractTitle(row *goquery.Selection, data *rowData) {
	link := fieldCell(row, "title").Find("a").First()
	if link.Length() == 0 {
		return
	}

	// Prefer the link's leading text node so an embedded series
	// annotation does not leak into the title.
	if text := leadingText(link); text != "" {
		data.title = &text
		return
	}
	if text := strings.TrimSpace(link.Text()); text != "" {
		data.title = &text
	}
}

// leadingText returns the trimmed text of the link's first child when
// that child is a text node, else the empty string.
func leadingText(link *goquery.Selection) string {
	c := link.Nodes[0].FirstChild
	if c != nil && c.Type == html.TextNode {
		return strings.TrimSpace(c.Data)
	}
	return ""
}

func extractSeries(row *goquery.Selection, data *rowData) {
	link := fieldCell(row, "title").Find("a").First()
	if link.Length() == 0 {
		return
	}

	annotation := strings.TrimSpace(link.Find("span.darkGreyText").First().Text())
	if annotation == "" {
		// Older shelf layouts embed "Vol. N" directly in the title text.
		data.series = matchSeries(strings.TrimSpace(link.Text()), volumePattern)
		return
	}
	data.series = matchSeries(annotation, seriesPatterns...)
}

// matchSeries tries each pattern in order and returns the first match.
func matchSeries(text string, patterns ...*regexp.Regexp) *shelfread.Series {
	if text == "" {
		return nil
	}
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		entry, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		return &shelfread.Series{Name: strings.TrimSpace(m[1]), Entry: entry}
	}
	return nil
}

func extractDateRead(row *goquery.Selection, data *rowData) {
	cell := fieldCell(row, "date_read")
	span := cell.Find("span.date_read_value").First()
	if span.Length() == 0 {
		span = cell.Find("span[title]").First()
	}

	text := strings.TrimSpace(span.Text())
	if text == "" {
		return
	}
	data.dateRead = parseReadDate(text)
}

// parseReadDate parses a textual read date, trying the full format
// before the month-only one. Month-only dates normalize to the last
// calendar day of that month. Unparseable text is treated as absence.
func parseReadDate(text string) *time.Time {
	if t, err := time.Parse(dateFormats[0], text); err == nil {
		return &t
	}
	if t, err := time.Parse(dateFormats[1], text); err == nil {
		// Day 0 of the following month is the last day of this one.
		t = time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		return &t
	}
	return nil
}

func extractPageCount(row *goquery.Selection, data *rowData) {
	text := strings.TrimSpace(fieldCell(row, "num_pages").Text())
	if text == "" {
		return
	}

	m := pageNumberPattern.FindStringSubmatch(text)
	if m == nil {
		return
	}
	if n, err := strconv.Atoi(m[1]); err == nil {
		data.numberOfPages = &n
	}
}

func extractRating(row *goquery.Selection, data *rowData) {
	span := fieldCell(row, "rating").Find("span.staticStars").First()
	title, ok := span.Attr("title")
	if !ok {
		return // zero value already means unrated
	}
	data.userRating = ratingsByLabel[strings.ToLower(title)]
}

func extractReview(row *goquery.Selection, data *rowData) {
	span := row.Find("span[id^='freeTextContainerreview']").First()
	if text := strings.TrimSpace(span.Text()); text != "" {
		data.userReview = &text
	}
}
