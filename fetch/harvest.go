// Package fetch orchestrates concurrent retrieval of a reader's shelf
// pages and assembles the parsed results into a shelfread.Library.
package fetch

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"shelfread"
)

// shelfURLTemplate is the fixed URL template for a user's "read" shelf,
// parameterized by account id and 1-based page number.
const shelfURLTemplate = "https://www.goodreads.com/review/list/%d?page=%d&shelf=read"

// DefaultConcurrency is the default number of pages fetched in parallel.
const DefaultConcurrency = 5

// ShelfURL returns the shelf URL for a user and 1-based page number.
func ShelfURL(userID int64, page int) string {
	return fmt.Sprintf(shelfURLTemplate, userID, page)
}

// ProgressType identifies the kind of progress event.
type ProgressType int

// Progress event types emitted during a harvest.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
)

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type      ProgressType
	Page      int
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is called as shelf pages are processed.
type ProgressFunc func(ProgressEvent)

// Harvester fetches every page of a user's shelf and assembles the
// parsed books into a Library. Pages after the first are fetched
// concurrently; books keep page-then-row order regardless.
type Harvester struct {
	Fetcher shelfread.Fetcher
	Parser  shelfread.ShelfParser

	// Pages discovers the page count from the first page's markup.
	// When nil the shelf is assumed to be a single page.
	Pages shelfread.PageCounter

	// Limiter, when set, bounds the request rate against the site.
	Limiter RateLimiter

	// Concurrency limits parallel page fetches.
	// Defaults to DefaultConcurrency when <= 0.
	Concurrency int

	// RetryDelays overrides the backoff schedule between fetch
	// attempts. Defaults to DefaultRetryDelays when nil.
	RetryDelays []RetryDelay
}

// Harvest retrieves and parses all shelf pages for the user.
// The progress callback, if non-nil, receives one Started event and one
// Completed or Failed event per page. Any page failing after retries
// fails the whole harvest; a shelf with no reviews yields an empty
// Library.
func (h *Harvester) Harvest(ctx context.Context, userID int64, progress ProgressFunc) (*shelfread.Library, error) {
	if userID <= 0 {
		return nil, shelfread.Errorf(shelfread.EINVALID, "user ID required")
	}

	firstHTML, err := h.fetchWithRetry(ctx, ShelfURL(userID, 1))
	if err != nil {
		return nil, fmt.Errorf("page 1: %w", err)
	}
	firstResult, err := h.Parser.ParseShelf(firstHTML)
	if err != nil {
		return nil, fmt.Errorf("page 1: %w", err)
	}

	total := 1
	if h.Pages != nil {
		total = h.Pages.PageCount(firstHTML)
	}

	emit(progress, ProgressEvent{Type: ProgressStarted, Total: total})

	var completed atomic.Int64
	completed.Store(1)
	emit(progress, ProgressEvent{Type: ProgressCompleted, Page: 1, Completed: 1, Total: total})

	// Results indexed by page so concurrent fetches preserve order.
	pages := make([]*shelfread.ParseResult, total)
	pages[0] = firstResult

	concurrency := h.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for page := 2; page <= total; page++ {
		g.Go(func() error {
			result, err := h.harvestPage(gctx, userID, page)
			if err != nil {
				emit(progress, ProgressEvent{
					Type:      ProgressFailed,
					Page:      page,
					Completed: int(completed.Load()),
					Total:     total,
					Err:       err,
				})
				return fmt.Errorf("page %d: %w", page, err)
			}

			pages[page-1] = result
			emit(progress, ProgressEvent{
				Type:      ProgressCompleted,
				Page:      page,
				Completed: int(completed.Add(1)),
				Total:     total,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lib := &shelfread.Library{UserID: userID}
	for _, result := range pages {
		lib.Books = append(lib.Books, result.Books...)
	}
	return lib, nil
}

// harvestPage fetches and parses a single shelf page.
func (h *Harvester) harvestPage(ctx context.Context, userID int64, page int) (*shelfread.ParseResult, error) {
	html, err := h.fetchWithRetry(ctx, ShelfURL(userID, page))
	if err != nil {
		return nil, err
	}
	return h.Parser.ParseShelf(html)
}

func emit(fn ProgressFunc, ev ProgressEvent) {
	if fn != nil {
		fn(ev)
	}
}
