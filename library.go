package shelfread

import (
	"context"
	"time"
)

// Library represents the full set of reviewed books for one Goodreads
// account. Books are ordered by page-then-row discovery order.
type Library struct {
	UserID int64
	Books  []*Book
}

// Validate returns an error if the library contains invalid fields.
func (l *Library) Validate() error {
	if l.UserID <= 0 {
		return Errorf(EINVALID, "library user ID required")
	}
	return nil
}

// LibraryInfo summarizes a stored library without loading its books.
type LibraryInfo struct {
	UserID    int64
	BookCount int
	SyncedAt  time.Time
}

// LibraryService represents a service for persisting libraries.
type LibraryService interface {
	// SaveLibrary stores a library, replacing any previously stored
	// books for the same user.
	SaveLibrary(ctx context.Context, lib *Library) error

	// FindLibraryByUserID retrieves a stored library.
	// Returns ENOTFOUND if no library exists for the user.
	FindLibraryByUserID(ctx context.Context, userID int64) (*Library, error)

	// ListLibraries returns summaries of all stored libraries.
	ListLibraries(ctx context.Context) ([]*LibraryInfo, error)

	// DeleteLibrary permanently removes a stored library and its books.
	// Returns ENOTFOUND if no library exists for the user.
	DeleteLibrary(ctx context.Context, userID int64) error
}
