package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"shelfread"
)

// dateLayout is the storage format for read dates (calendar dates, no
// time component).
const dateLayout = "2006-01-02"

// Compile-time interface verification.
var _ shelfread.LibraryService = (*LibraryService)(nil)

// LibraryService implements shelfread.LibraryService using SQLite.
type LibraryService struct {
	db *DB
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(db *DB) *LibraryService {
	return &LibraryService{db: db}
}

// hashBook computes a stable content hash for change detection across
// re-syncs of the same shelf.
func hashBook(book *shelfread.Book) string {
	var b strings.Builder
	b.WriteString(book.FullTitle())
	b.WriteByte('\x00')
	if book.NumberOfPages != nil {
		b.WriteString(strconv.Itoa(*book.NumberOfPages))
	}
	b.WriteByte('\x00')
	if book.DateRead != nil {
		b.WriteString(book.DateRead.Format(dateLayout))
	}
	b.WriteByte('\x00')
	b.WriteString(strconv.Itoa(book.UserRating))
	b.WriteByte('\x00')
	if book.UserReview != nil {
		b.WriteString(*book.UserReview)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String()))
}

// SaveLibrary stores a library, replacing any previously stored books
// for the same user.
func (s *LibraryService) SaveLibrary(ctx context.Context, lib *shelfread.Library) error {
	if err := lib.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO libraries (user_id, synced_at) VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE SET synced_at = excluded.synced_at
	`, lib.UserID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE user_id = ?`, lib.UserID); err != nil {
		return err
	}

	for i, book := range lib.Books {
		var dateRead any
		if book.DateRead != nil {
			dateRead = book.DateRead.Format(dateLayout)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO books (id, user_id, title, author_name, number_of_pages,
				date_read, user_rating, user_review, series_name, series_entry,
				row_hash, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), lib.UserID, book.Title, book.AuthorName,
			book.NumberOfPages, dateRead, book.UserRating, book.UserReview,
			book.SeriesName, book.SeriesEntry, hashBook(book), i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindLibraryByUserID retrieves a stored library with its books in
// discovery order. Returns ENOTFOUND if no library exists for the user.
func (s *LibraryService) FindLibraryByUserID(ctx context.Context, userID int64) (*shelfread.Library, error) {
	var storedID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id FROM libraries WHERE user_id = ?`, userID,
	).Scan(&storedID)
	if err == sql.ErrNoRows {
		return nil, shelfread.Errorf(shelfread.ENOTFOUND, "library %d not found", userID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT title, author_name, number_of_pages, date_read, user_rating,
			user_review, series_name, series_entry
		FROM books
		WHERE user_id = ?
		ORDER BY position
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lib := &shelfread.Library{UserID: userID}
	for rows.Next() {
		var book shelfread.Book
		var dateRead *string
		err := rows.Scan(&book.Title, &book.AuthorName, &book.NumberOfPages,
			&dateRead, &book.UserRating, &book.UserReview,
			&book.SeriesName, &book.SeriesEntry)
		if err != nil {
			return nil, err
		}
		if dateRead != nil {
			t, err := time.Parse(dateLayout, *dateRead)
			if err != nil {
				return nil, fmt.Errorf("failed to parse date_read: %w", err)
			}
			book.DateRead = &t
		}
		lib.Books = append(lib.Books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lib, nil
}

// ListLibraries returns summaries of all stored libraries.
func (s *LibraryService) ListLibraries(ctx context.Context) ([]*shelfread.LibraryInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.user_id, l.synced_at, COUNT(b.id)
		FROM libraries l
		LEFT JOIN books b ON b.user_id = l.user_id
		GROUP BY l.user_id
		ORDER BY l.user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []*shelfread.LibraryInfo
	for rows.Next() {
		var info shelfread.LibraryInfo
		var syncedAt string
		if err := rows.Scan(&info.UserID, &syncedAt, &info.BookCount); err != nil {
			return nil, err
		}
		info.SyncedAt, err = time.Parse(time.RFC3339, syncedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse synced_at: %w", err)
		}
		infos = append(infos, &info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return infos, nil
}

// DeleteLibrary permanently removes a stored library and its books.
// Returns ENOTFOUND if no library exists for the user.
func (s *LibraryService) DeleteLibrary(ctx context.Context, userID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM libraries WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return shelfread.Errorf(shelfread.ENOTFOUND, "library %d not found", userID)
	}
	return nil
}
