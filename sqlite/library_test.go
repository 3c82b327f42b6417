package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfread"
	"shelfread/sqlite"
)

func ptr[T any](v T) *T { return &v }

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testLibrary() *shelfread.Library {
	d := time.Date(2009, time.December, 15, 0, 0, 0, 0, time.UTC)
	return &shelfread.Library{
		UserID: 42,
		Books: []*shelfread.Book{
			{
				Title:         "Foundation",
				AuthorName:    "Asimov, Isaac",
				NumberOfPages: ptr(255),
				DateRead:      &d,
				UserRating:    5,
				UserReview:    ptr("A classic."),
				SeriesName:    ptr("Foundation"),
				SeriesEntry:   ptr(1.0),
			},
			{
				Title:      "Watchmen",
				AuthorName: "Moore, Alan",
			},
		},
	}
}

func TestLibraryService_SaveLibrary(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a library", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewLibraryService(db)
		ctx := context.Background()

		lib := testLibrary()
		require.NoError(t, s.SaveLibrary(ctx, lib))

		got, err := s.FindLibraryByUserID(ctx, 42)
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(lib, got))
	})

	t.Run("replaces previously stored books", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewLibraryService(db)
		ctx := context.Background()

		require.NoError(t, s.SaveLibrary(ctx, testLibrary()))

		smaller := &shelfread.Library{
			UserID: 42,
			Books:  []*shelfread.Book{{Title: "Dune", AuthorName: "Herbert, Frank"}},
		}
		require.NoError(t, s.SaveLibrary(ctx, smaller))

		got, err := s.FindLibraryByUserID(ctx, 42)
		require.NoError(t, err)
		require.Len(t, got.Books, 1)
		assert.Equal(t, "Dune", got.Books[0].Title)
	})

	t.Run("rejects an invalid library", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewLibraryService(db)

		err := s.SaveLibrary(context.Background(), &shelfread.Library{})
		require.Error(t, err)
		assert.Equal(t, shelfread.EINVALID, shelfread.ErrorCode(err))
	})

	t.Run("preserves book order", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewLibraryService(db)
		ctx := context.Background()

		lib := &shelfread.Library{UserID: 7}
		for _, title := range []string{"c", "a", "b"} {
			lib.Books = append(lib.Books, &shelfread.Book{Title: title, AuthorName: "x"})
		}
		require.NoError(t, s.SaveLibrary(ctx, lib))

		got, err := s.FindLibraryByUserID(ctx, 7)
		require.NoError(t, err)
		require.Len(t, got.Books, 3)
		assert.Equal(t, "c", got.Books[0].Title)
		assert.Equal(t, "a", got.Books[1].Title)
		assert.Equal(t, "b", got.Books[2].Title)
	})
}

func TestLibraryService_FindLibraryByUserID(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for unknown user", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewLibraryService(db)

		_, err := s.FindLibraryByUserID(context.Background(), 99)
		require.Error(t, err)
		assert.Equal(t, shelfread.ENOTFOUND, shelfread.ErrorCode(err))
	})

	t.Run("returns an empty library when the shelf had no reviews", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewLibraryService(db)
		ctx := context.Background()

		require.NoError(t, s.SaveLibrary(ctx, &shelfread.Library{UserID: 5}))

		got, err := s.FindLibraryByUserID(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, got.Books)
	})
}

func TestLibraryService_ListLibraries(t *testing.T) {
	t.Parallel()

	db := mustOpenDB(t)
	s := sqlite.NewLibraryService(db)
	ctx := context.Background()

	infos, err := s.ListLibraries(ctx)
	require.NoError(t, err)
	assert.Empty(t, infos)

	require.NoError(t, s.SaveLibrary(ctx, testLibrary()))
	require.NoError(t, s.SaveLibrary(ctx, &shelfread.Library{UserID: 7}))

	infos, err = s.ListLibraries(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, int64(7), infos[0].UserID)
	assert.Equal(t, 0, infos[0].BookCount)
	assert.Equal(t, int64(42), infos[1].UserID)
	assert.Equal(t, 2, infos[1].BookCount)
	assert.False(t, infos[1].SyncedAt.IsZero())
}

func TestLibraryService_DeleteLibrary(t *testing.T) {
	t.Parallel()

	t.Run("removes the library and its books", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewLibraryService(db)
		ctx := context.Background()

		require.NoError(t, s.SaveLibrary(ctx, testLibrary()))
		require.NoError(t, s.DeleteLibrary(ctx, 42))

		_, err := s.FindLibraryByUserID(ctx, 42)
		require.Error(t, err)
		assert.Equal(t, shelfread.ENOTFOUND, shelfread.ErrorCode(err))

		var count int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books WHERE user_id = 42").Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("returns ENOTFOUND for unknown user", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewLibraryService(db)

		err := s.DeleteLibrary(context.Background(), 99)
		require.Error(t, err)
		assert.Equal(t, shelfread.ENOTFOUND, shelfread.ErrorCode(err))
	})
}
