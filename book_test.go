package shelfread_test

import (
	"testing"
	"time"

	"shelfread"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestBook_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *shelfread.Book {
		d := time.Date(2009, time.December, 15, 0, 0, 0, 0, time.UTC)
		return &shelfread.Book{
			Title:      "Watchmen",
			AuthorName: "Moore, Alan",
			DateRead:   &d,
			UserRating: 5,
		}
	}

	t.Run("accepts a complete book", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, valid().Validate(shelfread.ValidationStrict))
	})

	t.Run("rejects missing title", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.Title = ""
		err := b.Validate(shelfread.ValidationLenient)
		require.Error(t, err)
		assert.Equal(t, shelfread.EINVALID, shelfread.ErrorCode(err))
	})

	t.Run("rejects missing author", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.AuthorName = ""
		err := b.Validate(shelfread.ValidationLenient)
		require.Error(t, err)
		assert.Equal(t, shelfread.EINVALID, shelfread.ErrorCode(err))
	})

	t.Run("strict mode requires read date", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.DateRead = nil
		assert.NoError(t, b.Validate(shelfread.ValidationLenient))
		err := b.Validate(shelfread.ValidationStrict)
		require.Error(t, err)
		assert.Equal(t, shelfread.EINVALID, shelfread.ErrorCode(err))
	})

	t.Run("rejects series name without entry", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.SeriesName = ptr("Foundation")
		err := b.Validate(shelfread.ValidationLenient)
		require.Error(t, err)
		assert.Equal(t, shelfread.EINVALID, shelfread.ErrorCode(err))
	})

	t.Run("rejects series entry without name", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.SeriesEntry = ptr(1.0)
		err := b.Validate(shelfread.ValidationLenient)
		require.Error(t, err)
		assert.Equal(t, shelfread.EINVALID, shelfread.ErrorCode(err))
	})

	t.Run("accepts series name and entry together", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.SeriesName = ptr("Foundation")
		b.SeriesEntry = ptr(1.0)
		assert.NoError(t, b.Validate(shelfread.ValidationStrict))
	})

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		t.Parallel()

		b := valid()
		b.UserRating = 6
		err := b.Validate(shelfread.ValidationLenient)
		require.Error(t, err)
		assert.Equal(t, shelfread.EINVALID, shelfread.ErrorCode(err))
	})
}

func TestBook_FullTitle(t *testing.T) {
	t.Parallel()

	t.Run("without series", func(t *testing.T) {
		t.Parallel()

		b := &shelfread.Book{Title: "Watchmen", AuthorName: "Moore, Alan"}
		assert.Equal(t, "Watchmen by Moore, Alan", b.FullTitle())
	})

	t.Run("whole series entry renders without decimal point", func(t *testing.T) {
		t.Parallel()

		b := &shelfread.Book{
			Title:       "Foundation",
			AuthorName:  "Asimov, Isaac",
			SeriesName:  ptr("Foundation"),
			SeriesEntry: ptr(1.0),
		}
		assert.Equal(t, "Foundation (Foundation, #1) by Asimov, Isaac", b.FullTitle())
	})

	t.Run("fractional series entry keeps its decimal", func(t *testing.T) {
		t.Parallel()

		b := &shelfread.Book{
			Title:       "The Bane of the Black Sword",
			AuthorName:  "Moorcock, Michael",
			SeriesName:  ptr("Elric Saga"),
			SeriesEntry: ptr(2.5),
		}
		assert.Equal(t, "The Bane of the Black Sword (Elric Saga, #2.5) by Moorcock, Michael", b.FullTitle())
	})
}

func TestBookColumns(t *testing.T) {
	t.Parallel()

	cols := shelfread.BookColumns()
	require.Len(t, cols, 8)

	labels := make([]string, len(cols))
	for i, c := range cols {
		labels[i] = c.Label
	}
	assert.Equal(t, []string{
		"Title", "Author Name", "Number of Pages", "Date Read",
		"User Rating", "User Review", "Series Name", "Series Entry",
	}, labels)

	assert.Equal(t, shelfread.ColumnText, cols[0].Type)
	assert.Equal(t, shelfread.ColumnInteger, cols[2].Type)
	assert.Equal(t, shelfread.ColumnDate, cols[3].Type)
	assert.Equal(t, shelfread.ColumnFloat, cols[7].Type)
}

func TestBook_Row(t *testing.T) {
	t.Parallel()

	t.Run("values follow the canonical column order", func(t *testing.T) {
		t.Parallel()

		d := time.Date(2009, time.December, 15, 0, 0, 0, 0, time.UTC)
		b := &shelfread.Book{
			Title:         "Foundation",
			AuthorName:    "Asimov, Isaac",
			NumberOfPages: ptr(255),
			DateRead:      &d,
			UserRating:    5,
			UserReview:    ptr("A classic."),
			SeriesName:    ptr("Foundation"),
			SeriesEntry:   ptr(1.0),
		}

		row := b.Row()
		require.Len(t, row, len(shelfread.BookColumns()))
		assert.Equal(t, "Foundation", row[0])
		assert.Equal(t, "Asimov, Isaac", row[1])
		assert.Equal(t, 255, row[2])
		assert.Equal(t, d, row[3])
		assert.Equal(t, 5, row[4])
		assert.Equal(t, "A classic.", row[5])
		assert.Equal(t, "Foundation", row[6])
		assert.Equal(t, 1.0, row[7])
	})

	t.Run("absent optional fields are nil", func(t *testing.T) {
		t.Parallel()

		b := &shelfread.Book{Title: "Watchmen", AuthorName: "Moore, Alan"}
		row := b.Row()
		assert.Nil(t, row[2])
		assert.Nil(t, row[3])
		assert.Equal(t, 0, row[4])
		assert.Nil(t, row[5])
		assert.Nil(t, row[6])
		assert.Nil(t, row[7])
	})
}

func TestLibrary_Validate(t *testing.T) {
	t.Parallel()

	lib := &shelfread.Library{UserID: 1}
	assert.NoError(t, lib.Validate())

	lib = &shelfread.Library{}
	err := lib.Validate()
	require.Error(t, err)
	assert.Equal(t, shelfread.EINVALID, shelfread.ErrorCode(err))
}
