package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/hritamkar/library-management/internal/data/repos"
	"github.com/hritamkar/library-management/internal/data/repos/testutil"
	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/pkg/apperr"
)

func newBookService(t *testing.T) BookService {
	t.Helper()
	db := testutil.MemoryDB(t)
	log := testutil.Logger(t)
	return NewBookService(db, log, repos.NewBookRepo(db, log), nil)
}

func TestCreateBookValidation(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		book    types.Book
		wantMsg string
	}{
		{"missing title", types.Book{Author: "Herbert", Stock: 1}, "Title is mandatory"},
		{"blank title", types.Book{Title: "   ", Author: "Herbert", Stock: 1}, "Title is mandatory"},
		{"missing author", types.Book{Title: "Dune", Stock: 1}, "Author is mandatory"},
		{"negative stock", types.Book{Title: "Dune", Author: "Herbert", Stock: -1}, "Stock cannot be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			book := tc.book
			_, err := svc.Create(ctx, &book)
			require.Error(t, err)
			require.True(t, apperr.IsValidation(err))
			require.Equal(t, tc.wantMsg, err.Error())
		})
	}
}

func TestCreateBookMergesExistingTitleAuthor(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, &types.Book{Title: "Dune", Author: "Herbert", Stock: 3})
	require.NoError(t, err)

	// Same title and author folds into the existing row instead of creating
	// a second one.
	merged, err := svc.Create(ctx, &types.Book{Title: "Dune", Author: "Herbert", Stock: 2})
	require.NoError(t, err)
	require.Equal(t, first.ID, merged.ID)
	require.Equal(t, 5, merged.Stock)

	books, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
}

func TestCreateBookDifferentAuthorIsNewRow(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, &types.Book{Title: "Collected Poems", Author: "Auden", Stock: 1})
	require.NoError(t, err)

	second, err := svc.Create(ctx, &types.Book{Title: "Collected Poems", Author: "Yeats", Stock: 1})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestGetBookNotFound(t *testing.T) {
	svc := newBookService(t)

	missing := uuid.New()
	_, err := svc.Get(context.Background(), missing)
	require.Error(t, err)
	require.True(t, apperr.IsNotFound(err))
	require.Equal(t, "Book with ID "+missing.String()+" does not exist", err.Error())
}

func TestGetBookRoundTrip(t *testing.T) {
	svc := newBookService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &types.Book{Title: "Dune", Author: "Herbert", Stock: 4})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, 4, got.Stock)
}
