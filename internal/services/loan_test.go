package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/hritamkar/library-management/internal/data/repos"
	"github.com/hritamkar/library-management/internal/data/repos/testutil"
	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/pkg/apperr"
)

type loanFixture struct {
	db    *gorm.DB
	books repos.BookRepo
	loans LoanService
}

// newLoanFixture wires a LoanService against a private in-memory database
// with the clock pinned to `today`. Tests move time with setNow.
func newLoanFixture(t *testing.T, today time.Time) (*loanFixture, func(time.Time)) {
	t.Helper()
	db := testutil.MemoryDB(t)
	log := testutil.Logger(t)

	bookRepo := repos.NewBookRepo(db, log)
	memberRepo := repos.NewMemberRepo(db, log)
	loanRepo := repos.NewLoanRepo(db, log)
	eventRepo := repos.NewLoanEventRepo(db, log)

	svc := NewLoanService(db, log, bookRepo, memberRepo, loanRepo, eventRepo, nil, 0)
	ls := svc.(*loanService)
	ls.now = func() time.Time { return today }
	setNow := func(at time.Time) { ls.now = func() time.Time { return at } }

	return &loanFixture{db: db, books: bookRepo, loans: svc}, setNow
}

func (f *loanFixture) stock(t *testing.T, bookID uuid.UUID) int {
	t.Helper()
	book, err := f.books.GetByID(context.Background(), nil, bookID)
	require.NoError(t, err)
	require.NotNil(t, book)
	return book.Stock
}

var testToday = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func TestCreateLoanStampsServerFields(t *testing.T) {
	f, _ := newLoanFixture(t, testToday)
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, f.db, "Dune", "Herbert", 2)
	member := testutil.SeedMember(t, ctx, f.db, "Alice", "alice@example.com")

	bogusReturn := testToday.AddDate(0, 0, 2)
	bogusFine := 999
	created, err := f.loans.Create(ctx, &types.Loan{
		BookID:     book.ID,
		MemberID:   member.ID,
		LoanDate:   testToday.AddDate(0, -1, 0),
		DueDate:    testToday.AddDate(0, 0, 7),
		ReturnDate: &bogusReturn,
		FineAmount: &bogusFine,
	})
	require.NoError(t, err)
	require.True(t, created.LoanDate.Equal(testToday), "loan date must be server-stamped")
	require.Nil(t, created.ReturnDate)
	require.Nil(t, created.FineAmount)
	require.Equal(t, 1, f.stock(t, book.ID))
}

func TestCreateLoanValidation(t *testing.T) {
	f, _ := newLoanFixture(t, testToday)
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, f.db, "Dune", "Herbert", 1)
	empty := testutil.SeedBook(t, ctx, f.db, "Hyperion", "Simmons", 0)
	member := testutil.SeedMember(t, ctx, f.db, "Alice", "alice@example.com")
	okDue := testToday.AddDate(0, 0, 7)

	missingBook := uuid.New()
	missingMember := uuid.New()

	cases := []struct {
		name    string
		loan    types.Loan
		wantMsg string
	}{
		{"missing due date", types.Loan{BookID: book.ID, MemberID: member.ID},
			"Due date is mandatory for a loan"},
		{"due date in the past", types.Loan{BookID: book.ID, MemberID: member.ID, DueDate: testToday.AddDate(0, 0, -1)},
			"Due date cannot be in the past"},
		{"due date today", types.Loan{BookID: book.ID, MemberID: member.ID, DueDate: testToday},
			"Due date must be at least 1 day after today"},
		{"due date too far", types.Loan{BookID: book.ID, MemberID: member.ID, DueDate: testToday.AddDate(0, 0, 31)},
			"Due date cannot be more than 30 days from today"},
		{"missing book", types.Loan{MemberID: member.ID, DueDate: okDue},
			"Book reference (bookId) is mandatory for a loan"},
		{"unknown book", types.Loan{BookID: missingBook, MemberID: member.ID, DueDate: okDue},
			"Book with ID " + missingBook.String() + " does not exist"},
		{"missing member", types.Loan{BookID: book.ID, DueDate: okDue},
			"Member reference (memberId) is mandatory for a loan"},
		{"unknown member", types.Loan{BookID: book.ID, MemberID: missingMember, DueDate: okDue},
			"Member with ID " + missingMember.String() + " does not exist"},
		{"out of stock", types.Loan{BookID: empty.ID, MemberID: member.ID, DueDate: okDue},
			"Cannot loan a book that is out of stock"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loan := tc.loan
			_, err := f.loans.Create(ctx, &loan)
			require.Error(t, err)
			require.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
			require.Equal(t, tc.wantMsg, err.Error())
		})
	}

	// Nothing above should have touched stock.
	require.Equal(t, 1, f.stock(t, book.ID))
	require.Equal(t, 0, f.stock(t, empty.ID))
}

func TestCreateLoanBoundaryDueDates(t *testing.T) {
	f, _ := newLoanFixture(t, testToday)
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, f.db, "Dune", "Herbert", 2)
	member := testutil.SeedMember(t, ctx, f.db, "Alice", "alice@example.com")

	// Tomorrow and today+30 are both inside the window.
	for _, due := range []time.Time{testToday.AddDate(0, 0, 1), testToday.AddDate(0, 0, 30)} {
		_, err := f.loans.Create(ctx, &types.Loan{BookID: book.ID, MemberID: member.ID, DueDate: due})
		require.NoError(t, err)
	}
	require.Equal(t, 0, f.stock(t, book.ID))
}

func TestCreateLoanAppendsEvent(t *testing.T) {
	f, _ := newLoanFixture(t, testToday)
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, f.db, "Dune", "Herbert", 1)
	member := testutil.SeedMember(t, ctx, f.db, "Alice", "alice@example.com")

	created, err := f.loans.Create(ctx, &types.Loan{BookID: book.ID, MemberID: member.ID, DueDate: testToday.AddDate(0, 0, 7)})
	require.NoError(t, err)

	events, err := f.loans.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, types.LoanEventCreated, events[0].Kind)
}

func TestReturnBookNoFine(t *testing.T) {
	f, setNow := newLoanFixture(t, testToday)
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, f.db, "Dune", "Herbert", 1)
	member := testutil.SeedMember(t, ctx, f.db, "Alice", "alice@example.com")

	created, err := f.loans.Create(ctx, &types.Loan{BookID: book.ID, MemberID: member.ID, DueDate: testToday.AddDate(0, 0, 7)})
	require.NoError(t, err)
	require.Equal(t, 0, f.stock(t, book.ID))

	setNow(testToday.AddDate(0, 0, 5))
	result, err := f.loans.Return(ctx, created.ID.String(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, 0, result.Fine)
	require.Equal(t, "Book returned successfully! No fine incurred.", result.Message)
	require.Equal(t, 1, f.stock(t, book.ID))

	got, err := f.loans.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ReturnDate)
	require.NotNil(t, got.FineAmount)
	require.Equal(t, 0, *got.FineAmount)
}

func TestReturnBookLateFine(t *testing.T) {
	f, setNow := newLoanFixture(t, testToday)
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, f.db, "Dune", "Herbert", 1)
	member := testutil.SeedMember(t, ctx, f.db, "Alice", "alice@example.com")

	created, err := f.loans.Create(ctx, &types.Loan{BookID: book.ID, MemberID: member.ID, DueDate: testToday.AddDate(0, 0, 5)})
	require.NoError(t, err)

	// Three days past due at 10 per day.
	setNow(testToday.AddDate(0, 0, 8))
	result, err := f.loans.Return(ctx, created.ID.String(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, 30, result.Fine)
	require.Equal(t, "Book returned successfully! Fine of 30 applied for 3 days delay.", result.Message)
}

func TestReturnBookEmailMismatch(t *testing.T) {
	f, _ := newLoanFixture(t, testToday)
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, f.db, "Dune", "Herbert", 1)
	member := testutil.SeedMember(t, ctx, f.db, "Alice", "alice@example.com")

	created, err := f.loans.Create(ctx, &types.Loan{BookID: book.ID, MemberID: member.ID, DueDate: testToday.AddDate(0, 0, 7)})
	require.NoError(t, err)

	_, err = f.loans.Return(ctx, created.ID.String(), "mallory@example.com")
	require.Error(t, err)
	require.True(t, apperr.IsAccessDenied(err))
	require.Equal(t, "Email does not match the member who borrowed this book. Access denied.", err.Error())

	// Denied return must leave the loan open and the stock untouched.
	got, err := f.loans.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Nil(t, got.ReturnDate)
	require.Equal(t, 0, f.stock(t, book.ID))
}

func TestReturnBookEmailCaseInsensitive(t *testing.T) {
	f, _ := newLoanFixture(t, testToday)
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, f.db, "Dune", "Herbert", 1)
	member := testutil.SeedMember(t, ctx, f.db, "Alice", "alice@example.com")

	created, err := f.loans.Create(ctx, &types.Loan{BookID: book.ID, MemberID: member.ID, DueDate: testToday.AddDate(0, 0, 7)})
	require.NoError(t, err)

	result, err := f.loans.Return(ctx, created.ID.String(), "ALICE@Example.COM")
	require.NoError(t, err)
	require.Equal(t, 0, result.Fine)
}

func TestReturnBookTwice(t *testing.T) {
	f, _ := newLoanFixture(t, testToday)
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, f.db, "Dune", "Herbert", 1)
	member := testutil.SeedMember(t, ctx, f.db, "Alice", "alice@example.com")

	created, err := f.loans.Create(ctx, &types.Loan{BookID: book.ID, MemberID: member.ID, DueDate: testToday.AddDate(0, 0, 7)})
	require.NoError(t, err)

	first, err := f.loans.Return(ctx, created.ID.String(), "alice@example.com")
	require.NoError(t, err)

	_, err = f.loans.Return(ctx, created.ID.String(), "alice@example.com")
	require.Error(t, err)
	require.True(t, apperr.IsValidation(err))
	require.Equal(t, "Book already returned", err.Error())

	// First return stays intact; stock was incremented exactly once.
	got, err := f.loans.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, first.Fine, *got.FineAmount)
	require.Equal(t, 1, f.stock(t, book.ID))
}

func TestReturnBookInputValidation(t *testing.T) {
	f, _ := newLoanFixture(t, testToday)
	ctx := context.Background()

	_, err := f.loans.Return(ctx, "", "alice@example.com")
	require.True(t, apperr.IsValidation(err))

	_, err = f.loans.Return(ctx, uuid.New().String(), "")
	require.True(t, apperr.IsValidation(err))

	_, err = f.loans.Return(ctx, uuid.New().String(), "alice@example.com")
	require.True(t, apperr.IsNotFound(err))

	_, err = f.loans.Return(ctx, "not-a-uuid", "alice@example.com")
	require.True(t, apperr.IsNotFound(err))
}

func TestConcurrentLoanCreationLastCopy(t *testing.T) {
	f, _ := newLoanFixture(t, testToday)
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, f.db, "Dune", "Herbert", 1)
	m1 := testutil.SeedMember(t, ctx, f.db, "Alice", "alice@example.com")
	m2 := testutil.SeedMember(t, ctx, f.db, "Bob", "bob@example.com")

	results := make([]error, 2)
	var g errgroup.Group
	for i, memberID := range []uuid.UUID{m1.ID, m2.ID} {
		i, memberID := i, memberID
		g.Go(func() error {
			_, err := f.loans.Create(ctx, &types.Loan{
				BookID:   book.ID,
				MemberID: memberID,
				DueDate:  testToday.AddDate(0, 0, 7),
			})
			results[i] = err
			return nil
		})
	}
	require.NoError(t, g.Wait())

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		}
	}
	require.Equal(t, 1, successes, "exactly one borrower gets the last copy")
	require.Equal(t, 0, f.stock(t, book.ID), "stock must never go negative")
}

func TestLoanLifecycleEndToEnd(t *testing.T) {
	f, setNow := newLoanFixture(t, testToday)
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, f.db, "Dune", "Herbert", 2)
	member := testutil.SeedMember(t, ctx, f.db, "Alice", "alice@example.com")

	created, err := f.loans.Create(ctx, &types.Loan{
		BookID:   book.ID,
		MemberID: member.ID,
		DueDate:  testToday.AddDate(0, 0, 5),
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.stock(t, book.ID))

	setNow(testToday.AddDate(0, 0, 8))
	result, err := f.loans.Return(ctx, created.ID.String(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, 30, result.Fine)
	require.Contains(t, result.Message, "Fine of 30")
	require.Equal(t, 2, f.stock(t, book.ID))

	events, err := f.loans.History(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
}
