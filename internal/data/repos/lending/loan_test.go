package lending

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hritamkar/library-management/internal/data/repos/testutil"
)

func TestLoanRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewLoanRepo(db, testutil.Logger(t))
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, tx, "Dune", "Herbert", 2)
	member := testutil.SeedMember(t, ctx, tx, "Bob", "bob@example.com")

	loanDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	dueDate := loanDate.AddDate(0, 0, 14)
	loan := testutil.SeedLoan(t, ctx, tx, book.ID, member.ID, loanDate, dueDate)

	got, err := repo.GetByID(ctx, tx, loan.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.BookID != book.ID || got.ReturnDate != nil {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	missing, err := repo.GetByID(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID (missing): expected nil, got %+v", missing)
	}

	byMember, err := repo.ListByMember(ctx, tx, member.ID)
	if err != nil {
		t.Fatalf("ListByMember: %v", err)
	}
	if len(byMember) != 1 || byMember[0].ID != loan.ID {
		t.Fatalf("ListByMember: unexpected result: %+v", byMember)
	}
}

func TestLoanRepoMarkReturned(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewLoanRepo(db, testutil.Logger(t))
	ctx := context.Background()

	book := testutil.SeedBook(t, ctx, tx, "Hyperion", "Simmons", 1)
	member := testutil.SeedMember(t, ctx, tx, "Carol", "carol@example.com")

	loanDate := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	loan := testutil.SeedLoan(t, ctx, tx, book.ID, member.ID, loanDate, loanDate.AddDate(0, 0, 7))

	returnDate := loanDate.AddDate(0, 0, 10)
	ok, err := repo.MarkReturned(ctx, tx, loan.ID, returnDate, 30)
	if err != nil {
		t.Fatalf("MarkReturned: %v", err)
	}
	if !ok {
		t.Fatalf("MarkReturned: expected success on open loan")
	}

	got, err := repo.GetByID(ctx, tx, loan.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ReturnDate == nil || !got.ReturnDate.Equal(returnDate) {
		t.Fatalf("MarkReturned: return date not set: %+v", got)
	}
	if got.FineAmount == nil || *got.FineAmount != 30 {
		t.Fatalf("MarkReturned: fine not set: %+v", got)
	}

	// A returned loan is terminal; a second attempt must not match any row.
	ok, err = repo.MarkReturned(ctx, tx, loan.ID, returnDate.AddDate(0, 0, 1), 40)
	if err != nil {
		t.Fatalf("MarkReturned (repeat): %v", err)
	}
	if ok {
		t.Fatalf("MarkReturned (repeat): expected refusal")
	}
	got, err = repo.GetByID(ctx, tx, loan.ID)
	if err != nil {
		t.Fatalf("GetByID after repeat: %v", err)
	}
	if *got.FineAmount != 30 || !got.ReturnDate.Equal(returnDate) {
		t.Fatalf("MarkReturned (repeat): first return overwritten: %+v", got)
	}
}
