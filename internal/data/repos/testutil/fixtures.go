package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/hritamkar/library-management/internal/domain"
)

func SeedBook(tb testing.TB, ctx context.Context, tx *gorm.DB, title, author string, stock int) *types.Book {
	tb.Helper()
	b := &types.Book{
		ID:     uuid.New(),
		Title:  title,
		Author: author,
		Stock:  stock,
	}
	if err := tx.WithContext(ctx).Create(b).Error; err != nil {
		tb.Fatalf("seed book: %v", err)
	}
	return b
}

func SeedMember(tb testing.TB, ctx context.Context, tx *gorm.DB, name, email string) *types.Member {
	tb.Helper()
	m := &types.Member{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed member: %v", err)
	}
	return m
}

func SeedLoan(tb testing.TB, ctx context.Context, tx *gorm.DB, bookID, memberID uuid.UUID, loanDate, dueDate time.Time) *types.Loan {
	tb.Helper()
	l := &types.Loan{
		ID:       uuid.New(),
		BookID:   bookID,
		MemberID: memberID,
		LoanDate: loanDate,
		DueDate:  dueDate,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed loan: %v", err)
	}
	return l
}
