package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/hritamkar/library-management/internal/data/repos"
	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/pkg/apperr"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

// DefaultFinePerDay is the fallback late fee when no rate is configured.
const DefaultFinePerDay = 10

// ReturnResult is what the returnBook action hands back to the caller.
type ReturnResult struct {
	Message string `json:"message"`
	Fine    int    `json:"fine"`
}

type LoanService interface {
	// Create runs the full loan-creation validation chain and, on success,
	// persists the loan and takes one copy off the shelf in a single
	// transaction. The loan date is always the server's current date.
	Create(ctx context.Context, loan *types.Loan) (*types.Loan, error)

	// Return executes the returnBook action for (loanID, email). The email
	// must match the borrowing member's email, compared case-insensitively.
	Return(ctx context.Context, loanID, email string) (*ReturnResult, error)

	Get(ctx context.Context, loanID uuid.UUID) (*types.Loan, error)
	List(ctx context.Context) ([]*types.Loan, error)
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]*types.Loan, error)
	History(ctx context.Context, loanID uuid.UUID) ([]*types.LoanEvent, error)
}

type loanService struct {
	db         *gorm.DB
	log        *logger.Logger
	bookRepo   repos.BookRepo
	memberRepo repos.MemberRepo
	loanRepo   repos.LoanRepo
	eventRepo  repos.LoanEventRepo
	cache      CatalogCache
	finePerDay int
	now        func() time.Time
}

func NewLoanService(
	db *gorm.DB,
	log *logger.Logger,
	bookRepo repos.BookRepo,
	memberRepo repos.MemberRepo,
	loanRepo repos.LoanRepo,
	eventRepo repos.LoanEventRepo,
	cache CatalogCache,
	finePerDay int,
) LoanService {
	serviceLog := log.With("service", "LoanService")
	if finePerDay <= 0 {
		finePerDay = DefaultFinePerDay
	}
	return &loanService{
		db:         db,
		log:        serviceLog,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		loanRepo:   loanRepo,
		eventRepo:  eventRepo,
		cache:      cache,
		finePerDay: finePerDay,
		now:        time.Now,
	}
}

func (ls *loanService) Create(ctx context.Context, loan *types.Loan) (*types.Loan, error) {
	today := dateOnly(ls.now())

	// Server-stamped fields win over anything the client sent.
	loan.LoanDate = today
	loan.ReturnDate = nil
	loan.FineAmount = nil

	if loan.DueDate.IsZero() {
		return nil, apperr.Validation("Due date is mandatory for a loan")
	}
	due := dateOnly(loan.DueDate)
	loan.DueDate = due

	if due.Before(today) {
		return nil, apperr.Validation("Due date cannot be in the past")
	}
	if !due.After(today) {
		return nil, apperr.Validation("Due date must be at least 1 day after today")
	}
	if due.After(today.AddDate(0, 0, 30)) {
		return nil, apperr.Validation("Due date cannot be more than 30 days from today")
	}
	if loan.BookID == uuid.Nil {
		return nil, apperr.Validation("Book reference (bookId) is mandatory for a loan")
	}

	var out *types.Loan
	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		book, err := ls.bookRepo.GetByID(ctx, tx, loan.BookID)
		if err != nil {
			return err
		}
		if book == nil {
			return apperr.Validation("Book with ID " + loan.BookID.String() + " does not exist")
		}

		if loan.MemberID == uuid.Nil {
			return apperr.Validation("Member reference (memberId) is mandatory for a loan")
		}
		member, err := ls.memberRepo.GetByID(ctx, tx, loan.MemberID)
		if err != nil {
			return err
		}
		if member == nil {
			return apperr.Validation("Member with ID " + loan.MemberID.String() + " does not exist")
		}

		if book.Stock <= 0 {
			return apperr.Validation("Cannot loan a book that is out of stock")
		}

		loan.ID = uuid.New()
		created, err := ls.loanRepo.Create(ctx, tx, loan)
		if err != nil {
			return err
		}

		// The stock check above is advisory only; this conditional update is
		// what actually guarantees stock never goes below zero. Two racing
		// creates at stock=1 both pass the check, but only one decrements.
		ok, err := ls.bookRepo.DecrementStock(ctx, tx, loan.BookID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("Cannot loan a book that is out of stock")
		}

		if err := ls.appendEvent(ctx, tx, created.ID, types.LoanEventCreated, map[string]any{
			"book_id":   created.BookID.String(),
			"member_id": created.MemberID.String(),
			"due_date":  created.DueDate.Format("2006-01-02"),
		}); err != nil {
			return err
		}

		out = created
		return nil
	}); err != nil {
		return nil, err
	}

	if ls.cache != nil {
		ls.cache.InvalidateBook(ctx, out.BookID)
	}
	ls.log.Info("Loan created", "loan_id", out.ID.String(), "book_id", out.BookID.String(), "member_id", out.MemberID.String())
	return out, nil
}

func (ls *loanService) Return(ctx context.Context, loanID, email string) (*ReturnResult, error) {
	if strings.TrimSpace(loanID) == "" {
		return nil, apperr.Validation("Loan ID is mandatory to return a book")
	}
	if strings.TrimSpace(email) == "" {
		return nil, apperr.Validation("Email is mandatory to return a book")
	}
	id, err := uuid.Parse(loanID)
	if err != nil {
		return nil, apperr.NotFound("Loan with ID " + loanID + " does not exist")
	}

	today := dateOnly(ls.now())

	var (
		result *ReturnResult
		bookID uuid.UUID
	)
	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loan, err := ls.loanRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if loan == nil {
			return apperr.NotFound("Loan with ID " + loanID + " does not exist")
		}
		if loan.ReturnDate != nil {
			return apperr.Validation("Book already returned")
		}

		member, err := ls.memberRepo.GetByID(ctx, tx, loan.MemberID)
		if err != nil {
			return err
		}
		if member == nil {
			return apperr.NotFound("Member not found for this loan")
		}
		if !strings.EqualFold(email, member.Email) {
			return apperr.AccessDenied("Email does not match the member who borrowed this book. Access denied.")
		}

		delayDays := daysBetween(dateOnly(loan.DueDate), today)
		if delayDays < 0 {
			delayDays = 0
		}
		fine := delayDays * ls.finePerDay

		ok, err := ls.loanRepo.MarkReturned(ctx, tx, loan.ID, today, fine)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("Book already returned")
		}
		if err := ls.bookRepo.IncrementStock(ctx, tx, loan.BookID); err != nil {
			return err
		}

		if err := ls.appendEvent(ctx, tx, loan.ID, types.LoanEventReturned, map[string]any{
			"fine":       fine,
			"delay_days": delayDays,
		}); err != nil {
			return err
		}

		message := "Book returned successfully! No fine incurred."
		if fine > 0 {
			message = fmt.Sprintf("Book returned successfully! Fine of %d applied for %d days delay.", fine, delayDays)
		}
		result = &ReturnResult{Message: message, Fine: fine}
		bookID = loan.BookID
		return nil
	}); err != nil {
		return nil, err
	}

	if ls.cache != nil {
		ls.cache.InvalidateBook(ctx, bookID)
	}
	ls.log.Info("Loan returned", "loan_id", id.String(), "fine", result.Fine)
	return result, nil
}

func (ls *loanService) Get(ctx context.Context, loanID uuid.UUID) (*types.Loan, error) {
	loan, err := ls.loanRepo.GetByID(ctx, nil, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, apperr.NotFound("Loan with ID " + loanID.String() + " does not exist")
	}
	return loan, nil
}

func (ls *loanService) List(ctx context.Context) ([]*types.Loan, error) {
	return ls.loanRepo.List(ctx, nil)
}

func (ls *loanService) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*types.Loan, error) {
	return ls.loanRepo.ListByMember(ctx, nil, memberID)
}

func (ls *loanService) History(ctx context.Context, loanID uuid.UUID) ([]*types.LoanEvent, error) {
	return ls.eventRepo.ListByLoan(ctx, nil, loanID)
}

func (ls *loanService) appendEvent(ctx context.Context, tx *gorm.DB, loanID uuid.UUID, kind string, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return ls.eventRepo.Append(ctx, tx, &types.LoanEvent{
		ID:      uuid.New(),
		LoanID:  loanID,
		Kind:    kind,
		Payload: datatypes.JSON(raw),
	})
}

// dateOnly truncates to midnight UTC; loan arithmetic is in whole days.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
