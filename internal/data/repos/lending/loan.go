package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

type LoanRepo interface {
	Create(ctx context.Context, tx *gorm.DB, loan *types.Loan) (*types.Loan, error)
	GetByID(ctx context.Context, tx *gorm.DB, loanID uuid.UUID) (*types.Loan, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Loan, error)
	ListByMember(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) ([]*types.Loan, error)
	MarkReturned(ctx context.Context, tx *gorm.DB, loanID uuid.UUID, returnDate time.Time, fine int) (bool, error)
}

type loanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLoanRepo(db *gorm.DB, baseLog *logger.Logger) LoanRepo {
	repoLog := baseLog.With("repo", "LoanRepo")
	return &loanRepo{db: db, log: repoLog}
}

func (lr *loanRepo) Create(ctx context.Context, tx *gorm.DB, loan *types.Loan) (*types.Loan, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if err := transaction.WithContext(ctx).Create(loan).Error; err != nil {
		return nil, err
	}
	return loan, nil
}

func (lr *loanRepo) GetByID(ctx context.Context, tx *gorm.DB, loanID uuid.UUID) (*types.Loan, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Loan
	if err := transaction.WithContext(ctx).
		Where("id = ?", loanID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (lr *loanRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Loan, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Loan
	if err := transaction.WithContext(ctx).
		Order("loan_date desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *loanRepo) ListByMember(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) ([]*types.Loan, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Loan
	if err := transaction.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("loan_date desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// MarkReturned stamps return_date and fine_amount in one conditional update.
// The return_date IS NULL guard makes RETURNED a terminal state even under
// concurrent return attempts; false means the loan was already returned.
func (lr *loanRepo) MarkReturned(ctx context.Context, tx *gorm.DB, loanID uuid.UUID, returnDate time.Time, fine int) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Loan{}).
		Where("id = ? AND return_date IS NULL", loanID).
		Updates(map[string]any{
			"return_date": returnDate,
			"fine_amount": fine,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
