package lending

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

type LoanEventRepo interface {
	Append(ctx context.Context, tx *gorm.DB, event *types.LoanEvent) error
	ListByLoan(ctx context.Context, tx *gorm.DB, loanID uuid.UUID) ([]*types.LoanEvent, error)
}

type loanEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLoanEventRepo(db *gorm.DB, baseLog *logger.Logger) LoanEventRepo {
	repoLog := baseLog.With("repo", "LoanEventRepo")
	return &loanEventRepo{db: db, log: repoLog}
}

func (er *loanEventRepo) Append(ctx context.Context, tx *gorm.DB, event *types.LoanEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).Create(event).Error
}

func (er *loanEventRepo) ListByLoan(ctx context.Context, tx *gorm.DB, loanID uuid.UUID) ([]*types.LoanEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.LoanEvent
	if err := transaction.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
