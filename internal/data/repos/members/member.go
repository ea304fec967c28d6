package members

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

type MemberRepo interface {
	Create(ctx context.Context, tx *gorm.DB, member *types.Member) (*types.Member, error)
	GetByID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) (*types.Member, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Member, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Member, error)
}

type memberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	repoLog := baseLog.With("repo", "MemberRepo")
	return &memberRepo{db: db, log: repoLog}
}

func (mr *memberRepo) Create(ctx context.Context, tx *gorm.DB, member *types.Member) (*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (mr *memberRepo) GetByID(ctx context.Context, tx *gorm.DB, memberID uuid.UUID) (*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Member
	if err := transaction.WithContext(ctx).
		Where("id = ?", memberID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// GetByEmail matches the stored value exactly (case-sensitive).
func (mr *memberRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Member
	if err := transaction.WithContext(ctx).
		Where("email = ?", email).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (mr *memberRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Member{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (mr *memberRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Member, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Member
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
