package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

type BookRepo interface {
	Create(ctx context.Context, tx *gorm.DB, book *types.Book) (*types.Book, error)
	GetByID(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) (*types.Book, error)
	GetByTitleAuthor(ctx context.Context, tx *gorm.DB, title, author string) (*types.Book, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Book, error)
	AddStock(ctx context.Context, tx *gorm.DB, bookID uuid.UUID, delta int) error
	DecrementStock(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) (bool, error)
	IncrementStock(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) error
}

type bookRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	repoLog := baseLog.With("repo", "BookRepo")
	return &bookRepo{db: db, log: repoLog}
}

func (br *bookRepo) Create(ctx context.Context, tx *gorm.DB, book *types.Book) (*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if err := transaction.WithContext(ctx).Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

func (br *bookRepo) GetByID(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) (*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Book
	if err := transaction.WithContext(ctx).
		Where("id = ?", bookID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (br *bookRepo) GetByTitleAuthor(ctx context.Context, tx *gorm.DB, title, author string) (*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Book
	if err := transaction.WithContext(ctx).
		Where("title = ? AND author = ?", title, author).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (br *bookRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Book, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.Book
	if err := transaction.WithContext(ctx).
		Order("title asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *bookRepo) AddStock(ctx context.Context, tx *gorm.DB, bookID uuid.UUID, delta int) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Book{}).
		Where("id = ?", bookID).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta)).Error
}

// DecrementStock takes one copy off the shelf. The WHERE clause carries the
// stock > 0 guard so the check and the write are a single statement; the
// returned bool is false when no copy was available.
func (br *bookRepo) DecrementStock(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Book{}).
		Where("id = ? AND stock > 0", bookID).
		UpdateColumn("stock", gorm.Expr("stock - ?", 1))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (br *bookRepo) IncrementStock(ctx context.Context, tx *gorm.DB, bookID uuid.UUID) error {
	return br.AddStock(ctx, tx, bookID, 1)
}
