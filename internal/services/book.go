package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/hritamkar/library-management/internal/data/repos"
	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/pkg/apperr"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

type BookService interface {
	// Create validates the payload and either inserts a new book or, when a
	// book with the exact same (title, author) already exists, folds the
	// incoming stock into that row and returns it. Callers must not assume
	// the returned ID is newly minted.
	Create(ctx context.Context, book *types.Book) (*types.Book, error)
	Get(ctx context.Context, bookID uuid.UUID) (*types.Book, error)
	List(ctx context.Context) ([]*types.Book, error)
}

type bookService struct {
	db       *gorm.DB
	log      *logger.Logger
	bookRepo repos.BookRepo
	cache    CatalogCache
	loads    singleflight.Group
}

func NewBookService(db *gorm.DB, log *logger.Logger, bookRepo repos.BookRepo, cache CatalogCache) BookService {
	serviceLog := log.With("service", "BookService")
	return &bookService{
		db:       db,
		log:      serviceLog,
		bookRepo: bookRepo,
		cache:    cache,
	}
}

func (bs *bookService) Create(ctx context.Context, book *types.Book) (*types.Book, error) {
	if strings.TrimSpace(book.Title) == "" {
		return nil, apperr.Validation("Title is mandatory")
	}
	if strings.TrimSpace(book.Author) == "" {
		return nil, apperr.Validation("Author is mandatory")
	}
	if book.Stock < 0 {
		return nil, apperr.Validation("Stock cannot be negative")
	}

	var out *types.Book
	if err := bs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := bs.bookRepo.GetByTitleAuthor(ctx, tx, book.Title, book.Author)
		if err != nil {
			return err
		}

		if existing != nil {
			if err := bs.bookRepo.AddStock(ctx, tx, existing.ID, book.Stock); err != nil {
				return err
			}
			updated, err := bs.bookRepo.GetByID(ctx, tx, existing.ID)
			if err != nil {
				return err
			}
			out = updated
			return nil
		}

		if book.ID == uuid.Nil {
			book.ID = uuid.New()
		}
		created, err := bs.bookRepo.Create(ctx, tx, book)
		if err != nil {
			return err
		}
		out = created
		return nil
	}); err != nil {
		bs.log.Warn("Create book transaction error", "error", err)
		return nil, err
	}

	if bs.cache != nil {
		bs.cache.InvalidateBook(ctx, out.ID)
	}
	return out, nil
}

func (bs *bookService) Get(ctx context.Context, bookID uuid.UUID) (*types.Book, error) {
	if bs.cache != nil {
		if cached, ok := bs.cache.GetBook(ctx, bookID); ok {
			return cached, nil
		}
	}

	// Collapse concurrent misses for the same book into one database read.
	v, err, _ := bs.loads.Do(bookID.String(), func() (any, error) {
		book, err := bs.loadBook(ctx, bookID)
		if err != nil {
			return nil, err
		}
		if bs.cache != nil {
			bs.cache.SetBook(ctx, book)
		}
		return book, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.Book), nil
}

func (bs *bookService) loadBook(ctx context.Context, bookID uuid.UUID) (*types.Book, error) {
	book, err := bs.bookRepo.GetByID(ctx, nil, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, apperr.NotFound("Book with ID " + bookID.String() + " does not exist")
	}
	return book, nil
}

func (bs *bookService) List(ctx context.Context) ([]*types.Book, error) {
	return bs.bookRepo.List(ctx, nil)
}
