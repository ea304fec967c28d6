package services

import (
	"context"

	"github.com/google/uuid"

	types "github.com/hritamkar/library-management/internal/domain"
)

// CatalogCache is a read-through cache for catalog lookups. Implementations
// are best-effort: a miss or a backend error both surface as (nil, false) and
// the caller falls back to the database.
type CatalogCache interface {
	GetBook(ctx context.Context, bookID uuid.UUID) (*types.Book, bool)
	SetBook(ctx context.Context, book *types.Book)
	InvalidateBook(ctx context.Context, bookID uuid.UUID)
}
