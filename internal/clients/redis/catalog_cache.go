package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	types "github.com/hritamkar/library-management/internal/domain"
	"github.com/hritamkar/library-management/internal/pkg/logger"
	"github.com/hritamkar/library-management/internal/services"
	"github.com/hritamkar/library-management/internal/utils"
)

// CatalogCache caches book rows in Redis under book:<uuid> with a short TTL.
// Entries are written after a database read and deleted whenever stock or any
// other field changes, so a cached row is never older than the TTL and never
// survives a write.
type catalogCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewCatalogCache connects to REDIS_ADDR. The address is required here;
// callers that want caching to be optional check the env var before calling.
func NewCatalogCache(log *logger.Logger) (services.CatalogCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("REDIS_CACHE_TTL_SECONDS", 300, log)

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &catalogCache{
		log: log.With("service", "RedisCatalogCache"),
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func bookKey(bookID uuid.UUID) string {
	return "book:" + bookID.String()
}

func (c *catalogCache) GetBook(ctx context.Context, bookID uuid.UUID) (*types.Book, bool) {
	raw, err := c.rdb.Get(ctx, bookKey(bookID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Cache read failed", "book_id", bookID.String(), "error", err)
		}
		return nil, false
	}
	var book types.Book
	if err := json.Unmarshal(raw, &book); err != nil {
		c.log.Warn("Cache entry corrupt, dropping", "book_id", bookID.String(), "error", err)
		_ = c.rdb.Del(ctx, bookKey(bookID)).Err()
		return nil, false
	}
	return &book, true
}

func (c *catalogCache) SetBook(ctx context.Context, book *types.Book) {
	if book == nil {
		return
	}
	raw, err := json.Marshal(book)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, bookKey(book.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", "book_id", book.ID.String(), "error", err)
	}
}

func (c *catalogCache) InvalidateBook(ctx context.Context, bookID uuid.UUID) {
	if err := c.rdb.Del(ctx, bookKey(bookID)).Err(); err != nil {
		c.log.Warn("Cache invalidation failed", "book_id", bookID.String(), "error", err)
	}
}

func (c *catalogCache) Close() error {
	return c.rdb.Close()
}
