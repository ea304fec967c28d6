package testutil

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/hritamkar/library-management/internal/data/db"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

var (
	dbOnce sync.Once
	shared *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	memSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns the shared test database. Postgres is used when
// TEST_POSTGRES_DSN is set; otherwise an in-memory sqlite database keeps the
// suite runnable without a server. Callers wanting isolation wrap work in
// Tx or use MemoryDB.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			shared, dbErr = open(postgres.Open(dsn))
			return
		}
		shared, dbErr = open(sqlite.Open("file:repotest?mode=memory&cache=shared&_busy_timeout=5000"))
	})
	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return shared
}

// MemoryDB opens a fresh, migrated sqlite database private to the calling
// test. Service tests need this because their transactions really commit.
func MemoryDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := fmt.Sprintf("svctest%d", memSeq.Add(1))
	d, err := open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)))
	if err != nil {
		tb.Fatalf("failed to init memory db: %v", err)
	}
	return d
}

func Tx(tb testing.TB, d *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := d.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func open(dialector gorm.Dialector) (*gorm.DB, error) {
	d, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer at a time; a single pooled connection keeps
	// concurrent test transactions queued instead of failing with SQLITE_BUSY.
	if dialector.Name() == "sqlite" {
		sqlDB, err := d.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrateAll(d); err != nil {
		return nil, err
	}
	return d, nil
}
