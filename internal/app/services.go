package app

import (
	"gorm.io/gorm"

	redisclient "github.com/hritamkar/library-management/internal/clients/redis"
	"github.com/hritamkar/library-management/internal/pkg/logger"
	"github.com/hritamkar/library-management/internal/services"
)

type Services struct {
	Book   services.BookService
	Member services.MemberService
	Loan   services.LoanService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	// Caching is optional. Without a Redis address every lookup goes straight
	// to the database.
	var cache services.CatalogCache
	if cfg.RedisAddr != "" {
		c, err := redisclient.NewCatalogCache(log)
		if err != nil {
			return Services{}, err
		}
		cache = c
	}

	return Services{
		Book:   services.NewBookService(db, log, r.Book, cache),
		Member: services.NewMemberService(db, log, r.Member),
		Loan:   services.NewLoanService(db, log, r.Book, r.Member, r.Loan, r.LoanEvent, cache, cfg.FinePerDay),
	}, nil
}
