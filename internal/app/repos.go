package app

import (
	"gorm.io/gorm"

	"github.com/hritamkar/library-management/internal/data/repos"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

type Repos struct {
	Book      repos.BookRepo
	Member    repos.MemberRepo
	Loan      repos.LoanRepo
	LoanEvent repos.LoanEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Book:      repos.NewBookRepo(db, log),
		Member:    repos.NewMemberRepo(db, log),
		Loan:      repos.NewLoanRepo(db, log),
		LoanEvent: repos.NewLoanEventRepo(db, log),
	}
}
