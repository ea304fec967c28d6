package repos

import (
	"gorm.io/gorm"

	"github.com/hritamkar/library-management/internal/data/repos/catalog"
	"github.com/hritamkar/library-management/internal/data/repos/lending"
	"github.com/hritamkar/library-management/internal/data/repos/members"
	"github.com/hritamkar/library-management/internal/pkg/logger"
)

type BookRepo = catalog.BookRepo
type MemberRepo = members.MemberRepo
type LoanRepo = lending.LoanRepo
type LoanEventRepo = lending.LoanEventRepo

func NewBookRepo(db *gorm.DB, baseLog *logger.Logger) BookRepo {
	return catalog.NewBookRepo(db, baseLog)
}
func NewMemberRepo(db *gorm.DB, baseLog *logger.Logger) MemberRepo {
	return members.NewMemberRepo(db, baseLog)
}
func NewLoanRepo(db *gorm.DB, baseLog *logger.Logger) LoanRepo {
	return lending.NewLoanRepo(db, baseLog)
}
func NewLoanEventRepo(db *gorm.DB, baseLog *logger.Logger) LoanEventRepo {
	return lending.NewLoanEventRepo(db, baseLog)
}
