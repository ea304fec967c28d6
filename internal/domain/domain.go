package domain

import (
	"github.com/hritamkar/library-management/internal/domain/catalog"
	"github.com/hritamkar/library-management/internal/domain/lending"
	"github.com/hritamkar/library-management/internal/domain/members"
)

type Book = catalog.Book
type Member = members.Member
type Loan = lending.Loan
type LoanEvent = lending.LoanEvent

const (
	LoanEventCreated  = lending.LoanEventCreated
	LoanEventReturned = lending.LoanEventReturned
)
