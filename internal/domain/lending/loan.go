package lending

import (
	"time"

	"github.com/google/uuid"
)

// Loan links a Book to a Member for a bounded period.
//
// LoanDate is always server-stamped at creation. ReturnDate stays nil while
// the loan is outstanding and is set exactly once by the return action,
// together with FineAmount.
type Loan struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookID   uuid.UUID `gorm:"type:uuid;not null;index;column:book_id" json:"book_id"`
	MemberID uuid.UUID `gorm:"type:uuid;not null;index;column:member_id" json:"member_id"`

	LoanDate   time.Time  `gorm:"not null;column:loan_date" json:"loan_date"`
	DueDate    time.Time  `gorm:"not null;column:due_date" json:"due_date"`
	ReturnDate *time.Time `gorm:"column:return_date" json:"return_date,omitempty"`
	FineAmount *int       `gorm:"column:fine_amount" json:"fine_amount,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Loan) TableName() string { return "loan" }

// Outstanding reports whether the book has not been returned yet.
func (l *Loan) Outstanding() bool { return l.ReturnDate == nil }
