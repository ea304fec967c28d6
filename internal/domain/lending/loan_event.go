package lending

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	LoanEventCreated  = "loan_created"
	LoanEventReturned = "loan_returned"
)

// LoanEvent is an append-only audit row written alongside every lifecycle
// transition. Payload carries the transition details as JSON.
type LoanEvent struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	LoanID  uuid.UUID      `gorm:"type:uuid;not null;index;column:loan_id" json:"loan_id"`
	Kind    string         `gorm:"not null;column:kind;index" json:"kind"`
	Payload datatypes.JSON `gorm:"column:payload" json:"payload,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (LoanEvent) TableName() string { return "loan_event" }
