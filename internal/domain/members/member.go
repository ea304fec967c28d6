package members

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Member is a registered borrower. Email is unique (exact, case-sensitive
// match) and immutable once created.
type Member struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"not null;column:name" json:"name"`
	Email string    `gorm:"uniqueIndex;not null;column:email" json:"email"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Member) TableName() string { return "member" }
