package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is a physical title in the catalog. Stock counts the copies currently
// on the shelf; it is only ever changed through conditional updates so it can
// never go negative.
type Book struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title  string    `gorm:"not null;column:title;uniqueIndex:idx_book_title_author" json:"title"`
	Author string    `gorm:"not null;column:author;uniqueIndex:idx_book_title_author" json:"author"`
	Stock  int       `gorm:"not null;default:0;column:stock" json:"stock"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Book) TableName() string { return "book" }
