package ds

import "time"

type ContentFormat string

const (
	FormatMarkdown  ContentFormat = "markdown"
	FormatHTML      ContentFormat = "html"
	FormatPlainText ContentFormat = "plain_text"
)

// Generated text, at most one row per order
type Content struct {
	ID               uint          `gorm:"primaryKey"`
	OrderID          uint          `gorm:"uniqueIndex;not null"`
	GeneratedContent string        `gorm:"type:text;not null"`
	ContentFormat    ContentFormat `gorm:"type:varchar(20);default:'markdown';not null"`
	QualityScore     *float64
	RevisionCount    int       `gorm:"default:0;not null"`
	IsApproved       bool      `gorm:"default:false;not null"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`

	Order *Order `gorm:"foreignKey:OrderID"`
}
