package ds

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TopicPlaceholder is substituted with the order title when a prompt is built.
const TopicPlaceholder = "{topic}"

// Catalog of content types
type ContentTemplate struct {
	ID               uint      `gorm:"primaryKey"`
	Name             string    `gorm:"type:varchar(100);not null"`
	ContentType      string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	TemplatePrompt   string    `gorm:"type:text;not null"`
	DefaultWordCount int       `gorm:"default:500;not null"`
	BasePrice        float64   `gorm:"type:decimal(10,2);not null"`
	IsActive         bool      `gorm:"default:true;not null"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// PriceFor scales the base price by the requested word count, rounded to cents.
func (t ContentTemplate) PriceFor(wordCount int) float64 {
	if t.DefaultWordCount <= 0 {
		return decimal.NewFromFloat(t.BasePrice).Round(2).InexactFloat64()
	}
	return decimal.NewFromFloat(t.BasePrice).
		Mul(decimal.NewFromInt(int64(wordCount))).
		Div(decimal.NewFromInt(int64(t.DefaultWordCount))).
		Round(2).
		InexactFloat64()
}

// PromptFor renders the template prompt for a topic.
func (t ContentTemplate) PromptFor(topic string) string {
	return strings.ReplaceAll(t.TemplatePrompt, TopicPlaceholder, topic)
}
