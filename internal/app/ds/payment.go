package ds

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

const (
	DefaultCurrency      = "USD"
	DefaultPaymentMethod = "card"
)

// Simulated payments, one order may have several intents but only one completed
type Payment struct {
	ID              uint          `gorm:"primaryKey"`
	UserID          uint          `gorm:"not null;index"`
	OrderID         uint          `gorm:"not null;index"`
	Amount          float64       `gorm:"type:decimal(10,2);not null"`
	Currency        string        `gorm:"type:varchar(3);default:'USD';not null"`
	PaymentMethod   string        `gorm:"type:varchar(50);not null"`
	PaymentIntentID string        `gorm:"type:varchar(100);uniqueIndex;not null"`
	Status          PaymentStatus `gorm:"type:varchar(20);default:'pending';not null"`
	CreatedAt       time.Time     `gorm:"not null"`
	UpdatedAt       time.Time     `gorm:"not null"`

	Order Order `gorm:"foreignKey:OrderID"`
}

func (p *Payment) OwnedBy(userID uint) bool {
	return p.UserID == userID
}
