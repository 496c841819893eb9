package ds

import (
	"time"

	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Processable reports whether generation may run for an order in this status.
func (s OrderStatus) Processable() bool {
	return s == OrderStatusPending || s == OrderStatusInProgress
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Requirements are the recognized optional hints attached to an order.
type Requirements struct {
	Tone            string `json:"tone,omitempty"`
	TargetAudience  string `json:"target_audience,omitempty"`
	Keywords        string `json:"keywords,omitempty"`
	AdditionalNotes string `json:"additional_notes,omitempty"`
	RevisionNotes   string `json:"revision_notes,omitempty"`
}

func (r Requirements) IsEmpty() bool {
	return r == Requirements{}
}

// Merge returns r with every non-empty field of other applied on top.
func (r Requirements) Merge(other Requirements) Requirements {
	if other.Tone != "" {
		r.Tone = other.Tone
	}
	if other.TargetAudience != "" {
		r.TargetAudience = other.TargetAudience
	}
	if other.Keywords != "" {
		r.Keywords = other.Keywords
	}
	if other.AdditionalNotes != "" {
		r.AdditionalNotes = other.AdditionalNotes
	}
	if other.RevisionNotes != "" {
		r.RevisionNotes = other.RevisionNotes
	}
	return r
}

// Content orders
type Order struct {
	ID           uint                             `gorm:"primaryKey"`
	UserID       uint                             `gorm:"not null;index"`
	ContentType  string                           `gorm:"type:varchar(50);not null"`
	Title        string                           `gorm:"type:varchar(200);not null"`
	Description  string                           `gorm:"type:text"`
	Requirements datatypes.JSONType[Requirements] `gorm:"not null"`
	Status       OrderStatus                      `gorm:"type:varchar(20);default:'pending';not null"`
	Priority     Priority                         `gorm:"type:varchar(10);default:'medium';not null"`
	WordCount    int                              `gorm:"not null"`
	Price        float64                          `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt    time.Time                        `gorm:"not null"`
	UpdatedAt    time.Time                        `gorm:"not null"`
	CompletedAt  *time.Time                       `gorm:"default:null"`

	User     User      `gorm:"foreignKey:UserID"`
	Content  *Content  `gorm:"foreignKey:OrderID"`
	Payments []Payment `gorm:"foreignKey:OrderID"`
}

func (o *Order) GetRequirements() Requirements {
	return o.Requirements.Data()
}

func (o *Order) SetRequirements(r Requirements) {
	o.Requirements = datatypes.NewJSONType(r)
}

// OwnedBy reports whether userID placed the order.
func (o *Order) OwnedBy(userID uint) bool {
	return o.UserID == userID
}
