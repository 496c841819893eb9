package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"contentgenius/internal/app/ds"
)

// ============ Common ============

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ============ Auth ============

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=80"`
	Email     string `json:"email" binding:"required,email,max=120"`
	Password  string `json:"password" binding:"required,min=6,max=128"`
	FirstName string `json:"first_name" binding:"max=50"`
	LastName  string `json:"last_name" binding:"max=50"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserEnvelope struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type TokenResponse struct {
	Message   string        `json:"message"`
	Token     string        `json:"token"`
	TokenType string        `json:"token_type"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user,omitempty"`
}

// ============ Orders ============

// Keywords accepts either a single string or a list of strings.
type Keywords string

func (k *Keywords) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*k = Keywords(single)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("keywords must be a string or a list of strings")
	}
	*k = Keywords(strings.Join(list, ", "))
	return nil
}

type RequirementsRequest struct {
	Tone            string   `json:"tone" binding:"max=100"`
	TargetAudience  string   `json:"target_audience" binding:"max=200"`
	Keywords        Keywords `json:"keywords" binding:"max=500"`
	AdditionalNotes string   `json:"additional_notes" binding:"max=2000"`
}

func (r *RequirementsRequest) ToModel() ds.Requirements {
	if r == nil {
		return ds.Requirements{}
	}
	return ds.Requirements{
		Tone:            strings.TrimSpace(r.Tone),
		TargetAudience:  strings.TrimSpace(r.TargetAudience),
		Keywords:        strings.TrimSpace(string(r.Keywords)),
		AdditionalNotes: strings.TrimSpace(r.AdditionalNotes),
	}
}

type CreateOrderRequest struct {
	ContentType  string               `json:"content_type" binding:"required"`
	Title        string               `json:"title" binding:"required,max=200"`
	Description  string               `json:"description" binding:"max=5000"`
	Requirements *RequirementsRequest `json:"requirements"`
	WordCount    *int                 `json:"word_count" binding:"omitempty,gt=0,lte=10000"`
	Priority     string               `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// UpdateOrderRequest only changes the fields that are present.
type UpdateOrderRequest struct {
	Title        *string              `json:"title" binding:"omitempty,max=200"`
	Description  *string              `json:"description" binding:"omitempty,max=5000"`
	Requirements *RequirementsRequest `json:"requirements"`
	Priority     *string              `json:"priority" binding:"omitempty,oneof=low medium high"`
	Status       *string              `json:"status" binding:"omitempty,oneof=pending in_progress completed cancelled"`
}

type TemplateResponse struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	ContentType      string  `json:"content_type"`
	TemplatePrompt   string  `json:"template_prompt"`
	DefaultWordCount int     `json:"default_word_count"`
	BasePrice        float64 `json:"base_price"`
	IsActive         bool    `json:"is_active"`
}

type OrderResponse struct {
	ID           uint             `json:"id"`
	UserID       uint             `json:"user_id"`
	ContentType  string           `json:"content_type"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Requirements ds.Requirements  `json:"requirements"`
	Status       string           `json:"status"`
	Priority     string           `json:"priority"`
	WordCount    int              `json:"word_count"`
	Price        float64          `json:"price"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	CompletedAt  *time.Time       `json:"completed_at"`
	Content      *ContentResponse `json:"content,omitempty"`
}

// ============ Content ============

type PreviewRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=5000"`
}

type ReviseRequest struct {
	RevisionNotes string `json:"revision_notes" binding:"max=2000"`
}

type ContentResponse struct {
	ID               uint      `json:"id"`
	OrderID          uint      `json:"order_id"`
	GeneratedContent string    `json:"generated_content"`
	ContentFormat    string    `json:"content_format"`
	QualityScore     *float64  `json:"quality_score"`
	RevisionCount    int       `json:"revision_count"`
	IsApproved       bool      `json:"is_approved"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type GenerationResponse struct {
	Message string          `json:"message"`
	Content ContentResponse `json:"content"`
	Order   OrderResponse   `json:"order"`
}

type ExportResponse struct {
	Message string `json:"message"`
	Format  string `json:"format"`
	URL     string `json:"url,omitempty"`
	Body    string `json:"body,omitempty"`
}

// ============ Payments ============

type CreatePaymentIntentRequest struct {
	OrderID       uint   `json:"order_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,max=50"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

type PaymentResponse struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	OrderID         uint      `json:"order_id"`
	Amount          float64   `json:"amount"`
	Currency        string    `json:"currency"`
	PaymentMethod   string    `json:"payment_method"`
	PaymentIntentID string    `json:"payment_intent_id"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PaymentIntentResponse struct {
	Message         string          `json:"message"`
	Payment         PaymentResponse `json:"payment"`
	PaymentID       uint            `json:"payment_id"`
	PaymentIntentID string          `json:"payment_intent_id"`
	ClientSecret    string          `json:"client_secret"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
}

type ConfirmPaymentResponse struct {
	Message          string           `json:"message"`
	Payment          PaymentResponse  `json:"payment"`
	Order            OrderResponse    `json:"order"`
	ContentGenerated bool             `json:"content_generated"`
	Content          *ContentResponse `json:"content,omitempty"`
	GenerationError  string           `json:"generation_error,omitempty"`
}
