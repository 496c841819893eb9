package dto

import "contentgenius/internal/app/ds"

func NewUserResponse(u *ds.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role().String(),
		IsAdmin:   u.IsAdmin,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewTemplateResponse(t *ds.ContentTemplate) TemplateResponse {
	return TemplateResponse{
		ID:               t.ID,
		Name:             t.Name,
		ContentType:      t.ContentType,
		TemplatePrompt:   t.TemplatePrompt,
		DefaultWordCount: t.DefaultWordCount,
		BasePrice:        t.BasePrice,
		IsActive:         t.IsActive,
	}
}

// NewOrderResponse includes the generated content when it was loaded with the order.
func NewOrderResponse(o *ds.Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		ContentType:  o.ContentType,
		Title:        o.Title,
		Description:  o.Description,
		Requirements: o.GetRequirements(),
		Status:       string(o.Status),
		Priority:     string(o.Priority),
		WordCount:    o.WordCount,
		Price:        o.Price,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		CompletedAt:  o.CompletedAt,
	}
	if o.Content != nil && o.Content.ID != 0 {
		content := NewContentResponse(o.Content)
		resp.Content = &content
	}
	return resp
}

func NewOrderList(orders []ds.Order) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, NewOrderResponse(&orders[i]))
	}
	return resp
}

func NewContentResponse(c *ds.Content) ContentResponse {
	return ContentResponse{
		ID:               c.ID,
		OrderID:          c.OrderID,
		GeneratedContent: c.GeneratedContent,
		ContentFormat:    string(c.ContentFormat),
		QualityScore:     c.QualityScore,
		RevisionCount:    c.RevisionCount,
		IsApproved:       c.IsApproved,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func NewPaymentResponse(p *ds.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		OrderID:         p.OrderID,
		Amount:          p.Amount,
		Currency:        p.Currency,
		PaymentMethod:   p.PaymentMethod,
		PaymentIntentID: p.PaymentIntentID,
		Status:          string(p.Status),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func NewPaymentList(payments []ds.Payment) []PaymentResponse {
	resp := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		resp = append(resp, NewPaymentResponse(&payments[i]))
	}
	return resp
}
