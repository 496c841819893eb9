package handler

import (
	"errors"
	"net/http"
	"strings"

	"contentgenius/internal/app/ds"
	"contentgenius/internal/app/dto"
	"contentgenius/internal/app/middleware"
	"contentgenius/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetOrders lists orders
// @Summary List orders
// @Description Regular users see their own orders, administrators see all of them. Newest first.
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/orders [get]
func (h *APIHandler) GetOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.Repository.ListOrders(user.ID, user.IsAdmin)
	if err != nil {
		internalError(c, "Failed to fetch orders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved",
		"orders":  dto.NewOrderList(orders),
	})
}

// CreateOrder places a new order priced from the content template
// @Summary Create order
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrderRequest true "Order data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/orders [post]
func (h *APIHandler) CreateOrder(c *gin.Context) {
	var request dto.CreateOrderRequest
	if !bindJSON(c, &request) {
		return
	}
	title := strings.TrimSpace(request.Title)
	if title == "" {
		errorResponse(c, http.StatusBadRequest, "title is required")
		return
	}

	tpl, err := h.Repository.GetActiveTemplate(request.ContentType)
	if errors.Is(err, repository.ErrTemplateNotFound) {
		errorResponse(c, http.StatusBadRequest, "Invalid content type")
		return
	}
	if err != nil {
		internalError(c, "Failed to create order", err)
		return
	}

	wordCount := tpl.DefaultWordCount
	if request.WordCount != nil {
		wordCount = *request.WordCount
	}
	priority := ds.PriorityMedium
	if request.Priority != "" {
		priority = ds.Priority(request.Priority)
	}

	order := &ds.Order{
		UserID:      middleware.CurrentUser(c).ID,
		ContentType: tpl.ContentType,
		Title:       title,
		Description: request.Description,
		Status:      ds.OrderStatusPending,
		Priority:    priority,
		WordCount:   wordCount,
		Price:       tpl.PriceFor(wordCount),
	}
	order.SetRequirements(request.Requirements.ToModel())

	if err := h.Repository.CreateOrder(order); err != nil {
		internalError(c, "Failed to create order", err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"price":    order.Price,
	}).Info("order created")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   dto.NewOrderResponse(order),
	})
}

// GetOrder returns one order with its generated content
// @Summary Get order
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [get]
func (h *APIHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "Invalid order ID")
	if !ok {
		return
	}
	order, ok := h.loadOrder(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved",
		"order":   dto.NewOrderResponse(order),
	})
}

// UpdateOrder changes order fields
// @Summary Update order
// @Description Owners may change title, description and requirements. Priority and status are applied for administrators only.
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param request body dto.UpdateOrderRequest true "Fields to change"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [put]
func (h *APIHandler) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "Invalid order ID")
	if !ok {
		return
	}
	var request dto.UpdateOrderRequest
	if !bindJSON(c, &request) {
		return
	}
	order, ok := h.loadOrder(c, id)
	if !ok {
		return
	}

	changes := repository.OrderChanges{Description: request.Description}
	if request.Title != nil {
		title := strings.TrimSpace(*request.Title)
		if title == "" {
			errorResponse(c, http.StatusBadRequest, "title cannot be empty")
			return
		}
		changes.Title = &title
	}
	if request.Requirements != nil {
		requirements := request.Requirements.ToModel()
		requirements.RevisionNotes = order.GetRequirements().RevisionNotes
		changes.Requirements = &requirements
	}
	if middleware.CurrentUser(c).IsAdmin {
		if request.Priority != nil {
			priority := ds.Priority(*request.Priority)
			changes.Priority = &priority
		}
		if request.Status != nil {
			status := ds.OrderStatus(*request.Status)
			changes.Status = &status
		}
	}

	updated, err := h.Repository.UpdateOrder(id, changes)
	if err != nil {
		internalError(c, "Failed to update order", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"order":   dto.NewOrderResponse(updated),
	})
}

// DeleteOrder removes a pending order
// @Summary Delete order
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [delete]
func (h *APIHandler) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "Invalid order ID")
	if !ok {
		return
	}
	if _, ok := h.loadOrder(c, id); !ok {
		return
	}

	err := h.Repository.DeleteOrder(id)
	switch {
	case errors.Is(err, repository.ErrOrderNotPending):
		errorResponse(c, http.StatusBadRequest, "Cannot delete order that is not pending")
		return
	case errors.Is(err, repository.ErrOrderHasPayments):
		errorResponse(c, http.StatusBadRequest, "Cannot delete order with payment records")
		return
	case isNotFound(err):
		errorResponse(c, http.StatusNotFound, "Order not found")
		return
	case err != nil:
		internalError(c, "Failed to delete order", err)
		return
	}

	logrus.WithField("order_id", id).Info("order deleted")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Order deleted successfully"})
}

// GetContentTemplates lists the active catalog
// @Summary Content templates
// @Tags Orders
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/content-templates [get]
func (h *APIHandler) GetContentTemplates(c *gin.Context) {
	templates, err := h.Repository.GetActiveTemplates()
	if err != nil {
		internalError(c, "Failed to fetch templates", err)
		return
	}

	resp := make([]dto.TemplateResponse, 0, len(templates))
	for i := range templates {
		resp = append(resp, dto.NewTemplateResponse(&templates[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Templates retrieved",
		"templates": resp,
	})
}
