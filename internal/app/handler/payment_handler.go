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
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	paymentIntentPrefix = "pi_demo_"
	clientSecretSuffix  = "_secret_demo"
)

func newPaymentIntentID() string {
	return paymentIntentPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// CreatePaymentIntent opens a simulated payment for an order
// @Summary Create payment intent
// @Description Records a pending payment for the full order price. No external provider is contacted.
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePaymentIntentRequest true "Order to pay"
// @Success 200 {object} dto.PaymentIntentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payment/create-payment-intent [post]
func (h *APIHandler) CreatePaymentIntent(c *gin.Context) {
	var request dto.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&request); err != nil || request.OrderID == 0 {
		errorResponse(c, http.StatusBadRequest, "Order ID is required")
		return
	}
	user := middleware.CurrentUser(c)

	order, err := h.Repository.GetOrderByID(request.OrderID)
	if err != nil {
		if isNotFound(err) {
			errorResponse(c, http.StatusNotFound, "Order not found")
			return
		}
		internalError(c, "Failed to create payment intent", err)
		return
	}
	if !middleware.OwnerOnly(user, order.UserID) {
		errorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	method := request.PaymentMethod
	if method == "" {
		method = ds.DefaultPaymentMethod
	}

	payment, err := h.Repository.CreatePaymentIntent(order.ID, user.ID, newPaymentIntentID(), method)
	switch {
	case errors.Is(err, repository.ErrOrderAlreadyPaid):
		errorResponse(c, http.StatusBadRequest, "Order already paid")
		return
	case errors.Is(err, repository.ErrOrderNotPayable):
		errorResponse(c, http.StatusBadRequest, "Order cannot be paid in current status")
		return
	case err != nil:
		internalError(c, "Failed to create payment intent", err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"order_id":          order.ID,
		"payment_intent_id": payment.PaymentIntentID,
		"amount":            payment.Amount,
	}).Info("payment intent created")

	c.JSON(http.StatusOK, dto.PaymentIntentResponse{
		Message:         "Payment intent created",
		Payment:         dto.NewPaymentResponse(payment),
		PaymentID:       payment.ID,
		PaymentIntentID: payment.PaymentIntentID,
		ClientSecret:    payment.PaymentIntentID + clientSecretSuffix,
		Amount:          payment.Amount,
		Currency:        payment.Currency,
	})
}

// ConfirmPayment completes a simulated payment and generates the content
// @Summary Confirm payment
// @Description Marks the payment completed, moves a pending order into progress and runs generation. content_generated reports whether generation succeeded.
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ConfirmPaymentRequest true "Payment intent"
// @Success 200 {object} dto.ConfirmPaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/payment/confirm-payment [post]
func (h *APIHandler) ConfirmPayment(c *gin.Context) {
	var request dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		errorResponse(c, http.StatusBadRequest, "Payment intent ID is required")
		return
	}

	payment, err := h.Repository.GetPaymentByIntentID(request.PaymentIntentID)
	if err != nil {
		if isNotFound(err) {
			errorResponse(c, http.StatusNotFound, "Payment not found")
			return
		}
		internalError(c, "Failed to confirm payment", err)
		return
	}
	if !middleware.OwnerOnly(middleware.CurrentUser(c), payment.UserID) {
		errorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	payment, order, err := h.Repository.ConfirmPayment(payment.ID)
	switch {
	case errors.Is(err, repository.ErrPaymentNotPending):
		errorResponse(c, http.StatusBadRequest, "Payment is not pending")
		return
	case errors.Is(err, repository.ErrOrderAlreadyPaid):
		errorResponse(c, http.StatusBadRequest, "Order already paid")
		return
	case err != nil:
		internalError(c, "Failed to confirm payment", err)
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"order_id":          order.ID,
		"payment_intent_id": payment.PaymentIntentID,
	})
	log.Info("payment confirmed")

	response := dto.ConfirmPaymentResponse{
		Message: "Payment confirmed successfully",
		Payment: dto.NewPaymentResponse(payment),
		Order:   dto.NewOrderResponse(order),
	}

	if order.Status == ds.OrderStatusInProgress {
		result, err := h.Generator.Process(c.Request.Context(), order)
		if err != nil {
			log.WithError(err).Warn("generation after payment failed")
			response.GenerationError = err.Error()
		} else {
			content := dto.NewContentResponse(result.Content)
			response.ContentGenerated = true
			response.Content = &content
			response.Order = dto.NewOrderResponse(result.Order)
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetPaymentHistory lists the caller's payments
// @Summary Payment history
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /api/payment/payment-history [get]
func (h *APIHandler) GetPaymentHistory(c *gin.Context) {
	payments, err := h.Repository.ListPaymentsByUser(middleware.CurrentUser(c).ID)
	if err != nil {
		internalError(c, "Failed to fetch payment history", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Payment history retrieved",
		"payments": dto.NewPaymentList(payments),
	})
}

// GetPayment returns one payment
// @Summary Get payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payment/payment/{id} [get]
func (h *APIHandler) GetPayment(c *gin.Context) {
	payment, ok := h.loadPayment(c, middleware.OwnerOrAdmin)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment retrieved",
		"payment": dto.NewPaymentResponse(payment),
	})
}

// RefundPayment refunds a completed payment and cancels the order
// @Summary Refund payment
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/payment/refund/{id} [post]
func (h *APIHandler) RefundPayment(c *gin.Context) {
	payment, ok := h.loadPayment(c, middleware.OwnerOnly)
	if !ok {
		return
	}

	payment, order, err := h.Repository.RefundPayment(payment.ID)
	if errors.Is(err, repository.ErrPaymentNotCompleted) {
		errorResponse(c, http.StatusBadRequest, "Only completed payments can be refunded")
		return
	}
	if err != nil {
		internalError(c, "Failed to process refund", err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"order_id":          order.ID,
		"payment_intent_id": payment.PaymentIntentID,
	}).Info("payment refunded")

	c.JSON(http.StatusOK, gin.H{
		"message": "Refund processed successfully",
		"payment": dto.NewPaymentResponse(payment),
		"order":   dto.NewOrderResponse(order),
	})
}

// GetAllPayments lists every payment
// @Summary All payments (admin)
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/payment/admin/payments [get]
func (h *APIHandler) GetAllPayments(c *gin.Context) {
	payments, err := h.Repository.ListPayments()
	if err != nil {
		internalError(c, "Failed to fetch payments", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Payments retrieved",
		"payments": dto.NewPaymentList(payments),
	})
}

func (h *APIHandler) loadPayment(c *gin.Context, allowed func(*ds.User, uint) bool) (*ds.Payment, bool) {
	id, ok := parseID(c, "id", "Invalid payment ID")
	if !ok {
		return nil, false
	}

	payment, err := h.Repository.GetPaymentByID(id)
	if err != nil {
		if isNotFound(err) {
			errorResponse(c, http.StatusNotFound, "Payment not found")
			return nil, false
		}
		internalError(c, "Failed to load payment", err)
		return nil, false
	}
	if !allowed(middleware.CurrentUser(c), payment.UserID) {
		errorResponse(c, http.StatusForbidden, "Access denied")
		return nil, false
	}
	return payment, true
}
