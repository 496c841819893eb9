package handler

import (
	"net/http"

	"contentgenius/internal/app/middleware"
	"contentgenius/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes registers every REST route. A nil limiter turns rate
// limiting off.
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware, limiter middleware.Limiter) {
	api := router.Group("/api")
	authenticated := authMiddleware.WithAuthCheck()
	adminOnly := authMiddleware.WithAuthCheck(role.Admin)

	// ============ Auth ============
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.RegisterUser)
		auth.POST("/login", middleware.RateLimit(limiter, "login"), h.AuthHandler.LoginUser)

		auth.GET("/me", authenticated, h.AuthHandler.GetCurrentUser)
		auth.POST("/refresh", authenticated, h.AuthHandler.RefreshToken)
		auth.POST("/logout", authenticated, h.AuthHandler.LogoutUser)
	}

	// ============ Orders ============
	api.GET("/content-templates", h.GetContentTemplates)

	orders := api.Group("/orders")
	orders.Use(authenticated)
	{
		orders.GET("", h.GetOrders)
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}

	// ============ Content ============
	api.POST("/generate/:order_id", authenticated, middleware.RateLimit(limiter, "generate"), h.GenerateContent)
	api.POST("/preview", authenticated, middleware.RateLimit(limiter, "preview"), h.PreviewContent)

	content := api.Group("/content")
	content.Use(authenticated)
	{
		content.GET("/:order_id", h.GetContent)
		content.GET("/:order_id/export", h.ExportContent)
		content.POST("/:id/approve", h.ApproveContent)
		content.POST("/:id/revise", h.RequestRevision)
	}

	// ============ Payments ============
	payment := api.Group("/payment")
	payment.Use(authenticated)
	{
		payment.POST("/create-payment-intent", h.CreatePaymentIntent)
		payment.POST("/confirm-payment", middleware.RateLimit(limiter, "confirm"), h.ConfirmPayment)
		payment.GET("/payment-history", h.GetPaymentHistory)
		payment.GET("/payment/:id", h.GetPayment)
		payment.POST("/refund/:id", h.RefundPayment)
	}

	// ============ Admin ============
	api.POST("/admin/regenerate/:order_id", adminOnly, middleware.RateLimit(limiter, "regenerate"), h.RegenerateContent)
	api.GET("/payment/admin/payments", adminOnly, h.GetAllPayments)

	router.GET("/ping", h.Ping)
}

// Ping
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /ping [get]
func (h *APIHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
