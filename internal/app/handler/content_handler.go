package handler

import (
	"errors"
	"net/http"
	"strings"

	"contentgenius/internal/app/ds"
	"contentgenius/internal/app/dto"
	"contentgenius/internal/app/export"
	"contentgenius/internal/app/generator"
	"contentgenius/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GenerateContent runs generation for an order
// @Summary Generate content
// @Description Moves the order into progress and generates its content synchronously. On failure the order keeps its previous status.
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param order_id path int true "Order ID"
// @Success 200 {object} dto.GenerationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/generate/{order_id} [post]
func (h *APIHandler) GenerateContent(c *gin.Context) {
	id, ok := parseID(c, "order_id", "Invalid order ID")
	if !ok {
		return
	}
	order, ok := h.loadOrder(c, id)
	if !ok {
		return
	}
	if !order.Status.Processable() {
		errorResponse(c, http.StatusBadRequest, "Order cannot be processed in current status")
		return
	}

	if h.Config.Workflow.RequirePayment && !middleware.CurrentUser(c).IsAdmin {
		paid, err := h.Repository.HasCompletedPayment(order.ID)
		if err != nil {
			internalError(c, "Content generation failed", err)
			return
		}
		if !paid {
			errorResponse(c, http.StatusBadRequest, "Order has not been paid")
			return
		}
	}

	result, err := h.Generator.Process(c.Request.Context(), order)
	if err != nil {
		internalError(c, "Content generation failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerationResponse{
		Message: "Content generated successfully",
		Content: dto.NewContentResponse(result.Content),
		Order:   dto.NewOrderResponse(result.Order),
	})
}

// PreviewContent returns a short sample without creating an order
// @Summary Preview content
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PreviewRequest true "Preview data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/preview [post]
func (h *APIHandler) PreviewContent(c *gin.Context) {
	var request dto.PreviewRequest
	if !bindJSON(c, &request) {
		return
	}

	preview, err := h.Generator.Preview(c.Request.Context(), request.ContentType, strings.TrimSpace(request.Title), request.Description)
	if errors.Is(err, generator.ErrTemplateNotFound) {
		errorResponse(c, http.StatusBadRequest, "Invalid content type")
		return
	}
	if err != nil {
		internalError(c, "Preview generation failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Preview generated successfully",
		"preview": preview,
	})
}

// GetContent returns the generated content of an order
// @Summary Get content
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param order_id path int true "Order ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/content/{order_id} [get]
func (h *APIHandler) GetContent(c *gin.Context) {
	content, _, ok := h.orderContent(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Content retrieved",
		"content": dto.NewContentResponse(content),
	})
}

// ApproveContent marks content as approved
// @Summary Approve content
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/content/{id}/approve [post]
func (h *APIHandler) ApproveContent(c *gin.Context) {
	id, ok := h.ownedContentID(c)
	if !ok {
		return
	}

	content, err := h.Repository.ApproveContent(id)
	if err != nil {
		internalError(c, "Failed to approve content", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Content approved successfully",
		"content": dto.NewContentResponse(content),
	})
}

// RequestRevision reopens the order with revision notes
// @Summary Request revision
// @Description Increments the revision counter, clears approval and moves the order back into progress.
// @Tags Content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Content ID"
// @Param request body dto.ReviseRequest false "Revision notes"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/content/{id}/revise [post]
func (h *APIHandler) RequestRevision(c *gin.Context) {
	var request dto.ReviseRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &request) {
		return
	}
	id, ok := h.ownedContentID(c)
	if !ok {
		return
	}

	content, err := h.Repository.RequestRevision(id, strings.TrimSpace(request.RevisionNotes))
	if err != nil {
		internalError(c, "Failed to request revision", err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"content_id":     content.ID,
		"order_id":       content.OrderID,
		"revision_count": content.RevisionCount,
	}).Info("revision requested")

	c.JSON(http.StatusOK, gin.H{
		"message": "Revision requested successfully",
		"content": dto.NewContentResponse(content),
	})
}

// RegenerateContent reruns generation for any order
// @Summary Regenerate content (admin)
// @Description Replaces the content of an order. The previous content is kept if generation fails.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param order_id path int true "Order ID"
// @Success 200 {object} dto.GenerationResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/admin/regenerate/{order_id} [post]
func (h *APIHandler) RegenerateContent(c *gin.Context) {
	id, ok := parseID(c, "order_id", "Invalid order ID")
	if !ok {
		return
	}
	order, ok := h.loadOrder(c, id)
	if !ok {
		return
	}

	result, err := h.Generator.Process(c.Request.Context(), order)
	if err != nil {
		internalError(c, "Content regeneration failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerationResponse{
		Message: "Content regenerated successfully",
		Content: dto.NewContentResponse(result.Content),
		Order:   dto.NewOrderResponse(result.Order),
	})
}

// ExportContent renders content as markdown or html
// @Summary Export content
// @Description Returns a presigned download link when object storage is configured, otherwise the rendered document inline.
// @Tags Content
// @Produce json
// @Security BearerAuth
// @Param order_id path int true "Order ID"
// @Param format query string false "markdown or html" default(markdown)
// @Success 200 {object} dto.ExportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/content/{order_id}/export [get]
func (h *APIHandler) ExportContent(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "Unsupported export format")
		return
	}
	content, order, ok := h.orderContent(c)
	if !ok {
		return
	}

	doc, err := export.Render(content, order.Title, format)
	if err != nil {
		internalError(c, "Failed to export content", err)
		return
	}

	if h.Archive == nil {
		c.JSON(http.StatusOK, dto.ExportResponse{
			Message: "Content exported",
			Format:  string(format),
			Body:    string(doc.Body),
		})
		return
	}

	url, err := h.Archive.Put(c.Request.Context(), order.ID, doc)
	if err != nil {
		internalError(c, "Failed to export content", err)
		return
	}
	c.JSON(http.StatusOK, dto.ExportResponse{
		Message: "Content exported",
		Format:  string(format),
		URL:     url,
	})
}

// orderContent resolves the :order_id parameter to the order's content.
func (h *APIHandler) orderContent(c *gin.Context) (*ds.Content, *ds.Order, bool) {
	id, ok := parseID(c, "order_id", "Invalid order ID")
	if !ok {
		return nil, nil, false
	}
	order, ok := h.loadOrder(c, id)
	if !ok {
		return nil, nil, false
	}
	if order.Content == nil || order.Content.ID == 0 {
		errorResponse(c, http.StatusNotFound, "No content found for this order")
		return nil, nil, false
	}
	return order.Content, order, true
}

// ownedContentID resolves the :id parameter to content the current user may change.
func (h *APIHandler) ownedContentID(c *gin.Context) (uint, bool) {
	id, ok := parseID(c, "id", "Invalid content ID")
	if !ok {
		return 0, false
	}

	content, err := h.Repository.GetContentByID(id)
	if err != nil {
		if isNotFound(err) {
			errorResponse(c, http.StatusNotFound, "Content not found")
			return 0, false
		}
		internalError(c, "Failed to load content", err)
		return 0, false
	}
	if content.Order == nil || !middleware.OwnerOrAdmin(middleware.CurrentUser(c), content.Order.UserID) {
		errorResponse(c, http.StatusForbidden, "Access denied")
		return 0, false
	}
	return content.ID, true
}
