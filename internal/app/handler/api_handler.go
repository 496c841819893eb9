package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"contentgenius/internal/app/config"
	"contentgenius/internal/app/ds"
	"contentgenius/internal/app/dto"
	"contentgenius/internal/app/generator"
	"contentgenius/internal/app/middleware"
	"contentgenius/internal/app/repository"
	"contentgenius/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ContentArchive stores exported documents and returns a download link.
type ContentArchive interface {
	Put(ctx context.Context, orderID uint, doc storage.Document) (string, error)
}

// APIHandler holds the REST API handlers
type APIHandler struct {
	Repository  *repository.Repository
	Generator   *generator.Generator
	Archive     ContentArchive
	AuthHandler *AuthHandler
	Config      *config.Config
}

func NewAPIHandler(r *repository.Repository, gen *generator.Generator, archive ContentArchive, authHandler *AuthHandler, cfg *config.Config) *APIHandler {
	dto.RegisterValidation()
	return &APIHandler{
		Repository:  r,
		Generator:   gen,
		Archive:     archive,
		AuthHandler: authHandler,
		Config:      cfg,
	}
}

// ============ Helpers ============

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Message: message})
}

// internalError logs err and surfaces it to the client with a 500.
func internalError(c *gin.Context, message string, err error) {
	logrus.WithError(err).WithField("path", c.FullPath()).Error(message)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: message, Error: err.Error()})
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: dto.ValidationMessage(err), Error: err.Error()})
		return false
	}
	return true
}

func parseID(c *gin.Context, param, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		errorResponse(c, http.StatusBadRequest, message)
		return 0, false
	}
	return uint(id), true
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// loadOrder fetches an order the current user may act on, answering the
// request itself when it cannot.
func (h *APIHandler) loadOrder(c *gin.Context, id uint) (*ds.Order, bool) {
	order, err := h.Repository.GetOrderByID(id)
	if err != nil {
		if isNotFound(err) {
			errorResponse(c, http.StatusNotFound, "Order not found")
			return nil, false
		}
		internalError(c, "Failed to load order", err)
		return nil, false
	}
	if !middleware.OwnerOrAdmin(middleware.CurrentUser(c), order.UserID) {
		errorResponse(c, http.StatusForbidden, "Access denied")
		return nil, false
	}
	return order, true
}
