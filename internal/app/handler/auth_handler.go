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

type AuthHandler struct {
	Repository *repository.Repository
	Auth       *middleware.AuthMiddleware
}

func NewAuthHandler(r *repository.Repository, auth *middleware.AuthMiddleware) *AuthHandler {
	return &AuthHandler{
		Repository: r,
		Auth:       auth,
	}
}

// RegisterUser creates a regular account
// @Summary Register user
// @Description Creates a new non-admin account. Username and email must be unique.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.UserEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var request dto.RegisterRequest
	if !bindJSON(c, &request) {
		return
	}

	user := &ds.User{
		Username:  strings.TrimSpace(request.Username),
		Email:     strings.TrimSpace(request.Email),
		FirstName: request.FirstName,
		LastName:  request.LastName,
		IsActive:  true,
	}
	if user.Username == "" {
		errorResponse(c, http.StatusBadRequest, "username is required")
		return
	}
	if err := user.SetPassword(request.Password); err != nil {
		internalError(c, "Registration failed", err)
		return
	}

	err := h.Repository.CreateUser(user)
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		errorResponse(c, http.StatusBadRequest, "Username already exists")
		return
	case errors.Is(err, repository.ErrEmailTaken):
		errorResponse(c, http.StatusBadRequest, "Email already exists")
		return
	case err != nil:
		internalError(c, "Registration failed", err)
		return
	}

	logrus.WithField("user_id", user.ID).Info("user registered")
	c.JSON(http.StatusCreated, dto.UserEnvelope{
		Message: "User created successfully",
		User:    dto.NewUserResponse(user),
	})
}

// LoginUser issues a token for valid credentials
// @Summary Login
// @Description Checks credentials and returns a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		errorResponse(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.Repository.GetUserByUsername(request.Username)
	if err != nil && !isNotFound(err) {
		internalError(c, "Login failed", err)
		return
	}
	if user == nil || !user.CheckPassword(request.Password) {
		errorResponse(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsActive {
		errorResponse(c, http.StatusUnauthorized, "Account is deactivated")
		return
	}

	token, expiresAt, err := h.Auth.IssueToken(user.ID)
	if err != nil {
		internalError(c, "Login failed", err)
		return
	}

	userResponse := dto.NewUserResponse(user)
	c.JSON(http.StatusOK, dto.TokenResponse{
		Message:   "Login successful",
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      &userResponse,
	})
}

// GetCurrentUser returns the authenticated account
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserEnvelope
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, dto.UserEnvelope{
		Message: "Current user",
		User:    dto.NewUserResponse(middleware.CurrentUser(c)),
	})
}

// RefreshToken issues a fresh token for the authenticated account
// @Summary Refresh token
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, expiresAt, err := h.Auth.IssueToken(middleware.CurrentUser(c).ID)
	if err != nil {
		internalError(c, "Token refresh failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		Message:   "Token refreshed successfully",
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	})
}

// LogoutUser
// @Summary Logout
// @Description Tokens are stateless, the client discards its copy
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MessageResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutUser(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logout successful"})
}
