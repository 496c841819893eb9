package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"contentgenius/internal/app/config"
	"contentgenius/internal/app/ds"
	"contentgenius/internal/app/dto"
	"contentgenius/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const bearerPrefix = "bearer "

// UserStore resolves the account a token was issued for.
type UserStore interface {
	GetUserByID(id uint) (*ds.User, error)
}

type AuthMiddleware struct {
	Users  UserStore
	Config *config.Config
}

func NewAuthMiddleware(users UserStore, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Users:  users,
		Config: cfg,
	}
}

// IssueToken signs a token for userID that expires after the configured lifetime.
func (am *AuthMiddleware) IssueToken(userID uint) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(am.Config.JWT.ExpiresIn)

	claims := &ds.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    am.Config.JWT.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(am.Config.JWT.SigningMethod, claims)
	signed, err := token.SignedString([]byte(am.Config.JWT.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (am *AuthMiddleware) ParseToken(tokenString string) (*ds.JWTClaims, error) {
	claims := &ds.JWTClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(am.Config.JWT.Secret), nil
	}, jwt.WithValidMethods([]string{am.Config.JWT.SigningMethod.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// WithAuthCheck authenticates the bearer token and stores the account in the
// request context. When roles are given the account must hold one of them.
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		user, status, message := am.authenticate(gCtx.GetHeader("Authorization"))
		if user == nil {
			gCtx.AbortWithStatusJSON(status, dto.ErrorResponse{Message: message})
			return
		}

		if len(assignedRoles) > 0 && !hasRequiredRole(user.Role(), assignedRoles) {
			gCtx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Admin access required"})
			return
		}

		setCurrentUser(gCtx, user)
		gCtx.Next()
	}
}

func (am *AuthMiddleware) authenticate(header string) (*ds.User, int, string) {
	if header == "" {
		return nil, http.StatusUnauthorized, "Token is missing"
	}
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return nil, http.StatusUnauthorized, "Invalid token format"
	}
	tokenString := strings.TrimSpace(header[len(bearerPrefix):])
	if tokenString == "" {
		return nil, http.StatusUnauthorized, "Invalid token format"
	}

	claims, err := am.ParseToken(tokenString)
	if err != nil {
		return nil, http.StatusUnauthorized, tokenErrorMessage(err)
	}

	user, err := am.Users.GetUserByID(claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, http.StatusUnauthorized, "User not found"
	}
	if err != nil {
		log.WithError(err).WithField("user_id", claims.UserID).Error("failed to load token owner")
		return nil, http.StatusInternalServerError, "Internal server error"
	}
	if !user.IsActive {
		return nil, http.StatusUnauthorized, "Account is deactivated"
	}
	return user, 0, ""
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "Token is malformed"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "Token signature is invalid"
	default:
		return "Token is invalid"
	}
}

func hasRequiredRole(userRole role.Role, requiredRoles []role.Role) bool {
	for _, requiredRole := range requiredRoles {
		if userRole == requiredRole {
			return true
		}
	}
	return false
}
