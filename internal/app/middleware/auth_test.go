package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"contentgenius/internal/app/config"
	"contentgenius/internal/app/ds"
	"contentgenius/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUsers map[uint]*ds.User

func (f fakeUsers) GetUserByID(id uint) (*ds.User, error) {
	if user, ok := f[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:        "test-secret",
			ExpiresIn:     time.Hour,
			Issuer:        "contentgenius",
			SigningMethod: jwt.SigningMethodHS256,
		},
	}
}

func newTestAuth() *AuthMiddleware {
	users := fakeUsers{
		1: {ID: 1, Username: "alice", IsActive: true},
		2: {ID: 2, Username: "admin", IsActive: true, IsAdmin: true},
		3: {ID: 3, Username: "gone", IsActive: false},
	}
	return NewAuthMiddleware(users, testConfig())
}

func newAuthRouter(am *AuthMiddleware, roles ...role.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", am.WithAuthCheck(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c).Username})
	})
	return router
}

func doRequest(router http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signWith(t *testing.T, secret string, claims *ds.JWTClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestIssueAndParseToken(t *testing.T) {
	am := newTestAuth()

	token, expiresAt, err := am.IssueToken(1)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := am.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, "contentgenius", claims.Issuer)
}

func TestWithAuthCheckAcceptsValidToken(t *testing.T) {
	am := newTestAuth()
	token, _, err := am.IssueToken(1)
	require.NoError(t, err)

	w := doRequest(newAuthRouter(am), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestWithAuthCheckRejections(t *testing.T) {
	am := newTestAuth()
	router := newAuthRouter(am)

	valid := func(id uint) string {
		token, _, err := am.IssueToken(id)
		require.NoError(t, err)
		return token
	}
	expired := signWith(t, "test-secret", &ds.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID: 1,
	})
	forged := signWith(t, "other-secret", &ds.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: 1,
	})

	cases := []struct {
		name    string
		header  string
		message string
	}{
		{"missing", "", "Token is missing"},
		{"no bearer prefix", valid(1), "Invalid token format"},
		{"empty token", "Bearer ", "Invalid token format"},
		{"malformed", "Bearer not-a-token", "Token is malformed"},
		{"expired", "Bearer " + expired, "Token has expired"},
		{"bad signature", "Bearer " + forged, "Token signature is invalid"},
		{"unknown user", "Bearer " + valid(42), "User not found"},
		{"deactivated", "Bearer " + valid(3), "Account is deactivated"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tc.message)
		})
	}
}

func TestWithAuthCheckRequiresRole(t *testing.T) {
	am := newTestAuth()
	router := newAuthRouter(am, role.Admin)

	userToken, _, err := am.IssueToken(1)
	require.NoError(t, err)
	w := doRequest(router, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access required")

	adminToken, _, err := am.IssueToken(2)
	require.NoError(t, err)
	w = doRequest(router, "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnershipPredicates(t *testing.T) {
	owner := &ds.User{ID: 1}
	other := &ds.User{ID: 2}
	admin := &ds.User{ID: 3, IsAdmin: true}

	assert.True(t, OwnerOrAdmin(owner, 1))
	assert.True(t, OwnerOrAdmin(admin, 1))
	assert.False(t, OwnerOrAdmin(other, 1))
	assert.False(t, OwnerOrAdmin(nil, 1))

	assert.True(t, OwnerOnly(owner, 1))
	assert.False(t, OwnerOnly(admin, 1))
}
