package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"contentgenius/internal/app/catalog"
	"contentgenius/internal/app/config"
	"contentgenius/internal/app/ds"
	"contentgenius/internal/app/generator"
	"contentgenius/internal/app/handler"
	"contentgenius/internal/app/middleware"
	"contentgenius/internal/app/repository"
	"contentgenius/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeArchive struct {
	docs []storage.Document
}

func (a *fakeArchive) Put(_ context.Context, orderID uint, doc storage.Document) (string, error) {
	a.docs = append(a.docs, doc)
	return fmt.Sprintf("https://archive.local/orders/%d/export.%s", orderID, doc.Extension), nil
}

type testEnv struct {
	t       *testing.T
	router  *gin.Engine
	repo    *repository.Repository
	llm     *generator.MockLLM
	auth    *middleware.AuthMiddleware
	cfg     *config.Config
	archive *fakeArchive

	user, other, admin                *ds.User
	userToken, otherToken, adminToken string
}

type envOption func(*config.Config, *handler.APIHandler, *middleware.Limiter)

func withRequiredPayment() envOption {
	return func(cfg *config.Config, _ *handler.APIHandler, _ *middleware.Limiter) {
		cfg.Workflow.RequirePayment = true
	}
}

func withLimiter(l middleware.Limiter) envOption {
	return func(_ *config.Config, _ *handler.APIHandler, limiter *middleware.Limiter) {
		*limiter = l
	}
}

func withArchive(a *fakeArchive) envOption {
	return func(_ *config.Config, h *handler.APIHandler, _ *middleware.Limiter) {
		h.Archive = a
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	repo, err := repository.New(repository.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	require.NoError(t, repo.Seed(catalog.DefaultTemplates(), nil))

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:        "handler-test-secret",
			ExpiresIn:     time.Hour,
			Issuer:        "contentgenius",
			SigningMethod: jwt.SigningMethodHS256,
		},
	}

	llm := &generator.MockLLM{}
	gen := generator.New(repo, llm, generator.DefaultSettings())
	auth := middleware.NewAuthMiddleware(repo, cfg)
	api := handler.NewAPIHandler(repo, gen, nil, handler.NewAuthHandler(repo, auth), cfg)

	var limiter middleware.Limiter
	for _, opt := range opts {
		opt(cfg, api, &limiter)
	}

	router := gin.New()
	api.RegisterAPIRoutes(router, auth, limiter)

	env := &testEnv{t: t, router: router, repo: repo, llm: llm, auth: auth, cfg: cfg}
	if a, ok := api.Archive.(*fakeArchive); ok {
		env.archive = a
	}
	env.user, env.userToken = env.createUser("alice", false)
	env.other, env.otherToken = env.createUser("bob", false)
	env.admin, env.adminToken = env.createUser("root", true)
	return env
}

func (e *testEnv) createUser(username string, admin bool) (*ds.User, string) {
	e.t.Helper()
	user := &ds.User{
		Username: username,
		Email:    username + "@example.com",
		IsAdmin:  admin,
		IsActive: true,
	}
	require.NoError(e.t, user.SetPassword("secret123"))
	require.NoError(e.t, e.repo.CreateUser(user))

	token, _, err := e.auth.IssueToken(user.ID)
	require.NoError(e.t, err)
	return user, token
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func object(t *testing.T, body map[string]interface{}, key string) map[string]interface{} {
	t.Helper()
	value, ok := body[key].(map[string]interface{})
	require.True(t, ok, "missing %q in %v", key, body)
	return value
}

// createOrder places a blog post order for token and returns its id.
func (e *testEnv) createOrder(token string, wordCount int) uint {
	e.t.Helper()
	w := e.do(http.MethodPost, "/api/orders", token, map[string]interface{}{
		"content_type": catalog.BlogPost,
		"title":        "Go in production",
		"description":  "Lessons from running Go services",
		"word_count":   wordCount,
		"requirements": map[string]interface{}{"tone": "practical"},
	})
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())
	order := object(e.t, decode(e.t, w), "order")
	return uint(order["id"].(float64))
}

func (e *testEnv) orderStatus(id uint) ds.OrderStatus {
	e.t.Helper()
	order, err := e.repo.GetOrderByID(id)
	require.NoError(e.t, err)
	return order.Status
}
