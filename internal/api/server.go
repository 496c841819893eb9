package api

import (
	"context"
	"fmt"
	"time"

	"contentgenius/internal/app/catalog"
	"contentgenius/internal/app/config"
	"contentgenius/internal/app/ds"
	"contentgenius/internal/app/generator"
	"contentgenius/internal/app/handler"
	"contentgenius/internal/app/middleware"
	"contentgenius/internal/app/redis"
	"contentgenius/internal/app/repository"
	"contentgenius/internal/app/storage"
	"contentgenius/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	if err := cfg.Log.SetupLogging(); err != nil {
		logrus.Fatalf("error configuring logging: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, cleanup, err := NewApplication(ctx, cfg)
	if err != nil {
		logrus.Fatalf("error initializing application: %v", err)
	}
	defer cleanup()

	app.RunApp()
	logrus.Info("Server down")
}

// NewApplication wires storage, generation and transport from cfg. The returned
// cleanup closes every connection that was opened.
func NewApplication(ctx context.Context, cfg *config.Config) (*pkg.Application, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logrus.WithError(err).Warn("error during shutdown")
			}
		}
	}
	fail := func(err error) (*pkg.Application, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	repo, err := repository.New(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return fail(fmt.Errorf("repository: %w", err))
	}
	closers = append(closers, repo.Close)

	admin, err := bootstrapAdmin(cfg.Admin)
	if err != nil {
		return fail(err)
	}
	if err := repo.Seed(catalog.DefaultTemplates(), admin); err != nil {
		return fail(fmt.Errorf("seed: %w", err))
	}

	llm, err := generator.NewLLMClient(generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.Timeout,
	})
	if err != nil {
		return fail(fmt.Errorf("llm client: %w", err))
	}
	gen := generator.New(repo, llm, generator.Settings{
		Model:        cfg.LLM.Model,
		PreviewModel: cfg.LLM.PreviewModel,
		Temperature:  cfg.LLM.Temperature,
	})

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, redisClient.Close)
	}
	limiter := newLimiter(ctx, cfg.RateLimit, redisClient)

	var archive handler.ContentArchive
	if cfg.MinIO.Enabled() {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			return fail(err)
		}
		archive = minioClient
	}

	authMiddleware := middleware.NewAuthMiddleware(repo, cfg)
	apiHandler := handler.NewAPIHandler(repo, gen, archive, handler.NewAuthHandler(repo, authMiddleware), cfg)

	router := gin.Default()
	router.Use(cors.New(corsConfig(cfg.CORS)))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	logrus.WithFields(logrus.Fields{
		"db_driver":    cfg.DB.Driver,
		"llm_provider": cfg.LLM.Provider,
		"redis":        cfg.Redis.Enabled(),
		"minio":        cfg.MinIO.Enabled(),
		"rate_limit":   cfg.RateLimit.Enabled,
	}).Info("application initialized")

	return pkg.NewApp(cfg, router, apiHandler, authMiddleware, limiter), cleanup, nil
}

func bootstrapAdmin(cfg config.AdminConfig) (*ds.User, error) {
	if cfg.Username == "" {
		return nil, nil
	}
	admin := &ds.User{
		Username:  cfg.Username,
		Email:     cfg.Email,
		FirstName: cfg.FirstName,
		LastName:  cfg.LastName,
		IsAdmin:   true,
		IsActive:  true,
	}
	if err := admin.SetPassword(cfg.Password); err != nil {
		return nil, fmt.Errorf("admin password: %w", err)
	}
	if cfg.Password == config.DefaultAdminPassword {
		logrus.WithField("username", cfg.Username).Warn("admin account uses the default password, set admin.password")
	}
	return admin, nil
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	corsCfg.AllowOrigins = cfg.AllowedOrigins
	corsCfg.AllowCredentials = true
	return corsCfg
}

// newLimiter prefers the shared Redis counter and falls back to per-process buckets.
func newLimiter(ctx context.Context, cfg config.RateLimitConfig, redisClient *redis.Client) middleware.Limiter {
	if !cfg.Enabled {
		return nil
	}
	if redisClient != nil {
		return middleware.NewRedisLimiter(redisClient, cfg.Requests, cfg.Window)
	}
	limiter := middleware.NewMemoryLimiter(cfg.Requests, cfg.Window)
	limiter.StartCleanup(ctx, cfg.Window)
	return limiter
}
