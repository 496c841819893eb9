package pkg

import (
	"contentgenius/internal/app/config"
	"contentgenius/internal/app/handler"
	"contentgenius/internal/app/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Handler *handler.APIHandler
}

// NewApp registers the API routes on r.
func NewApp(c *config.Config, r *gin.Engine, h *handler.APIHandler, auth *middleware.AuthMiddleware, limiter middleware.Limiter) *Application {
	h.RegisterAPIRoutes(r, auth, limiter)
	return &Application{
		Config:  c,
		Router:  r,
		Handler: h,
	}
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	serverAddress := a.Config.Address()
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
