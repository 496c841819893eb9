// @title           ContentGenius API
// @version         1.0
// @description     Content ordering backend: accounts, orders, simulated payments and LLM content generation.

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

package main

import (
	"contentgenius/internal/api"

	_ "contentgenius/docs"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("App start")
	api.StartServer()
	logrus.Info("App terminated")
}
