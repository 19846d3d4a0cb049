package restapi

import (
	"github.com/ashabelnikov/file-pipeline/config"
	v1 "github.com/ashabelnikov/file-pipeline/internal/controller/restapi/v1"
	"github.com/ashabelnikov/file-pipeline/internal/usecase"
	"github.com/ashabelnikov/file-pipeline/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title File pipeline
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(app *fiber.App, cfg *config.Config, files usecase.FileUseCase, l logger.Interface) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewFileRoutes(apiV1Group, files, l)
	}
}
