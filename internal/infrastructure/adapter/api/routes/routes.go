package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/cnab-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/cnab-processor/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	File    *handler.FileHandler
	Store   *handler.StoreHandler
	Health  *handler.HealthHandler
	Metrics http.Handler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.Metrics))
	}

	v1 := router.Group("/api/v1")
	{
		files := v1.Group("/files")
		files.POST("", h.File.Upload)
		files.GET("/:id", h.File.GetFile)
		files.POST("/:id/process", h.File.Process)

		stores := v1.Group("/stores")
		stores.GET("", h.Store.ListBalances)
		stores.GET("/:id/statement", h.Store.GetStatement)
	}
}

// SetupMiddlewares configures global middlewares for the API. observer may be nil.
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, observer middleware.HTTPObserver) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	if observer != nil {
		router.Use(middleware.Metrics(observer))
	}
	router.Use(middleware.ErrorHandler(logger))
}
