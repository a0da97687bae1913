package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clothing-catalog/internal/cache"
	"clothing-catalog/internal/handlers"
	"clothing-catalog/internal/middleware"
	"clothing-catalog/internal/repository"
)

// RegisterRoutes mounts the catalog and banner endpoints on router.
func RegisterRoutes(router *gin.Engine, catalog repository.Catalog, categories *cache.Cache, log *zap.Logger) {
	products := handlers.NewProductHandler(catalog, categories, log)
	banners := handlers.NewBannerHandler(catalog, log)

	router.GET("/healthz", products.Health)

	router.GET("/categories", products.GetCategories)
	router.GET("/category/:name", products.GetByCategory)
	router.GET("/search", products.Search)
	router.GET("/products", products.ListProducts)
	router.GET("/product/:id", products.GetProduct)
	router.POST("/add", products.AddProduct)

	router.GET("/banners", banners.ListBanners)
	router.POST("/banners", banners.AddBanner)
}

// NewRouter builds the engine with recovery, request ids and access logging.
func NewRouter(catalog repository.Catalog, categories *cache.Cache, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(log))
	RegisterRoutes(router, catalog, categories, log)
	return router
}
