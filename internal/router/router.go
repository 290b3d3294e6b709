// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/podworks/pod-backend/internal/cache"
	"github.com/podworks/pod-backend/internal/config"
	"github.com/podworks/pod-backend/internal/handlers"
	"github.com/podworks/pod-backend/internal/middleware"
	"github.com/podworks/pod-backend/internal/services"
)

// Deps exposes the services the scheduler shares with the HTTP layer.
type Deps struct {
	GenerationService *services.GenerationService
	AnalyticsService  *services.AnalyticsService
}

func Initialize(db *gorm.DB, cfg *config.Config, cacheClient *cache.Client) (*gin.Engine, *Deps, error) {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, nil, err
	}

	artGenService := services.NewArtGenService(cfg)
	shopifyService := services.NewShopifyService(cfg)

	keywordService := services.NewKeywordService(db, cfg)
	generationService := services.NewGenerationService(db, cfg, artGenService, storageService, keywordService)
	productService := services.NewProductService(db)
	feedbackService := services.NewFeedbackService(db, storageService)
	listingService := services.NewListingService(db, shopifyService)
	orderService := services.NewOrderService(db)
	analyticsService := services.NewAnalyticsService(db, cacheClient)
	providerService := services.NewProviderService(db)

	// Initialize handlers
	trendHandler := handlers.NewTrendHandler(keywordService)
	generationHandler := handlers.NewGenerationHandler(generationService)
	productHandler := handlers.NewProductHandler(productService, listingService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	listingHandler := handlers.NewListingHandler(listingService)
	orderHandler := handlers.NewOrderHandler(orderService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService, feedbackService)
	providerHandler := handlers.NewProviderHandler(providerService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Review dashboard contract, kept at the root for older dashboard builds
	r.POST("/feedback", feedbackHandler.RecordFeedback)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		v1.POST("/feedback", feedbackHandler.RecordFeedback)

		feedback := v1.Group("/feedback")
		{
			feedback.POST("/bulk", feedbackHandler.BulkFeedback)
			feedback.GET("/preferences", feedbackHandler.Preferences)
			feedback.GET("/:id/history", feedbackHandler.History)
		}

		// Trend keyword routes
		trends := v1.Group("/trends")
		{
			trends.GET("", trendHandler.ListKeywords)
			trends.GET("/stats", trendHandler.Stats)
			trends.POST("/manual-add", trendHandler.ManualAdd)
			trends.POST("/batch-import", trendHandler.BatchImport)
			trends.POST("/allocate", trendHandler.PlanAllocation)
			trends.GET("/:id", trendHandler.GetKeyword)
			trends.PUT("/:id/allocation", trendHandler.UpdateAllocation)
			trends.POST("/:id/deactivate", trendHandler.DeactivateKeyword)
		}

		// Generation routes
		generation := v1.Group("/generation")
		generation.Use(middleware.GenerationRateLimit())
		{
			generation.POST("/generate", generationHandler.Generate)
			generation.POST("/batch-generate", generationHandler.BatchGenerate)
			generation.GET("/status", generationHandler.Status)
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/stats", productHandler.Stats)
			products.GET("/pending", productHandler.Pending)
			products.GET("/approved", productHandler.Approved)
			products.GET("/rejected", productHandler.Rejected)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("/:id/pause", productHandler.Pause)
			products.POST("/:id/archive", productHandler.Archive)
			products.POST("/:id/reactivate", productHandler.Reactivate)
		}

		// Listing routes
		listings := v1.Group("/listings")
		{
			listings.GET("", listingHandler.ListListings)
			listings.POST("/publish", listingHandler.Publish)
			listings.GET("/:id", listingHandler.GetListing)
		}

		v1.GET("/platforms", listingHandler.ListPlatforms)

		// Order routes
		orders := v1.Group("/orders")
		{
			orders.GET("", orderHandler.ListOrders)
			orders.POST("", orderHandler.IngestOrder)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id/status", orderHandler.UpdateStatus)
		}

		// Analytics routes
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/summary", analyticsHandler.Summary)
			analytics.GET("/approval-stats", analyticsHandler.ApprovalStats)
			analytics.GET("/series", analyticsHandler.Series)
			analytics.GET("/top-products", analyticsHandler.TopProducts)
			analytics.POST("/rollup", analyticsHandler.Rollup)
		}

		// Provider routes
		providers := v1.Group("/providers")
		{
			providers.GET("", providerHandler.ListProviders)
			providers.PUT("/:id", providerHandler.UpdateProvider)
		}
	}

	deps := &Deps{
		GenerationService: generationService,
		AnalyticsService:  analyticsService,
	}

	return r, deps, nil
}
