package main

import (
	"net/http"

	"recommendations/config"
	"recommendations/handlers"
	"recommendations/helper"
	"recommendations/middleware"
	"recommendations/repositories"
	"recommendations/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		sugar.Info("No .env file found")
	}

	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg.DatabaseURI)
	if err != nil {
		sugar.Fatalw("failed to connect to database", "error", err)
	}

	// Initialize layers
	httpHelper := helper.NewHTTPHelper()
	recommendationRepo := repositories.NewRecommendationRepository(db)
	recommendationService := services.NewRecommendationService(recommendationRepo, sugar)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, httpHelper)

	// Setup router
	router := gin.Default()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		httpHelper.SendErrorWithStatus(c, http.StatusMethodNotAllowed,
			"The method is not allowed for the requested URL")
	})
	router.NoRoute(func(c *gin.Context) {
		httpHelper.SendErrorWithStatus(c, http.StatusNotFound, "Not Found")
	})

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Service descriptor
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Recommendations Service",
			"version": "1.0",
			"description": "This microservice manages product-to-product recommendations " +
				"for the eCommerce platform. It supports Create, Read, Update, " +
				"Delete, and List operations for recommendation relationships.",
			"endpoints": gin.H{
				"list":   "/recommendations",
				"create": "/recommendations",
				"read":   "/recommendations/<id>",
				"update": "/recommendations/<id>",
				"delete": "/recommendations/<id>",
			},
			"status": "OK",
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	recs := router.Group("/recommendations")
	recs.GET("", recommendationHandler.List)
	recs.GET("/:id", recommendationHandler.Get)

	// Write endpoints require a bearer token when service-account
	// credentials are configured; otherwise the API is fully open.
	writes := recs.Group("")
	if cfg.Auth.Enabled() {
		authService, err := services.NewAuthService(cfg.Auth)
		if err != nil {
			sugar.Fatalw("failed to initialize auth", "error", err)
		}
		authHandler := handlers.NewAuthHandler(authService, httpHelper)
		router.POST("/auth/token", authHandler.IssueToken)
		writes.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
	}
	writes.POST("", recommendationHandler.Create)
	writes.PUT("/:id", recommendationHandler.Update)
	writes.DELETE("/:id", recommendationHandler.Delete)
	writes.PUT("/:id/like", recommendationHandler.Like)
	writes.DELETE("/:id/like", recommendationHandler.Dislike)
	writes.PUT("/:id/activate", recommendationHandler.Activate)
	writes.PUT("/:id/cancel", recommendationHandler.Cancel)
	writes.POST("/:id/send", recommendationHandler.Send)

	sugar.Infow("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}
