package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/config"
	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/controllers"
	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/middleware"
	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/routes"
	"github.com/mercado-sofia/FAITH-CommUNITY-sub001/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, logger := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}
	defer logger.Sync()

	config.InitDB()
	config.InitRedis()
	config.InitStorage()

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware(os.Getenv("CORS_ALLOWED_ORIGINS")))

	// Wire the submission workflow.
	images := services.NewImageService(config.Store, logger)
	slugs := services.NewSlugService()
	collabs := services.NewCollaborationService(logger)
	registry := services.NewRegistry(images, slugs, collabs, logger)
	notifier := services.NewNotificationService(config.DB, config.Redis, logger)
	approvals := services.NewApprovalService(config.DB, registry, notifier, logger)
	bulk := services.NewBulkService(config.DB, approvals, logger)

	submissionController := controllers.NewSubmissionController(config.DB, approvals, bulk, logger)
	notificationController := controllers.NewNotificationController(config.DB)

	routes.SetupRoutes(router, submissionController, notificationController)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("server listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}
