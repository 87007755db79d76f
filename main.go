package main

import (
	"fmt"
	"log"
	"os"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitLogger()
	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter(docService *usecase.DocumentService, userService *usecase.UserService, sessionRepo *repository.SessionRepo) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", func(c *gin.Context) {
				handler.RegistrationHandler(c, userService)
			})
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, userService, sessionRepo)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}
	}

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", func(c *gin.Context) {
				handler.GetUserProfileHandler(c, userService)
			})
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessionsHandler(c, sessionRepo)
			})
			sessions.DELETE("/:id", func(c *gin.Context) {
				handler.EndSessionHandler(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessionsHandler(c, sessionRepo)
			})
		}

		twoFactor := protected.Group("/2fa")
		{
			twoFactor.POST("/generate", func(c *gin.Context) {
				handler.Generate2FASecretHandler(c, userService)
			})
			twoFactor.POST("/enable", func(c *gin.Context) {
				handler.Enable2FAHandler(c, userService)
			})
			twoFactor.POST("/disable", func(c *gin.Context) {
				handler.Disable2FAHandler(c, userService)
			})
		}

		documents := protected.Group("/documents")
		{
			documents.GET("/", func(c *gin.Context) {
				handler.ListDocumentsHandler(c, docService)
			})
			documents.GET("/categories", func(c *gin.Context) {
				handler.ListCategoriesHandler(c, docService)
			})
			documents.POST("/", func(c *gin.Context) {
				handler.CreateDocumentHandler(c, docService)
			})
			documents.GET("/:id", func(c *gin.Context) {
				handler.GetDocumentHandler(c, docService)
			})
			documents.PUT("/:id", func(c *gin.Context) {
				handler.UpdateDocumentHandler(c, docService)
			})
			documents.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteDocumentHandler(c, docService)
			})
		}

		protected.GET("/stats", func(c *gin.Context) {
			handler.GetStatsHandler(c, docService, sessionRepo)
		})
	}

	return router
}

func main() {
	dbConfig := config.LoadDatabaseConfig()
	if err := repository.SetupIndexes(utils.MongoClient.Database(dbConfig.DatabaseName)); err != nil {
		utils.Sugar.Errorf("Failed to create indexes: %v", err)
	}

	// Redis is optional; without it reads go straight to Mongo and
	// logout cannot revoke tokens early.
	cacheConfig := config.LoadCacheConfig()
	if cache, err := services.NewDocumentCache(cacheConfig); err != nil {
		utils.Sugar.Warnf("Document cache disabled: %v", err)
	} else {
		services.GlobalDocumentCache = cache
	}
	if blacklist, err := services.NewTokenBlacklist(cacheConfig.RedisURL); err != nil {
		utils.Sugar.Warnf("Token blacklist disabled: %v", err)
	} else {
		services.TokenBlacklist = blacklist
	}

	docRepo := repository.GetDocumentRepo(utils.MongoClient)
	userRepo := repository.GetUserRepo(utils.MongoClient)
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)

	docService := &usecase.DocumentService{
		Store: docRepo,
		Cache: services.GlobalDocumentCache,
	}
	userService := &usecase.UserService{
		UserRepo: userRepo,
	}

	router := setupRouter(docService, userService, sessionRepo)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	utils.Sugar.Infof("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
