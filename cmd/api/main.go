package main

import (
	"fmt"
	"net/http"
	"os"

	"tradesim/internal/config"
	"tradesim/internal/database"
	"tradesim/internal/handlers"
	"tradesim/internal/logger"
	"tradesim/internal/middleware"
	"tradesim/internal/models"
	"tradesim/internal/quote"
	"tradesim/internal/services"
	"tradesim/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tradesim/internal/docs" // Import swagger docs
)

// @title           Tradesim API
// @version         1.0
// @description     Tradesim is a trading-simulation backend: signup/login with JWT sessions, a portfolio ledger, an admin approval workflow, and a market quote gateway.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	portfolioService := services.NewPortfolioService(db)
	fundsService := services.NewFundsService(db)
	auditService := services.NewAuditService(db)
	requestService := services.NewRequestService(db, portfolioService, fundsService, userService, auditService)

	// Quote gateway: provider plus optional Redis cache
	var provider quote.Provider
	if cfg.QuoteProvider == "mock" {
		provider = quote.NewMockProvider()
	} else {
		provider = quote.NewYahooProvider(http.DefaultClient)
	}
	var cache *quote.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		cache = quote.NewCache(rdb, cfg.QuoteCacheTTL)
		log.Infof("Quote cache enabled via redis at %s", cfg.RedisAddr)
	}
	quoteService := quote.NewService(provider, cache, cfg.QuoteTimeout)
	log.Infof("Quote provider: %s", provider.Name())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, fundsService)
	requestHandler := handlers.NewRequestHandler(requestService)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	systemHandler := handlers.NewSystemHandler(cfg, dbManager)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware for the local frontends
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost:3000")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.NoRoute(handlers.NotFound)

	// System routes
	router.GET("/", systemHandler.Root)
	router.GET("/api/health", systemHandler.Health)
	router.POST("/init-db", systemHandler.InitDB)

	// Auth routes
	auth := router.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	authed := auth.Group("/")
	authed.Use(middleware.RequireAuth())
	authed.GET("/me", authHandler.Me)
	authed.GET("/portfolio", portfolioHandler.GetPortfolio)

	adminPortfolio := authed.Group("/portfolio")
	adminPortfolio.Use(middleware.RequireRole(models.RoleAdmin))
	adminPortfolio.GET("/:id/buy", portfolioHandler.Buy)
	adminPortfolio.GET("/:id/sell", portfolioHandler.Sell)

	// Quote routes (public)
	quotes := router.Group("/quote")
	quotes.GET("/ticker/:symbol", quoteHandler.Ticker)
	quotes.GET("/history/:symbol", quoteHandler.History)

	// Request workflow routes
	requests := router.Group("/request")
	requests.Use(middleware.RequireAuth())
	requests.POST("/add", requestHandler.Submit)
	requests.GET("/mine", requestHandler.Mine)

	adminRequests := requests.Group("", middleware.RequireRole(models.RoleAdmin))
	adminRequests.GET("", requestHandler.List)
	adminRequests.GET("/:id", requestHandler.GetByID)
	adminRequests.POST("/accept/:id", requestHandler.Resolve)

	log.Infof("Starting tradesim backend server on port %s", cfg.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
	return router.Run(":" + cfg.Port)
}
