package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"giftme/internal/config"
	"giftme/internal/handler"
	"giftme/internal/repository"
	"giftme/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Gift Me Storefront Backend")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	// Initialize Gemini client. A disabled client is passed as nil so the
	// chat pipeline runs keyword-only with static replies.
	var oracle service.Oracle
	if cfg.Gemini.Enabled {
		oracle = service.NewGeminiClient(&cfg.Gemini)
		log.Printf("✅ Gemini client initialized")
		log.Printf("   - API Base: %s", cfg.Gemini.APIBase)
		log.Printf("   - Model: %s", cfg.Gemini.Model)
		log.Printf("   - Timeout: %ds", cfg.Gemini.Timeout)
	} else {
		log.Println("⚠️  Gemini is disabled - assistant falls back to keyword matching only")
		log.Println("   Set GEMINI_API_KEY environment variable to enable AI features")
	}

	// Initialize services
	chatService := service.NewChatService(
		repo,
		repo,
		oracle,
		time.Duration(cfg.Bot.OracleTimeout)*time.Second,
		cfg.Bot.SuggestionLimit,
	)

	log.Println("✅ Services initialized")

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatService)
	comboHandler := handler.NewComboHandler(repo)
	newsHandler := handler.NewNewsHandler(repo)
	contentHandler := handler.NewContentHandler(repo)
	replyHandler := handler.NewReplyHandler(repo)
	embeddingHandler := handler.NewEmbeddingHandler(repo, cfg.Gemini.EmbeddingDimensions)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "giftme-backend",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Assistant
		apiV1.POST("/bot/response", chatHandler.Respond)

		// Keyword records (back office)
		apiV1.GET("/bot", replyHandler.List)
		apiV1.POST("/bot", replyHandler.Create)
		apiV1.PUT("/bot/:id", replyHandler.Update)
		apiV1.DELETE("/bot/:id", replyHandler.Delete)

		// Catalog
		apiV1.GET("/combos", comboHandler.List)
		apiV1.GET("/combos/hot", comboHandler.Hot)
		apiV1.GET("/combos/:id", comboHandler.Get)
		apiV1.GET("/combos/:id/suggested", comboHandler.Suggested)
		apiV1.POST("/combos", comboHandler.Create)
		apiV1.PUT("/combos/:id", comboHandler.Update)
		apiV1.DELETE("/combos/:id", comboHandler.Delete)

		// News
		apiV1.GET("/news", newsHandler.List)
		apiV1.GET("/news/:id", newsHandler.Get)
		apiV1.POST("/news", newsHandler.Create)
		apiV1.PUT("/news/:id", newsHandler.Update)
		apiV1.DELETE("/news/:id", newsHandler.Delete)

		// Content blocks
		apiV1.GET("/content", contentHandler.List)
		apiV1.POST("/content", contentHandler.Create)
		apiV1.PUT("/content/:id", contentHandler.Update)
		apiV1.DELETE("/content/:id", contentHandler.Delete)

		// Embeddings (back office)
		apiV1.POST("/embeddings/batch", embeddingHandler.BatchUpdate)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"error": "Endpoint not found"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API root: http://localhost:%d/api/v1", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
