package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/craveless/backend/internal/config"
	"github.com/craveless/backend/internal/handlers"
	"github.com/craveless/backend/internal/logger"
	"github.com/craveless/backend/internal/middleware"
	"github.com/craveless/backend/internal/repository"
	"github.com/craveless/backend/internal/service"
	"github.com/craveless/backend/pkg/supabase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env for local development; deployed targets rely on real
	// environment variables
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting craveless API server",
		logger.String("env", cfg.Server.Env),
		logger.String("supabase_url", cfg.Supabase.URL),
	)

	// Custom binding tags must be registered before any handler binds
	if err := handlers.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	// Initialize Supabase client
	supabaseClient := supabase.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey)

	// Initialize repositories
	cravingRepo := repository.NewCravingEventRepository(supabaseClient)
	outcomeRepo := repository.NewOutcomeRepository(supabaseClient)

	// Initialize services
	cravingService := service.NewCravingService(cravingRepo, outcomeRepo)
	analyticsService := service.NewAnalyticsService(cravingRepo, outcomeRepo, cfg.Engine.MinSamples)
	sessionService := service.NewSessionService(cravingRepo, outcomeRepo)

	// Initialize handlers
	cravingHandler := handlers.NewCravingHandler(cravingService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	sessionHandler := handlers.NewSessionHandler(sessionService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(middleware.Logger())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.Auth(supabaseClient))
		{
			// Craving routes
			protected.GET("/cravings", cravingHandler.ListCravings)
			protected.POST("/cravings", cravingHandler.CreateCraving)
			protected.GET("/cravings/:id", cravingHandler.GetCraving)
			protected.DELETE("/cravings/:id", cravingHandler.DeleteCraving)
			protected.POST("/cravings/:id/outcome", cravingHandler.RecordOutcome)

			// Analytics routes
			protected.GET("/analytics/summary", analyticsHandler.GetSummary)
			protected.GET("/analytics/streaks", analyticsHandler.GetStreaks)
			protected.GET("/analytics/effectiveness", analyticsHandler.GetEffectiveness)
			protected.GET("/analytics/risk-windows", analyticsHandler.GetRiskWindows)
			protected.GET("/analytics/prediction", analyticsHandler.PredictSuccess)
			protected.GET("/analytics/recommendation", analyticsHandler.RecommendMethod)

			// Intervention session routes
			protected.POST("/sessions", sessionHandler.StartSession)
			protected.GET("/sessions/:id", sessionHandler.GetSession)
			protected.PATCH("/sessions/:id/intensity", sessionHandler.UpdateIntensity)
			protected.POST("/sessions/:id/complete", sessionHandler.CompleteSession)
		}
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
