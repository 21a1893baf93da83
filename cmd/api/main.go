package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/uyeplus/app-campaign/internal/backend"
	"github.com/uyeplus/app-campaign/internal/config"
	"github.com/uyeplus/app-campaign/internal/handlers"
	"github.com/uyeplus/app-campaign/internal/logging"
	"github.com/uyeplus/app-campaign/internal/mailer"
	"github.com/uyeplus/app-campaign/internal/middleware"
	"github.com/uyeplus/app-campaign/internal/observability"
	"github.com/uyeplus/app-campaign/internal/redisclient"
	"github.com/uyeplus/app-campaign/internal/services"
	"github.com/uyeplus/app-campaign/internal/session"
	"go.uber.org/zap"

	_ "github.com/uyeplus/app-campaign/docs"
)

// @title           Campaign Application API
// @version         1.0
// @description     API for the campaign-application portal. End users verify their identity number against a membership whitelist, receive a short-lived session token and submit a campaign application form guarded by that token.

// @host      localhost:8080
// @BasePath  /v1

// @tag.name eligibility
// @tag.description Identity verification and eligibility operations

// @tag.name applications
// @tag.description Application submission operations

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.SessionSecret == config.DevSessionSecret {
		logging.Logger.Warn("SESSION_SECRET not set, using development fallback secret")
	}

	// Initialize observability
	observability.InitTracer(cfg)
	defer observability.ShutdownTracer()

	// Initialize the cache
	var cache *redisclient.Client
	redisOpts, err := redis.ParseURL(cfg.RedisURI)
	if err != nil {
		logging.Logger.Warn("invalid REDIS_URI, running without cache", zap.Error(err))
	} else {
		if cfg.RedisPassword != "" {
			redisOpts.Password = cfg.RedisPassword
		}
		redisOpts.DB = cfg.RedisDB
		cache = redisclient.NewClient(redis.NewClient(redisOpts))
	}

	// Wire the core services
	backendClient := backend.NewClient(cfg, logging.Logger)
	codec := session.NewCodec(cfg.SessionSecret, cfg.SessionTTL)
	campaignService := services.NewCampaignService(backendClient, cache, cfg.RedisTTL, cfg.DefaultCampaignCode, logging.Logger)

	transport, err := mailer.NewSMTPTransport(cfg)
	if err != nil {
		logging.Logger.Fatal("failed to create SMTP transport", zap.Error(err))
	}
	notifier := mailer.NewMailer(transport, cfg.SMTPSender, logging.Logger)

	eligibilityService := services.NewEligibilityService(backendClient, campaignService, codec, logging.Logger)
	submissionService := services.NewSubmissionService(backendClient, campaignService, codec, notifier, cfg.NotifyEmail, cfg.ConsentVersion, logging.Logger)

	handler := handlers.New(eligibilityService, submissionService)
	healthHandler := handlers.NewHealthHandler(cache)

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/health", healthHandler.HealthCheck)
		v1.POST("/eligibility", handler.CheckEligibility)
		v1.POST("/applications", handler.SubmitApplication)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
