package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/journal_workflow_app/cmd/docs"
	"github.com/SscSPs/journal_workflow_app/internal/adapters/messaging/producers"
	portssvc "github.com/SscSPs/journal_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/journal_workflow_app/internal/core/services"
	"github.com/SscSPs/journal_workflow_app/internal/handlers"
	"github.com/SscSPs/journal_workflow_app/internal/middleware"
	"github.com/SscSPs/journal_workflow_app/internal/platform/config"
	"github.com/SscSPs/journal_workflow_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/journal_workflow_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	kafkaWriteTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// @title Journal Workflow API
// @version 1.0
// @description Journal entry drafting, approval and confirmation with balance checks.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{MaxConns: cfg.PgsqlMaxConns})
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	dispatcher, err := newEventDispatcher(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize event dispatcher", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dispatcher.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	svc := services.NewServiceContainer(cfg, repos, dispatcher)

	if cfg.BootstrapAdminEmail != "" {
		if err := svc.User.EnsureAdmin(ctx, cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword); err != nil {
			logger.Error("Failed to bootstrap admin user", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svc, rateLimiter)
	setupSwaggerRoutes(r, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		logger.Error("Server failed to run", slog.String("error", err.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
}

// newEventDispatcher publishes to Kafka when brokers are configured and only
// logs events otherwise.
func newEventDispatcher(cfg *config.Config, logger *slog.Logger) (portssvc.EntryEventDispatcher, error) {
	var publisher portssvc.EntryEventPublisher
	if cfg.EventsEnabled() {
		producer, err := producers.NewEntryEventProducer(logger, cfg.KafkaBrokers, cfg.KafkaEntryEventsTopic, kafkaWriteTimeout)
		if err != nil {
			return nil, err
		}
		publisher = producer
		logger.Info("Publishing entry events to Kafka", slog.String("topic", cfg.KafkaEntryEventsTopic))
	} else {
		publisher = services.NewLogEventPublisher(logger)
		logger.Info("Kafka brokers not configured, entry events are only logged")
	}

	return services.NewEntryEventDispatcher(publisher, services.EventDispatcherConfig{PoolSize: cfg.EventWorkerPoolSize}, logger)
}

func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// Swagger UI is only served outside production.
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
