package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placefinder/internal/auth"
	"placefinder/internal/config"
	"placefinder/internal/handler"
	"placefinder/internal/logger"
	"placefinder/internal/repository"
	"placefinder/internal/service"
	"placefinder/internal/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = log.Sync() }()

	log.Info("starting place finder",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	shutdownTracing, err := tracing.Setup(cfg.Tracing, os.Stderr)
	if err != nil {
		log.Fatal("failed to set up tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("failed to flush spans", zap.Error(err))
		}
	}()

	if cfg.Auth.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set - every ask will be rejected")
	}

	// Memory store and ask log
	memory, askLog, closeStore, err := openMemoryStore(cfg, log)
	if err != nil {
		log.Fatal("failed to open memory store", zap.String("backend", cfg.Memory.Backend), zap.Error(err))
	}
	defer closeStore()

	// Collaborators
	persona := service.Persona{Name: cfg.Assistant.Name, City: cfg.Assistant.City}
	catalog := repository.NewCatalogClient(&cfg.Catalog, log)
	responder := service.NewOpenAIClient(&cfg.LLM, persona, log)
	if responder.IsEnabled() {
		log.Info("responder enabled",
			zap.String("api_base", cfg.LLM.APIBase),
			zap.String("chat_model", cfg.LLM.ChatModel),
		)
	} else {
		log.Warn("responder disabled - set LLM_API_KEY to enable generated answers")
	}

	assistant := service.NewAssistant(service.AssistantConfig{
		Persona:         persona,
		FetchLimit:      cfg.Catalog.FetchLimit,
		ContextMaxItems: cfg.Assistant.ContextMaxItems,
		HistoryLimit:    cfg.Memory.HistoryLimit,
	}, catalog, responder, memory, askLog, log)

	askHandler := handler.NewAskHandler(assistant, log)
	authMiddleware := auth.Middleware(auth.NewVerifier(cfg.Auth.JWTSecret), log)

	// Setup Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(logger.GinLogger(log), logger.GinRecovery(log), otelgin.Middleware(cfg.Tracing.ServiceName))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{handler.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/health", handler.Health)
	router.GET("/version", handler.Version(handler.BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/ask", authMiddleware, askHandler.Ask)
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/ask", authMiddleware, askHandler.Ask)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}

// openMemoryStore connects the configured backend. The ask log is only
// kept in PostgreSQL; with the redis backend it is nil.
func openMemoryStore(cfg *config.Config, log *zap.Logger) (service.MemoryStore, service.AskLogger, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch cfg.Memory.Backend {
	case config.MemoryBackendRedis:
		repo := repository.NewRedisRepository(repository.NewRedisClient(cfg.Redis), cfg.Memory.TTL)
		if err := repo.Ping(ctx); err != nil {
			_ = repo.Close()
			return nil, nil, nil, err
		}
		log.Info("connected to redis", zap.String("addr", cfg.Redis.Address))
		return repo, nil, func() { _ = repo.Close() }, nil

	default:
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			return nil, nil, nil, err
		}
		log.Info("connected to postgresql")
		return repo, repo, func() { _ = repo.Close() }, nil
	}
}
