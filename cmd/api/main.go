package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/reviewhub/backend/internal/adapters/snapshot"
	"github.com/reviewhub/backend/internal/api/handlers"
	"github.com/reviewhub/backend/internal/api/routes"
	"github.com/reviewhub/backend/internal/application/services"
	"github.com/reviewhub/backend/internal/domain/providers"
	redisclient "github.com/reviewhub/backend/internal/infrastructure/clients/redis"
	"github.com/reviewhub/backend/internal/infrastructure/observability"
	"github.com/reviewhub/backend/internal/store"
	"github.com/reviewhub/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Pick the snapshot slot: Redis when reachable, the local file otherwise.
	var slot providers.SnapshotProvider
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Str("file", cfg.Snapshot.FilePath).
			Msg("Redis unavailable, persisting snapshots to file")
		slot = snapshot.NewFileAdapter(cfg.Snapshot.FilePath)
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
		slot = snapshot.NewRedisAdapter(redisClient, cfg.Snapshot.Key)
	}

	// Initialize the store
	st := store.New(slot, store.WithMetrics(metrics))
	if err := st.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load store")
	}
	log.Info().Msg("store loaded successfully")

	// Initialize services
	identityService := services.NewIdentityService(st)
	catalogService := services.NewCatalogService(st)
	reactionService := services.NewReactionService(st)
	commentService := services.NewCommentService(st)
	companyService := services.NewCompanyService(st)
	searchService := services.NewSearchService(st)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(identityService)
	catalogHandler := handlers.NewCatalogHandler(identityService, catalogService, reactionService, searchService)
	commentHandler := handlers.NewCommentHandler(identityService, commentService, reactionService)
	companyHandler := handlers.NewCompanyHandler(identityService, companyService)
	adminHandler := handlers.NewAdminHandler(identityService, companyService, st)

	// Set up router
	router := routes.NewRouter(
		authHandler,
		catalogHandler,
		commentHandler,
		companyHandler,
		adminHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
