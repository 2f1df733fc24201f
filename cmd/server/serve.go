package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	post_service "kaizen-board/internal/application/service/post"
	post_port "kaizen-board/internal/domain/ports/input/post"
	ports "kaizen-board/internal/domain/ports/output"
	post_repository "kaizen-board/internal/domain/ports/output/post"
	"kaizen-board/internal/infrastructure/config"
	delivery_http "kaizen-board/internal/infrastructure/inbound/http"
	post_http "kaizen-board/internal/infrastructure/inbound/http/post"
	metrics_server "kaizen-board/internal/infrastructure/inbound/metrics"
	"kaizen-board/internal/infrastructure/logger"
	redis_cache "kaizen-board/internal/infrastructure/outbound/cache/redis"
	prometheus_metrics "kaizen-board/internal/infrastructure/outbound/metrics/prometheus"
	post_memory "kaizen-board/internal/infrastructure/outbound/repository/post/memory"
	post_postgres "kaizen-board/internal/infrastructure/outbound/repository/post/postgres"
	"kaizen-board/internal/infrastructure/outbound/repository/postgres"
	"kaizen-board/internal/infrastructure/outbound/repository/postgres/migrations"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the board and the metrics endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, err := cmd.Flags().GetString(configDirFlag)
			if err != nil {
				return err
			}
			serve(config.MustLoad(configDir))
			return nil
		},
	}
}

func serve(cfg *config.Config) {
	ctx := context.Background()
	log := logger.New(cfg.Env)
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	checks := map[string]delivery_http.HealthCheck{}

	var (
		postRepo   post_repository.Repository
		unitOfWork ports.UnitOfWork
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		log.Warn("Using in-memory storage, posts are lost on restart")
		memRepo := post_memory.NewPostRepository(log)
		postRepo = memRepo
		unitOfWork = post_memory.NewUnitOfWork(memRepo)
	default:
		if cfg.Database.MigrationsAuto {
			if err := applyMigrations(cfg.Database.DSN(), log, (*migrations.Migrator).Up); err != nil {
				log.Error("Failed to migrate on startup", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}

		poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
			os.Exit(1)
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		checks["postgres"] = pool.Ping
		postRepo = post_postgres.NewPostRepository(pool, log, metrics)
		unitOfWork = postgres.NewPostgresUOW(pool, log, metrics)
	}

	var postService post_port.Service = post_service.NewPostService(postRepo, unitOfWork, log, metrics)

	if cfg.Redis.Enabled {
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port),
			slog.Int("db", cfg.Redis.DB))
		redisClient, err := redis_cache.NewClient(cfg.Redis, log)
		if err != nil {
			log.Error("Failed to create Redis client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()

		checks["redis"] = redisClient.Ping
		boardCache := redis_cache.NewBoardCache(redisClient, log, cfg.Redis.BoardTTL)
		postService = post_service.NewPostServiceCacheDecorator(postService, boardCache, log, metrics)
	}

	metrics.SetServiceHealth(true)

	postHTTPApi := post_http.NewPostHTTPService(postService, cfg.Board.Order, cfg.Board.DateLayout, log)
	httpServer := delivery_http.NewServer(postHTTPApi, cfg.HTTPServer.Address, cfg.HTTPServer.Port, log, metrics, checks)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone

	log.Info("Server exited")
}
