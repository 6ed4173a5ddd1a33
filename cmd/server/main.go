package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/config"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/engine"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/handlers"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/logic"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/provider"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/store"
	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/worker"
)

func main() {
	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional backends
	var pg *pgxpool.Pool
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			sugar.Fatalw("Failed to create Postgres pool", "error", err)
		}
		pg = pool
		defer pg.Close()
	}

	var ch driver.Conn
	if cfg.ClickHouseURL != "" {
		opts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
		if err != nil {
			sugar.Fatalw("Invalid ClickHouse URL", "error", err)
		}
		conn, err := clickhouse.Open(opts)
		if err != nil {
			sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
		}
		ch = conn
		defer conn.Close()
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			sugar.Fatalw("Invalid Redis URL", "error", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	// Archive pool (only useful with ClickHouse behind it)
	var pool *worker.Pool
	if ch != nil {
		pool = worker.NewPool(worker.PoolConfig{
			WorkerCount:   cfg.WorkerCount,
			QueueSize:     cfg.QueueSize,
			BatchSize:     cfg.BatchSize,
			FlushInterval: cfg.FlushInterval,
			ClickHouse:    ch,
			Logger:        logger,
		})
		pool.Start(ctx)
	}

	// Provider chain: vendor client behind retry and metrics, demo fallback.
	demo := provider.NewDemoProvider()
	var matchProvider provider.Provider = demo
	var demoFallback provider.Provider
	if cfg.VendorToken != "" {
		vendor := provider.NewVendorClient(provider.VendorConfig{
			BaseURL: cfg.VendorURL,
			Token:   cfg.VendorToken,
		})
		matchProvider = provider.NewMetricsProvider(
			provider.NewRetryingProvider(vendor, logger, cfg.RetryAttempts, cfg.RetryBackoff))
		demoFallback = demo
	} else {
		sugar.Warn("No VENDOR_TOKEN configured, serving demo data only")
	}

	logicCfg := logic.Config{
		Provider: matchProvider,
		Demo:     demoFallback,
		Tuning:   engine.DefaultTuning(),
		CacheTTL: cfg.ReportCacheTTL,
		MatchCap: cfg.MatchCap,
		Logger:   logger,
	}
	if pg != nil {
		teams := store.NewTeamStore(pg, logger)
		if err := teams.EnsureSchema(ctx); err != nil {
			sugar.Errorw("Failed to ensure team cache schema", "error", err)
		}
		logicCfg.Teams = teams
	}
	if redisClient != nil {
		logicCfg.Cache = redisClient
	}
	if pool != nil {
		logicCfg.Archive = pool
	}

	handlerCfg := handlers.Config{
		Postgres:   pg,
		ClickHouse: ch,
		Redis:      redisClient,
		Logger:     logger,
		Reports:    logic.NewReportService(logicCfg),
		Matchups:   logic.NewMatchupService(logicCfg),
	}
	if pool != nil {
		handlerCfg.WorkerPool = pool
	}
	h := handlers.New(handlerCfg)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Router(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown failed", "error", err)
	}
	if pool != nil {
		pool.Stop()
	}
	sugar.Info("Shutdown complete")
}

func newLogger(env string) *zap.Logger {
	if env == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
