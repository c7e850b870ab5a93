package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dcache "github.com/radieske/betting-admin-dashboard/internal/dashboard/cache"
	httpapi "github.com/radieske/betting-admin-dashboard/internal/dashboard/http"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/identity"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/producer"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/repo"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/service"
	"github.com/radieske/betting-admin-dashboard/internal/shared/cache"
	"github.com/radieske/betting-admin-dashboard/internal/shared/config"
	"github.com/radieske/betting-admin-dashboard/internal/shared/db"
	"github.com/radieske/betting-admin-dashboard/internal/shared/kafka"
	"github.com/radieske/betting-admin-dashboard/internal/shared/logger"
	"github.com/radieske/betting-admin-dashboard/internal/shared/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Sobe a API REST e o servidor de métricas/health",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Bool("migrate", false, "Aplica as migrations pendentes antes de subir")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if runMigrations, _ := cmd.Flags().GetBool("migrate"); runMigrations {
		version, err := db.MigrateUp(cfg.PostgresDSN)
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		log.Info("migrations applied", zap.Uint("version", version))
	}

	// conecta com db Postgres
	pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}
	defer pg.Close()
	log.Info("postgres connected")

	col := metrics.NewCollectors()

	// cache Redis é opcional
	var readCache dcache.Cache = dcache.Noop{}
	var pingRedis func(context.Context) error
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer rdb.Close()
		readCache = dcache.NewRedisCache(rdb, col.ObserveCache)
		pingRedis = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	} else {
		log.Info("redis disabled, read cache off")
	}

	// eventos Kafka também
	var publisher service.EventPublisher = producer.Noop{}
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		writer := kafka.NewWriter(brokers, cfg.TopicBalanceAdjusted)
		defer writer.Close()
		publisher = producer.NewKafkaPublisher(writer, cfg.TopicBalanceAdjusted)
		log.Info("kafka writer ready", zap.String("topic", cfg.TopicBalanceAdjusted))
	} else {
		log.Info("kafka disabled, balance events off")
	}

	store := repo.NewPostgres(pg)
	resolver := identity.NewFirstStaffResolver(log, store, readCache, cfg.StaffCacheTTL)
	balance := service.NewBalanceService(log, store, resolver, readCache, publisher, col)
	queries := service.NewQueryService(log, store, resolver, readCache, cfg.CacheTTL, cfg.UsersTotalMode)
	api := httpapi.NewServer(log, balance, queries, col)

	apiSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsSrv := metrics.NewMetricsServer(cfg.MetricsPort, col.Registry, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if pingRedis != nil {
			if err := pingRedis(ctx); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	})

	errCh := make(chan error, 2)

	// inicia servidor de métricas/health em goroutine separada
	go func() {
		log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics srv: %w", err)
		}
	}()

	go func() {
		log.Info("api listening", zap.String("addr", apiSrv.Addr), zap.String("usersTotalMode", cfg.UsersTotalMode))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api srv: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case runErr = <-errCh:
		log.Error("server failed", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("api shutdown", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics shutdown", zap.Error(err))
	}
	log.Info("service stopped")

	return runErr
}
