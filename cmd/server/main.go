package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sorteocloud/raffle-backend/internal/di"
	"github.com/sorteocloud/raffle-backend/internal/handler"
	"github.com/sorteocloud/raffle-backend/pkg/cache"
	"github.com/sorteocloud/raffle-backend/pkg/config"
	"github.com/sorteocloud/raffle-backend/pkg/database"
	"github.com/sorteocloud/raffle-backend/pkg/events"
	"github.com/sorteocloud/raffle-backend/pkg/logger"
	"github.com/sorteocloud/raffle-backend/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}

	logCfg := logger.DefaultConfig()
	logCfg.ServiceName = cfg.App.Name
	logCfg.Development = !cfg.IsProduction()
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Init(logCfg); err != nil {
		panic(fmt.Sprintf("init logger: %v", err))
	}
	defer logger.Get().Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTel.Enabled {
		_, err := telemetry.Init(ctx, &telemetry.Config{
			Enabled:        true,
			ServiceName:    cfg.OTel.ServiceName,
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			CollectorAddr:  cfg.OTel.CollectorAddr,
		})
		if err != nil {
			logger.Fatal("failed to initialize telemetry", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := telemetry.Shutdown(shutdownCtx); err != nil {
				logger.Warn("telemetry shutdown failed", zap.Error(err))
			}
		}()
	}

	dbCfg := database.DefaultPostgresConfig()
	dbCfg.Host = cfg.Database.Host
	dbCfg.Port = cfg.Database.Port
	dbCfg.User = cfg.Database.User
	dbCfg.Password = cfg.Database.Password
	dbCfg.Database = cfg.Database.DBName
	dbCfg.SSLMode = cfg.Database.SSLMode
	if cfg.Database.MaxConns > 0 {
		dbCfg.MaxConns = int32(cfg.Database.MaxConns)
	}
	if cfg.Database.MinConns > 0 {
		dbCfg.MinConns = int32(cfg.Database.MinConns)
	}

	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		logger.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	var catalogCache *cache.Cache
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, catalog caching disabled", zap.Error(err))
	} else {
		catalogCache = cache.New(redisClient)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.ClientID)
		if err != nil {
			logger.Warn("kafka unreachable, event publishing disabled", zap.Error(err))
		} else {
			publisher = kp
			defer kp.Close()
		}
	}

	container := di.NewContainer(&di.ContainerConfig{
		DB:              db,
		Cache:           catalogCache,
		Publisher:       publisher,
		EntriesSuffix:   cfg.Catalog.EntriesSuffix,
		CatalogCacheTTL: cfg.Catalog.CacheTTL,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler.RegisterRoutes(router, &handler.RouterDeps{
		Health:     container.HealthHandler,
		Tenant:     container.TenantHandler,
		Raffle:     container.RaffleHandler,
		Package:    container.PackageHandler,
		Offer:      container.OfferHandler,
		Provider:   container.ProviderHandler,
		Order:      container.OrderHandler,
		Referral:   container.ReferralHandler,
		Storefront: container.StorefrontHandler,
		JWTSecret:  cfg.JWT.Secret,
	}, container.TenantService)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
