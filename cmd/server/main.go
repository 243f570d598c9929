package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/skubridge/backend/internal/application/catalog"
	resolutionapp "github.com/skubridge/backend/internal/application/resolution"
	"github.com/skubridge/backend/internal/infrastructure/cache"
	"github.com/skubridge/backend/internal/infrastructure/config"
	"github.com/skubridge/backend/internal/infrastructure/logger"
	"github.com/skubridge/backend/internal/infrastructure/persistence"
	"github.com/skubridge/backend/internal/interfaces/http/handler"
	"github.com/skubridge/backend/internal/interfaces/http/middleware"
	"github.com/skubridge/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SKU Bridge",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	equivalenceRepo := persistence.NewGormEquivalenceRepository(db.DB)
	cajaRepo := persistence.NewGormCajaRepository(db.DB)

	// Reference data source, optionally cached in Redis
	var refSource resolutionapp.ReferenceSource = resolutionapp.NewRepositoryReferenceSource(
		productRepo, equivalenceRepo, cajaRepo,
	)
	if cfg.Snapshot.CacheEnabled {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, reference data will not be cached", zap.Error(err))
		} else {
			defer redisClient.Close()
			refSource = cache.NewRedisReferenceSource(
				redisClient, refSource, cfg.Snapshot.CacheTTL,
				cache.WithLogger(log),
			)
			log.Info("Reference data caching enabled",
				zap.Duration("ttl", cfg.Snapshot.CacheTTL))
		}
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	equivalenceService := catalogapp.NewEquivalenceService(equivalenceRepo, productRepo)
	cajaService := catalogapp.NewCajaService(cajaRepo, productRepo)
	resolutionService := resolutionapp.NewResolutionService(refSource, resolutionapp.Config{
		FuzzyThreshold:  cfg.Resolution.FuzzyThreshold,
		BatchWorkers:    cfg.Resolution.BatchWorkers,
		MemoEnabled:     cfg.Resolution.MemoEnabled,
		ReviewQueueSize: cfg.Resolution.ReviewQueueSize,
		TopUnmapped:     cfg.Resolution.TopUnmapped,
	}, log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	router.NewRouter(engine).Register(
		handler.NewSystemHandler(cfg.App.Name, db),
		handler.NewProductHandler(productService),
		handler.NewEquivalenceHandler(equivalenceService),
		handler.NewCajaHandler(cajaService),
		handler.NewResolutionHandler(resolutionService),
	).Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
