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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/ferry_booking/internal/adapter/cache"
	"github.com/srgjo27/ferry_booking/internal/adapter/handler"
	"github.com/srgjo27/ferry_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/ferry_booking/internal/adapter/source/fixture"
	"github.com/srgjo27/ferry_booking/internal/adapter/source/upstream"
	"github.com/srgjo27/ferry_booking/internal/core/ports"
	"github.com/srgjo27/ferry_booking/internal/core/services"
	"github.com/srgjo27/ferry_booking/internal/platform/config"
	"github.com/srgjo27/ferry_booking/internal/platform/database"
	"github.com/srgjo27/ferry_booking/internal/platform/logger"
	"github.com/srgjo27/ferry_booking/internal/platform/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Debug)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	gin.SetMode(cfg.GinMode)
	ctx := context.Background()

	// The fixtures back the mock inventory and any reference data not served
	// by another backend.
	store, err := fixture.Load()
	if err != nil {
		log.Fatal("Failed to load fixtures", "error", err)
	}

	var source ports.SailingSource = store
	var directory ports.SupplierDirectory = store
	var routes ports.RouteCatalog = store

	if cfg.UseMocks {
		log.Info("Using fixture sailing source")
	} else {
		client := upstream.NewClient(upstream.Config{
			BaseURL:  cfg.FerryBase,
			User:     cfg.XchangeUser,
			Password: cfg.XchangePassword,
			Timeout:  cfg.UpstreamTimeout,
			Retries:  cfg.UpstreamRetries,
		}, log.With("component", "exchange"))

		source, directory, routes = client, client, nil
		log.Info("Using exchange sailing source",
			"base", cfg.FerryBase,
			"has_user", cfg.XchangeUser != "",
			"has_password", cfg.XchangePassword != "",
		)
	}

	if cfg.CacheEnabled() {
		addr := fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort)
		log.Info("Connecting to Redis", "addr", addr)

		redisClient := redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   0,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unavailable, sailing cache disabled", "error", err)
		} else {
			source = cache.NewSailingSource(source, redisClient, cfg.CacheTTL, log.With("component", "cache"))
			log.Info("Redis connected successfully", "ttl", cfg.CacheTTL)
		}
	}

	var feeProvider ports.FeeProvider = store
	var cabinCatalog ports.CabinCatalog = store

	if cfg.CatalogBackend == config.CatalogPostgres {
		db, err := database.NewPostgresDB(ctx, database.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
		}, log.With("component", "database"))
		if err != nil {
			log.Fatal("Failed to connect to db after retries", "error", err)
		}
		defer db.Close()

		feeProvider = postgres.NewFeeRepository(db)
		cabinCatalog = postgres.NewCabinRepository(db)
	}

	fees, cabins, err := services.LoadReferenceData(ctx, feeProvider, cabinCatalog)
	if err != nil {
		log.Fatal("Failed to load reference data", "error", err)
	}
	log.Info("Reference data loaded", "backend", cfg.CatalogBackend, "currency", fees.Currency, "cabins", len(cabins))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics("ferry", reg)

	searchService := services.NewSearchService(source, fees, log.With("component", "search"))
	catalogService := services.NewCatalogService(directory, routes, fees, cabins, services.CatalogConfig{
		AllowedSuppliers: cfg.AllowedSuppliers,
		AllowedMethods:   cfg.AllowedMethods,
	})
	sessions := services.NewSessionStore(func() *services.Wizard {
		return services.NewWizard(searchService, fees, cabins)
	}, log.With("component", "sessions"))

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go func() {
		sessions.RunBackgroundCleanup(cleanupCtx, time.Minute, cfg.SessionIdle)
	}()

	router := handler.NewRouter(
		handler.NewCatalogHandler(catalogService, searchService, m, log),
		handler.NewBookingHandler(sessions, m, log),
		m, log,
		handler.RouterConfig{
			RateLimitPerWindow: cfg.RateLimitPerWindow,
			RateLimitWindow:    cfg.RateLimitWindow,
		},
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server startup failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down server...")
	stopCleanup()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", "error", err)
	}

	log.Info("Server exiting")
}
