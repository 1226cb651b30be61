package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	deliveryHTTP "github.com/frontandrew/parklot/internal/delivery/http"
	"github.com/frontandrew/parklot/internal/domain"
	"github.com/frontandrew/parklot/internal/pkg/config"
	"github.com/frontandrew/parklot/internal/pkg/database"
	"github.com/frontandrew/parklot/internal/pkg/jwt"
	"github.com/frontandrew/parklot/internal/pkg/logger"
	pkgRedis "github.com/frontandrew/parklot/internal/pkg/redis"
	"github.com/frontandrew/parklot/internal/repository"
	"github.com/frontandrew/parklot/internal/repository/cached"
	"github.com/frontandrew/parklot/internal/repository/memory"
	"github.com/frontandrew/parklot/internal/repository/postgres"
	"github.com/frontandrew/parklot/internal/usecase/parking"
	"github.com/frontandrew/parklot/internal/usecase/policy"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting PARKLOT API server", map[string]interface{}{
		"version": "1.0.0",
		"lot":     cfg.Parking.LotName,
	})

	// =========================================================================
	// Подключение к PostgreSQL (опционально - движок работает и без БД)
	// =========================================================================

	ctx := context.Background()

	var fineRepo repository.FineRepository
	var paymentRepo repository.PaymentRepository
	var lotRepo repository.LotRepository

	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Warn("PostgreSQL is not available, running memory-only", map[string]interface{}{
			"error": err.Error(),
		})
		fineRepo = memory.NewFineRepository()
		paymentRepo = memory.NewPaymentRepository()
		lotRepo = memory.NewLotRepository()
	} else {
		defer database.Close(db)
		log.Info("Connected to PostgreSQL", map[string]interface{}{
			"host":     cfg.Database.Host,
			"port":     cfg.Database.Port,
			"database": cfg.Database.Database,
		})
		fineRepo = postgres.NewFineRepository(db)
		paymentRepo = postgres.NewPaymentRepository(db)
		lotRepo = postgres.NewLotRepository(db)
	}

	// =========================================================================
	// Подключение к Redis (опционально - кеш горячего пути штрафов)
	// =========================================================================

	redisClient, err := pkgRedis.NewClient(pkgRedis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis is not available, fine lookups are uncached", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redisClient.Close()
		log.Info("Connected to Redis", map[string]interface{}{
			"address": cfg.Redis.Address(),
		})
		fineRepo = cached.NewFineRepository(fineRepo, redisClient)
	}

	log.Info("Repositories initialized")

	// =========================================================================
	// Восстановление парковки или построение стандартной
	// =========================================================================

	store := parking.NewStore(fineRepo, paymentRepo, lotRepo, log)

	lot, ok := store.LoadLot(ctx, cfg.Parking.LotName)
	if !ok {
		lot = domain.BuildDefaultLot(cfg.Parking.LotName)
		if policyName := domain.FinePolicy(cfg.Parking.DefaultPolicy); policyName.IsValid() {
			lot.Policy = domain.NewPolicyContext(policyName)
		}
		log.Info("Built default lot layout", map[string]interface{}{
			"floors": len(lot.Floors),
			"spots":  lot.SpotCount(),
		})
	} else {
		if lot.Policy == nil {
			lot.Policy = domain.NewPolicyContext(domain.PolicyFixed)
		}
		log.Info("Restored lot from snapshot", map[string]interface{}{
			"floors":   len(lot.Floors),
			"spots":    lot.SpotCount(),
			"occupied": lot.OccupiedCount(),
			"policy":   lot.Policy.Active,
		})
	}

	// =========================================================================
	// Создание JWT token service
	// =========================================================================

	tokenService := jwt.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.AccessExpiry)

	// =========================================================================
	// Создание use case services
	// =========================================================================

	parkingService := parking.NewService(lot, store, log)
	policyService := policy.NewService(parkingService, fineRepo, log)

	log.Info("Use case services initialized")

	// =========================================================================
	// Создание HTTP handlers и router
	// =========================================================================

	parkingHandler := deliveryHTTP.NewParkingHandler(parkingService, log)
	lotHandler := deliveryHTTP.NewLotHandler(parkingService, log)
	policyHandler := deliveryHTTP.NewPolicyHandler(policyService, log)
	authHandler := deliveryHTTP.NewAuthHandler(
		tokenService,
		cfg.Parking.OperatorLogin,
		cfg.Parking.OperatorPasswordHash,
		log,
	)

	router := deliveryHTTP.NewRouter(
		parkingHandler,
		lotHandler,
		policyHandler,
		authHandler,
		tokenService,
		log,
	)

	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// Создание HTTP сервера
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// =========================================================================
	// Запуск сервера в goroutine
	// =========================================================================

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("Server error", map[string]interface{}{
			"error": err.Error(),
		})

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Снимок парковки перед остановкой
		store.SaveLot(shutdownCtx, lot)

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			if err := srv.Close(); err != nil {
				log.Fatal("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}
