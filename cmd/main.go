package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"paybridge/internal/bootstrap"
	"paybridge/internal/config"
	cronpkg "paybridge/internal/cron"
	"paybridge/internal/middleware"
	"paybridge/internal/repository"
	"paybridge/internal/router"
	"paybridge/internal/tappay"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// --- Gateway client ---
	gatewayCfg, err := gatewayConfig(cfg)
	if err != nil {
		logger.Fatal("Invalid gateway configuration", zap.Error(err))
	}
	client := tappay.NewClient(gatewayCfg, nil)

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true

	// --- Notify Deduper (Redis with in-memory fallback) ---
	notifyDeduper, dedupeErr := middleware.NewNotifyDeduper(
		cfg.Redis.Addr,
		cfg.Redis.Pass,
		cfg.Redis.DB,
		10*time.Minute,
	)
	if dedupeErr != nil {
		logger.Warn("Redis unavailable for notify dedup, using in-memory fallback", zap.Error(dedupeErr))
	}

	// --- Routes ---
	router.Setup(e, db, client, logger, cfg.API.Key, notifyDeduper)

	// --- Cron Scheduler ---
	scheduler := cronpkg.New(client, repository.NewPaymentRecordRepository(db), logger)
	scheduler.Start()

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting paybridge server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	// Stop cron
	ctx := scheduler.Stop()
	<-ctx.Done()

	// Stop HTTP server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// gatewayConfig builds the gateway client config, letting an explicit base
// URI override the environment default.
func gatewayConfig(cfg *config.Config) (tappay.ClientConfig, error) {
	if cfg.TapPay.BaseURI != "" {
		return tappay.NewClientConfig(cfg.TapPay.PartnerKey, cfg.TapPay.MerchantID, cfg.TapPay.BaseURI)
	}
	return tappay.NewClientConfigForEnvironment(
		cfg.TapPay.PartnerKey,
		cfg.TapPay.MerchantID,
		tappay.Environment(cfg.TapPay.Env),
	)
}
