package app

import (
	"context"
	"fxconverter/internal/platform/db"
	httpserver "fxconverter/internal/platform/http"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fxconverter/internal/adapters/cache"
	"fxconverter/internal/adapters/httpclient"
	"fxconverter/internal/adapters/postgres"
	"fxconverter/internal/api"
	"fxconverter/internal/api/handler"
	"fxconverter/internal/config"
	"fxconverter/internal/conversion"
	"fxconverter/internal/rate"
	"fxconverter/internal/transaction"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(startupCtx, pool); err != nil {
		logrus.WithError(err).Error("Error applying migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	clock := clockwork.NewRealClock()

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	if appCfg.RateProvider.APIKey == "" {
		logrus.Warn("EXCHANGE_RATE_API_KEY is empty, the rate provider may reject requests")
	}
	rateClient := httpclient.NewExchangeRateClient(
		baseHTTPClient,
		appCfg.RateProvider.BaseURL,
		appCfg.RateProvider.APIKey,
		clock,
	)

	// Cache and repositories
	snapshotCache, err := cache.NewSnapshotCache(
		appCfg.RateCache.MaxItems,
		time.Duration(appCfg.RateCache.TTLSeconds)*time.Second,
		clock,
	)
	if err != nil {
		return err
	}
	defer snapshotCache.Close()

	backupRepo := postgres.NewRateBackupRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)

	// Services
	currencyValidator := rate.NewValidator(appCfg.Currencies.Supported)
	resolver := rate.NewResolver(rateClient, snapshotCache, backupRepo, currencyValidator, appCfg.RateProvider.BaseCurrency)
	conversionService := conversion.NewService(transactionRepo, resolver, clock)
	transactionService := transaction.NewService(transactionRepo)

	if appCfg.Scheduler.RefreshIntervalSec > 0 {
		scheduler := rate.NewScheduler(resolver, time.Duration(appCfg.Scheduler.RefreshIntervalSec)*time.Second)
		// Ensure scheduler stops before DB pool closes
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		// Start scheduler tied to root context
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	h := handler.NewHandler(conversionService, transactionService, resolver, currencyValidator, appCfg.App.Version)
	router := api.NewRouter(h)

	logrus.WithFields(logrus.Fields{
		"base":       appCfg.RateProvider.BaseCurrency,
		"currencies": appCfg.Currencies.Supported,
		"sources":    resolver.SourceNames(),
	}).Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
