package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/botanoz/turistpassfinal-sub000/internal/adapters/cache"
	"github.com/botanoz/turistpassfinal-sub000/internal/adapters/httpclient"
	"github.com/botanoz/turistpassfinal-sub000/internal/adapters/postgres"
	"github.com/botanoz/turistpassfinal-sub000/internal/api"
	"github.com/botanoz/turistpassfinal-sub000/internal/config"
	"github.com/botanoz/turistpassfinal-sub000/internal/currency"
	"github.com/botanoz/turistpassfinal-sub000/internal/currency/handler"
	"github.com/botanoz/turistpassfinal-sub000/internal/platform/db"
	httpserver "github.com/botanoz/turistpassfinal-sub000/internal/platform/http"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and the refresh cron
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

	// Bounded context for startup operations (DB connect, initial reads)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Admin timezone drives both the refresh cadence and the quota month key
	loc, err := time.LoadLocation(appCfg.Scheduler.Timezone)
	if err != nil {
		return fmt.Errorf("invalid scheduler timezone %q: %w", appCfg.Scheduler.Timezone, err)
	}

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External provider client
	providerBaseURL := strings.TrimSuffix(appCfg.ProviderAPI.BaseURL, "/")
	if appCfg.ProviderAPI.APIKey == "" {
		return fmt.Errorf("rate provider api key is required")
	}
	providerClient := httpclient.NewProviderClient(
		baseHTTPClient,
		fmt.Sprintf("%s/%s/latest", providerBaseURL, appCfg.ProviderAPI.APIKey),
		appCfg.Currency.BaseCode,
	)

	// Repositories
	currencyRepo := postgres.NewCurrencyRepository(pool)
	quotaRepo := postgres.NewQuotaRepository(pool)
	fetchStateRepo := postgres.NewFetchStateRepository(pool)
	pricingRepo := postgres.NewPricingRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)

	// Profile TTL cache
	profileCache, err := cache.NewProfileCache(
		appCfg.ProfileCache.MaxItems,
		time.Duration(appCfg.ProfileCache.TTLSeconds)*time.Second,
	)
	if err != nil {
		return err
	}
	defer profileCache.Close()

	// Core services
	resolver := currency.NewResolver(appCfg.Currency.BaseCode)
	validator := currency.NewValidator(appCfg.Currency.BaseCode)
	quota := currency.NewQuotaTracker(quotaRepo, appCfg.Currency.MonthlyLimit, loc)
	cascade := currency.NewCascade(pricingRepo, currencyRepo, resolver)
	refreshScheduler := currency.NewRefreshScheduler(quota, fetchStateRepo, currencyRepo, providerClient, cascade, resolver, loc, nil)
	currencyService := currency.NewService(currencyRepo, fetchStateRepo, quota, refreshScheduler, cascade, resolver, validator, nil)

	// Background refresh cron
	cron := currency.NewCron(refreshScheduler, time.Duration(appCfg.Scheduler.TickSeconds)*time.Second)
	// Ensure cron stops before DB pool closes
	defer func() {
		if shutDownErr := cron.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Refresh cron shutdown error: %v", shutDownErr)
		}
	}()
	// Start cron tied to root context
	if startErr := cron.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start refresh cron")
		return startErr
	}
	logrus.Info("✅ Refresh cron activation successful")

	// Handlers and router
	currencyHandler := handler.NewCurrencyHandler(currencyService)
	router := api.NewRouter(currencyHandler, profileCache, profileRepo)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop the cron and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
