// Package app wires configuration, storage, services, and handlers into
// one application graph.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/sjwoo1999/stockweather-replit-sub000/internal/common"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/handlers"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/interfaces"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/alerts"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/catalog"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/disclosures"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/portfolio"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/scheduler"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/services/weather"
	"github.com/sjwoo1999/stockweather-replit-sub000/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Domain services
	CatalogService    *catalog.Service
	DisclosureService *disclosures.Service
	WeatherService    *weather.Service
	PortfolioService  *portfolio.Service
	AlertService      *alerts.Service
	SchedulerService  *scheduler.Service

	// HTTP handlers
	APIHandler        *handlers.APIHandler
	WeatherHandler    *handlers.WeatherHandler
	SearchHandler     *handlers.SearchHandler
	DisclosureHandler *handlers.DisclosureHandler
	PortfolioHandler  *handlers.PortfolioHandler
	AlertHandler      *handlers.AlertHandler
	WSHandler         *handlers.WebSocketHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.StorageManager = storageManager

	// Upstream providers
	krx := catalog.NewKRXProvider(
		catalog.WithBaseURL(cfg.Catalog.BaseURL),
		catalog.WithLogger(logger),
		catalog.WithRateLimit(cfg.Catalog.RateLimit),
	)
	dart := disclosures.NewDARTProvider(cfg.Disclosures.APIKey,
		disclosures.WithBaseURL(cfg.Disclosures.BaseURL),
		disclosures.WithLogger(logger),
		disclosures.WithRateLimit(cfg.Disclosures.RateLimit),
	)

	// Domain services
	app.CatalogService = catalog.NewService(krx, storageManager.SecurityStorage(), storageManager.KVStorage(), logger)

	app.DisclosureService = disclosures.NewService(dart, storageManager.KVStorage(), logger).
		WithLookbackDays(cfg.Disclosures.LookbackDays).
		WithPageSize(cfg.Disclosures.PageSize)
	if ttl, err := time.ParseDuration(cfg.Disclosures.CacheTTL); err == nil {
		app.DisclosureService.WithCacheTTL(ttl)
	} else {
		logger.Warn().
			Str("cache_ttl", cfg.Disclosures.CacheTTL).
			Msg("Invalid disclosure cache TTL, using default")
	}

	app.WeatherService = weather.NewService(app.CatalogService, app.DisclosureService, logger)
	app.PortfolioService = portfolio.NewService(storageManager.PortfolioStorage(), logger)
	app.AlertService = alerts.NewService(storageManager.AlertStorage(), logger)

	// HTTP handlers
	app.APIHandler = handlers.NewAPIHandler()
	app.WeatherHandler = handlers.NewWeatherHandler(app.WeatherService, logger)
	app.SearchHandler = handlers.NewSearchHandler(app.CatalogService, &cfg.WebSocket, logger)
	app.DisclosureHandler = handlers.NewDisclosureHandler(app.DisclosureService, logger)
	app.PortfolioHandler = handlers.NewPortfolioHandler(app.PortfolioService, logger)
	app.AlertHandler = handlers.NewAlertHandler(app.AlertService, logger)
	app.WSHandler = handlers.NewWebSocketHandler(app.CatalogService, &cfg.WebSocket, logger)

	// Background jobs
	if cfg.Scheduler.Enabled {
		if err := app.initScheduler(); err != nil {
			storageManager.Close()
			return nil, err
		}
	}

	logger.Info().Msg("Application initialized")

	return app, nil
}

func (a *App) initScheduler() error {
	a.SchedulerService = scheduler.NewService(a.Logger, 10*time.Minute)

	if err := a.SchedulerService.Register(scheduler.Job{
		Name:     "catalog-sync",
		Schedule: a.Config.Catalog.SyncSchedule,
		Run:      a.CatalogService.Sync,
	}); err != nil {
		return fmt.Errorf("failed to register catalog sync job: %w", err)
	}

	// Warm the disclosure cache shortly before typical request traffic.
	if err := a.SchedulerService.Register(scheduler.Job{
		Name:     "disclosure-refresh",
		Schedule: "*/30 * * * *",
		Run: func(ctx context.Context) error {
			if err := a.DisclosureService.Refresh(ctx); err != nil {
				return err
			}
			_, err := a.DisclosureService.FetchRecent(ctx)
			return err
		},
	}); err != nil {
		return fmt.Errorf("failed to register disclosure refresh job: %w", err)
	}

	return nil
}

// Start launches background work: an initial catalog sync when the
// catalog is empty, then the scheduler.
func (a *App) Start(ctx context.Context) {
	count, err := a.CatalogService.Count(ctx)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("Failed to check catalog state")
	}
	if err == nil && count == 0 {
		a.Logger.Info().Msg("Catalog empty, running initial sync")
		if err := a.CatalogService.Sync(ctx); err != nil {
			a.Logger.Warn().Err(err).Msg("Initial catalog sync failed, analysis serves fallback until next sync")
		}
	}

	if a.SchedulerService != nil {
		a.SchedulerService.Start()
	}
}

// Close releases application resources.
func (a *App) Close() error {
	if a.SchedulerService != nil {
		a.SchedulerService.Stop()
	}
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}
	a.Logger.Info().Msg("Application closed")
	return nil
}
