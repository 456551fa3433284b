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

	// Application
	"github.com/dreschagin/maintenance-dashboard/internal/application/port"
	"github.com/dreschagin/maintenance-dashboard/internal/application/usecase"

	// Domain
	"github.com/dreschagin/maintenance-dashboard/internal/domain/service"

	// Infrastructure
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/cache/redis"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/datasource"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/datasource/csvfile"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/datasource/fixture"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/datasource/httpapi"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/datasource/mock"
	natsInfra "github.com/dreschagin/maintenance-dashboard/internal/infrastructure/messaging/nats"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/metrics"
	wsInfra "github.com/dreschagin/maintenance-dashboard/internal/infrastructure/notification/websocket"
	"github.com/dreschagin/maintenance-dashboard/internal/infrastructure/persistence/sqlstore"

	// Interfaces
	httpInterface "github.com/dreschagin/maintenance-dashboard/internal/interfaces/http"
	"github.com/dreschagin/maintenance-dashboard/internal/interfaces/http/handler"
	"github.com/dreschagin/maintenance-dashboard/internal/interfaces/http/middleware"

	// Shared
	"github.com/dreschagin/maintenance-dashboard/pkg/config"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

func main() {
	// 1. Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Инициализируем logger
	log := logger.NewWithOptions(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	log.Info("Starting Maintenance Dashboard", "data_source", cfg.Data.Source)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Источник данных
	source, closeSource, err := openDataSource(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize data source", err, "data_source", cfg.Data.Source)
		os.Exit(1)
	}
	defer closeSource()

	// 4. Dependency Injection - Infrastructure Layer

	appMetrics := metrics.New(nil)

	var purge func(context.Context) error
	if cfg.Redis.Enabled {
		cache, err := redis.NewRedisCache(cfg.Redis)
		if err != nil {
			log.Error("Failed to connect to Redis", err, "addr", cfg.Redis.Addr())
			os.Exit(1)
		}
		defer cache.Close()

		shared := datasource.NewSharedCacheSource(source, cache, cfg.Data.Source, datasource.TTLs{
			Machines:    cfg.Cache.MachinesTTL,
			History:     cfg.Cache.HistoryTTL,
			Maintenance: cfg.Cache.MaintenanceTTL,
		}, log)
		source = shared
		purge = shared.Purge
		log.Info("Redis shared cache enabled", "addr", cfg.Redis.Addr())
	}

	// Значение интерфейса остается nil, если брокер выключен
	var publisher port.EventPublisher
	if cfg.NATS.Enabled {
		natsPublisher, err := natsInfra.NewNATSPublisher(cfg.NATS, log)
		if err != nil {
			log.Error("Failed to connect to NATS", err, "url", cfg.NATS.URL)
			os.Exit(1)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	} else {
		log.Warn("NATS is disabled, alert actions will not be published")
	}

	// WebSocket Hub
	hub := wsInfra.NewHub(log)

	// 5. Dependency Injection - Domain Layer

	classifier, err := service.NewStatusClassifier(service.ClassifierThresholds{
		CriticalProbability: cfg.Risk.CriticalProbability,
		WarningProbability:  cfg.Risk.WarningProbability,
		CriticalHealth:      cfg.Risk.CriticalHealth,
		WarningHealth:       cfg.Risk.WarningHealth,
	})
	if err != nil {
		log.Error("Invalid classifier thresholds", err)
		os.Exit(1)
	}
	aggregator := service.NewFleetAggregator()
	highRiskFilter := service.NewHighRiskFilter()
	roiCalculator := service.NewROICalculator()
	evaluator := service.NewPredictionAccuracyEvaluator()

	costDefaults := service.CostBenefitInputs{
		MaintenanceCost:     cfg.Cost.MaintenanceCost,
		FalseAlarmCost:      cfg.Cost.FalseAlarmCost,
		SystemCost:          cfg.Cost.SystemCost,
		AvoidedDowntimeCost: cfg.Cost.AvoidedDowntimeCost,
		AvoidedRepairCost:   cfg.Cost.AvoidedRepairCost,
		ProductionSaved:     cfg.Cost.ProductionSaved,
	}

	// 6. Dependency Injection - Application Layer (Use Cases)

	snapshots := usecase.NewSnapshotService(source, classifier, aggregator, usecase.SnapshotOptions{
		MachinesTTL:    cfg.Cache.MachinesTTL,
		HistoryTTL:     cfg.Cache.HistoryTTL,
		MaintenanceTTL: cfg.Cache.MaintenanceTTL,
	}, appMetrics, log)

	getOverviewUC := usecase.NewGetOverviewUseCase(
		snapshots,
		aggregator,
		highRiskFilter,
		roiCalculator,
		costDefaults,
		cfg.Risk.OverviewThreshold,
	)
	listMachinesUC := usecase.NewListMachinesUseCase(snapshots, aggregator)
	getMachineHealthUC := usecase.NewGetMachineHealthUseCase(snapshots, classifier)
	listHighRiskUC := usecase.NewListHighRiskMachinesUseCase(snapshots, highRiskFilter, cfg.Risk.AlertThreshold)
	handleAlertActionUC := usecase.NewHandleAlertActionUseCase(snapshots, publisher, cfg.NATS.SubjectPrefix, appMetrics, log)
	calculateROIUC := usecase.NewCalculateROIUseCase(roiCalculator, costDefaults)
	getHistoricalTrendsUC := usecase.NewGetHistoricalTrendsUseCase(snapshots, evaluator)
	getMaintenanceScheduleUC := usecase.NewGetMaintenanceScheduleUseCase(snapshots)
	broadcastUC := usecase.NewBroadcastSnapshotUseCase(snapshots, getOverviewUC, aggregator, hub, log)

	// 7. Dependency Injection - Interfaces Layer (HTTP Handlers)

	validate := handler.NewValidator()

	handlers := httpInterface.Handlers{
		Dashboard: handler.NewDashboardHandler(getOverviewUC, snapshots, purge, httpInterface.StaticFS(), log),
		Machines:  handler.NewMachineAPIHandler(listMachinesUC, getMachineHealthUC, log),
		Alerts:    handler.NewAlertAPIHandler(listHighRiskUC, handleAlertActionUC, validate, log),
		Cost:      handler.NewCostAPIHandler(calculateROIUC, validate, log),
		History:   handler.NewHistoryAPIHandler(getHistoricalTrendsUC, getMaintenanceScheduleUC, log),
		WebSocket: handler.NewWebSocketHandler(hub, cfg.Security.AllowedOrigins, log),
	}

	var limiter *middleware.IPRateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.IdleTTL).
			OnReject(appMetrics.RateLimited)
		defer limiter.Stop()
	}

	// Router
	router := httpInterface.NewRouter(handlers, appMetrics, limiter, log)

	// 8. Запускаем фоновые процессы

	go hub.Run(ctx)

	if cfg.Broadcast.Enabled {
		go runBroadcast(ctx, broadcastUC, cfg.Broadcast.Interval, log)
	}

	// 9. Настраиваем HTTP сервер

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Канал для получения сигналов ОС
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Запускаем сервер в отдельной goroutine
	go func() {
		log.Info("HTTP server starting", "port", cfg.Server.Port)
		log.Info("Dashboard available at http://localhost:" + cfg.Server.Port)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", err)
			os.Exit(1)
		}
	}()

	// 10. Ожидаем сигнал для graceful shutdown

	<-sigChan
	log.Info("Shutdown signal received, starting graceful shutdown...")

	// Останавливаем hub и рассылку
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", err)
	}

	log.Info("Server stopped gracefully")
}

// openDataSource выбирает реализацию DataSource по DATA_SOURCE
func openDataSource(ctx context.Context, cfg *config.Config, log *logger.Logger) (port.DataSource, func(), error) {
	noop := func() {}

	switch cfg.Data.Source {
	case config.SourceMock:
		return mock.New(cfg.Data), noop, nil

	case config.SourceFixture:
		return fixture.New(), noop, nil

	case config.SourceCSV:
		if _, err := os.Stat(cfg.Data.CSVPath); err != nil {
			return nil, noop, fmt.Errorf("csv source: %w", err)
		}
		return csvfile.New(cfg.Data.CSVPath, cfg.Data.MockHistoryDays, cfg.Data.MockSeed), noop, nil

	case config.SourceHTTP:
		return httpapi.NewClient(cfg.Data.UpstreamURL, cfg.Data.UpstreamTimeout), noop, nil

	case config.SourceSQL:
		store, err := sqlstore.Open(ctx, cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		closeStore := func() { _ = store.Close() }

		if err := store.Migrate(ctx); err != nil {
			closeStore()
			return nil, noop, err
		}
		log.Info("Database connected successfully", "driver", cfg.Database.Driver)

		if cfg.Database.SeedIfEmpty {
			if err := seedIfEmpty(ctx, store, cfg.Data, log); err != nil {
				closeStore()
				return nil, noop, err
			}
		}
		return store, closeStore, nil
	}

	return nil, noop, fmt.Errorf("unknown data source %q", cfg.Data.Source)
}

// seedIfEmpty заполняет пустую базу синтетическими данными
func seedIfEmpty(ctx context.Context, store *sqlstore.Store, dataCfg config.DataConfig, log *logger.Logger) error {
	count, err := store.CountMachines(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	gen := mock.New(dataCfg)
	machines, err := gen.FetchMachines(ctx)
	if err != nil {
		return err
	}
	history, err := gen.FetchHistory(ctx)
	if err != nil {
		return err
	}
	events, err := gen.FetchMaintenanceEvents(ctx)
	if err != nil {
		return err
	}

	if err := store.Seed(ctx, sqlstore.Dataset{Machines: machines, History: history, Events: events}); err != nil {
		return err
	}
	log.Info("Database seeded", "machines", len(machines), "days", len(history), "events", len(events))
	return nil
}

// runBroadcast периодически рассылает новый снимок подключенным клиентам
func runBroadcast(ctx context.Context, uc *usecase.BroadcastSnapshotUseCase, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("Snapshot broadcaster started", "interval", interval.String())

	for {
		select {
		case <-ticker.C:
			if _, err := uc.Execute(ctx); err != nil && ctx.Err() == nil {
				log.Error("Failed to broadcast snapshot", err)
			}
		case <-ctx.Done():
			log.Info("Snapshot broadcaster stopped")
			return
		}
	}
}
