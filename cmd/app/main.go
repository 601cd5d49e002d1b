package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmfit/farmfit/internal/bootstrap"
	"github.com/farmfit/farmfit/internal/catalog"
	"github.com/farmfit/farmfit/internal/chat"
	"github.com/farmfit/farmfit/internal/config"
	"github.com/farmfit/farmfit/internal/database"
	"github.com/farmfit/farmfit/internal/equipment"
	"github.com/farmfit/farmfit/internal/gamification"
	"github.com/farmfit/farmfit/internal/learning"
	"github.com/farmfit/farmfit/internal/market"
	"github.com/farmfit/farmfit/internal/notification"
	"github.com/farmfit/farmfit/internal/scheduler"
	"github.com/farmfit/farmfit/internal/server"
	"github.com/farmfit/farmfit/internal/telemetry"
	"github.com/farmfit/farmfit/internal/user"
	"github.com/farmfit/farmfit/internal/weather"
	"github.com/farmfit/farmfit/internal/worker"
)

// Worker pool and job cadence settings
const (
	workerPoolSize  = 4
	workerQueueSize = 16

	maintenanceScanInterval   = 6 * time.Hour
	notificationPurgeInterval = time.Hour

	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	// Database
	dbPool, err := database.Connect(ctx, cfg.GetDBConnString(), database.DefaultPoolConfig())
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		return err
	}

	// Event system
	eventBus, publisher, deadLetter, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	defer deadLetter.Close()

	// Repositories
	repos := bootstrap.InitializeRepositories(dbPool)

	// Static content
	catalogContent, err := catalog.Load()
	if err != nil {
		return err
	}
	catalogSvc := catalog.NewService(catalogContent)

	// Services
	userSvc := user.NewService(repos.User, catalogSvc)
	gamificationSvc, err := gamification.NewService(repos.Gamification, publisher)
	if err != nil {
		return err
	}
	notificationSvc := notification.NewService(repos.Notification, deadLetter)
	chatSvc := chat.NewService(repos.Chat, repos.User, notificationSvc, publisher)
	equipmentSvc := equipment.NewService(repos.Equipment, repos.User, publisher)
	marketSvc := market.NewService(repos.Market)
	learningSvc, err := learning.NewService(gamificationSvc)
	if err != nil {
		return err
	}
	telemetrySvc := telemetry.NewService(cfg.TelemetrySecret, publisher)

	sensors, err := telemetry.LoadSensors(config.ConfigPathSensors)
	if err != nil {
		return err
	}
	for _, sensor := range sensors {
		telemetrySvc.RegisterSensor(sensor)
	}
	slog.Info("Sensor fleet registered", "sensors", len(sensors))

	weatherClient := weather.NewHTTPClient(cfg.WeatherAPIURL, cfg.WeatherAPIKey)

	// Event subscribers
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:            eventBus,
		NotificationService: notificationSvc,
		Users:               repos.User,
	}); err != nil {
		return err
	}

	// Push the achievement catalog into the database so awards always
	// reference a known definition, then seed today's quests so the API
	// serves a quest set before the first midnight rollover.
	if err := gamificationSvc.SyncAchievements(ctx); err != nil {
		return err
	}
	if err := gamificationSvc.GenerateDailyQuests(ctx, time.Now().UTC()); err != nil {
		return err
	}

	// Background work
	pool := worker.NewPool(workerPoolSize, workerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(maintenanceScanInterval, &worker.MaintenanceScanJob{Equipment: equipmentSvc})
	sched.Schedule(cfg.WeatherPollInterval, &worker.WeatherPollJob{
		Client:    weatherClient,
		Locations: []string{cfg.WeatherLocation},
		Publisher: publisher,
	})
	sched.Schedule(notificationPurgeInterval, &worker.NotificationPurgeJob{Notifications: notificationSvc})

	dailyResetWorker := worker.NewDailyResetWorker(gamificationSvc)
	dailyResetWorker.Start()

	// HTTP server
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, server.Services{
		User:         userSvc,
		Gamification: gamificationSvc,
		Notification: notificationSvc,
		Chat:         chatSvc,
		Catalog:      catalogSvc,
		Telemetry:    telemetrySvc,
		Equipment:    equipmentSvc,
		Market:       marketSvc,
		Learning:     learningSvc,
		Weather:      weatherClient,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// Wait for shutdown signal or server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:              srv,
		GamificationService: gamificationSvc,
		NotificationService: notificationSvc,
		DailyResetWorker:    dailyResetWorker,
		Scheduler:           sched,
		WorkerPool:          pool,
		ResilientPublisher:  publisher,
	})

	return nil
}
