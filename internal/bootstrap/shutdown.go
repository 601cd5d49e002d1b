package bootstrap

import (
	"context"
	"log/slog"

	"github.com/farmfit/farmfit/internal/event"
	"github.com/farmfit/farmfit/internal/gamification"
	"github.com/farmfit/farmfit/internal/notification"
	"github.com/farmfit/farmfit/internal/scheduler"
	"github.com/farmfit/farmfit/internal/server"
	"github.com/farmfit/farmfit/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server              *server.Server
	GamificationService gamification.Service
	NotificationService notification.Service
	DailyResetWorker    *worker.DailyResetWorker
	Scheduler           *scheduler.Scheduler
	WorkerPool          *worker.Pool
	ResilientPublisher  *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler and workers (cancel pending timers, drain the job queue)
// 3. Application services (complete in-flight operations)
// 4. Event publisher (flush pending events to ensure consistency)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}
	if components.DailyResetWorker != nil {
		if err := components.DailyResetWorker.Shutdown(ctx); err != nil {
			slog.Error("Daily reset worker shutdown failed", "error", err)
		}
	}

	shutdownService(ctx, ServiceNameGamification, components.GamificationService)
	shutdownService(ctx, ServiceNameNotification, components.NotificationService)

	// Shutdown resilient publisher last to flush pending events
	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}

// shutdownService is a helper that shuts down a service and logs any errors.
type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
