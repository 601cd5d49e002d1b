package worker

import (
	"context"

	"github.com/farmfit/farmfit/internal/equipment"
	"github.com/farmfit/farmfit/internal/event"
	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/notification"
	"github.com/farmfit/farmfit/internal/weather"
)

// MaintenanceScanJob checks for equipment due for maintenance and lets the
// equipment service publish due events.
type MaintenanceScanJob struct {
	Equipment equipment.Service
}

func (j *MaintenanceScanJob) Process(ctx context.Context) error {
	count, err := j.Equipment.ScanMaintenanceDue(ctx)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgMaintenanceScanCompleted, "due_count", count)
	return nil
}

// WeatherPollJob fetches current conditions for the configured locations,
// runs them through the alert rules and publishes any hits.
type WeatherPollJob struct {
	Client    weather.Client
	Locations []string
	Publisher *event.ResilientPublisher
}

func (j *WeatherPollJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	for _, location := range j.Locations {
		current, err := j.Client.Current(ctx, location)
		if err != nil {
			// One bad location must not starve the others
			log.Warn(LogMsgWeatherPollFailed, "location", location, "error", err)
			continue
		}

		alerts := notification.EvaluateWeather(*current)
		if len(alerts) == 0 {
			continue
		}

		log.Info(LogMsgWeatherAlertsRaised, "location", location, "count", len(alerts))
		if j.Publisher != nil {
			for _, alert := range alerts {
				evt := event.NewWeatherAlertEvent(alert, location)
				j.Publisher.Publish(ctx, evt) //nolint:errcheck
			}
		}
	}
	return nil
}

// NotificationPurgeJob removes notifications past their expiry
type NotificationPurgeJob struct {
	Notifications notification.Service
}

func (j *NotificationPurgeJob) Process(ctx context.Context) error {
	purged, err := j.Notifications.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	if purged > 0 {
		logger.FromContext(ctx).Info(LogMsgNotificationPurgeDone, "count", purged)
	}
	return nil
}
