package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	AchievementsAwarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsAwarded,
			Help: HelpTextAchievementsAwarded,
		},
		[]string{LabelAchievement},
	)

	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsCompleted,
			Help: HelpTextQuestsCompleted,
		},
		[]string{LabelQuest},
	)

	QuestsClaimed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestsClaimed,
			Help: HelpTextQuestsClaimed,
		},
		[]string{LabelQuest},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	WeatherAlerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWeatherAlerts,
			Help: HelpTextWeatherAlerts,
		},
		[]string{LabelRule, LabelSeverity},
	)

	TelemetryAlerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTelemetryAlerts,
			Help: HelpTextTelemetryAlerts,
		},
		[]string{LabelMetric, LabelSeverity},
	)

	MaintenanceDue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMaintenanceDue,
			Help: HelpTextMaintenanceDue,
		},
	)

	DailyQuestResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyQuestResets,
			Help: HelpTextDailyQuestResets,
		},
	)

	SensorReadings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSensorReadings,
			Help: HelpTextSensorReadings,
		},
		[]string{LabelMetric},
	)

	ChatMessages = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameChatMessages,
			Help: HelpTextChatMessages,
		},
	)
)
