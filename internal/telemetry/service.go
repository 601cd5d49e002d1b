package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/event"
	"github.com/farmfit/farmfit/internal/logger"
)

// Buffer and validation defaults
const (
	DefaultBufferCapacity = 256
	MinConfidence         = 0.0
	MaxConfidence         = 1.0

	// Readings this far past a threshold, relative to the allowed range,
	// escalate from warning to critical.
	criticalOverrunFraction = 0.1
)

// Log message constants
const (
	LogMsgReadingRejected = "Telemetry reading rejected"
	LogMsgAlertRaised     = "Telemetry alert raised"
)

// SensorConfig registers one sensor and its allowed value range
type SensorConfig struct {
	SensorID string
	Metric   string
	Unit     string
	MinValue float64
	MaxValue float64
}

type Service interface {
	// RegisterSensor makes a sensor known. Readings from unknown sensors
	// are rejected.
	RegisterSensor(cfg SensorConfig)

	// Ingest validates and buffers a reading, raising alerts on threshold
	// breaches.
	Ingest(ctx context.Context, reading domain.SensorReading) error

	// Analysis over the buffered window
	Stats(sensorID string) (*domain.SensorStats, error)
	Trend(sensorID string) (*domain.TrendAnalysis, error)
	RecentReadings(sensorID string, limit int) ([]domain.SensorReading, error)
}

type sensorState struct {
	config SensorConfig
	buffer *ringBuffer
}

type service struct {
	secret    string
	capacity  int
	publisher *event.ResilientPublisher
	sensors   map[string]*sensorState
	mu        sync.RWMutex
}

// NewService creates the telemetry service. The secret signs reading
// checksums; publisher may be nil to disable alert events.
func NewService(secret string, publisher *event.ResilientPublisher) Service {
	return &service{
		secret:    secret,
		capacity:  DefaultBufferCapacity,
		publisher: publisher,
		sensors:   make(map[string]*sensorState),
	}
}

func (s *service) RegisterSensor(cfg SensorConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sensors[cfg.SensorID] = &sensorState{
		config: cfg,
		buffer: newRingBuffer(s.capacity),
	}
}

func (s *service) Ingest(ctx context.Context, reading domain.SensorReading) error {
	log := logger.FromContext(ctx)

	s.mu.RLock()
	state, known := s.sensors[reading.SensorID]
	s.mu.RUnlock()
	if !known {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSensor, reading.SensorID)
	}

	if reading.Confidence < MinConfidence || reading.Confidence > MaxConfidence {
		return fmt.Errorf("%w: confidence %.2f out of [0,1]", domain.ErrInvalidInput, reading.Confidence)
	}
	if reading.Timestamp.IsZero() {
		return fmt.Errorf("%w: reading timestamp is required", domain.ErrInvalidInput)
	}

	if !VerifyChecksum(s.secret, reading) {
		log.Warn(LogMsgReadingRejected, "sensor_id", reading.SensorID, "reason", "checksum mismatch")
		return domain.ErrInvalidChecksum
	}

	s.mu.Lock()
	state.buffer.push(reading)
	s.mu.Unlock()

	if s.publisher != nil {
		evt := event.NewSensorReadingEvent(reading, state.config.Metric, state.config.Unit)
		s.publisher.Publish(ctx, evt) //nolint:errcheck
	}

	if alert := s.checkThresholds(state.config, reading); alert != nil {
		log.Warn(LogMsgAlertRaised,
			"sensor_id", alert.SensorID,
			"metric", alert.Metric,
			"value", alert.Value,
			"severity", alert.Severity)
		if s.publisher != nil {
			s.publisher.Publish(ctx, event.NewTelemetryAlertEvent(*alert)) //nolint:errcheck
		}
	}

	return nil
}

// checkThresholds returns an alert when the reading leaves the allowed
// range. Overruns beyond a tenth of the range are critical.
func (s *service) checkThresholds(cfg SensorConfig, r domain.SensorReading) *domain.TelemetryAlert {
	valueRange := cfg.MaxValue - cfg.MinValue
	if valueRange <= 0 {
		return nil
	}

	var overrun float64
	var threshold float64
	switch {
	case r.Value > cfg.MaxValue:
		overrun = r.Value - cfg.MaxValue
		threshold = cfg.MaxValue
	case r.Value < cfg.MinValue:
		overrun = cfg.MinValue - r.Value
		threshold = cfg.MinValue
	default:
		return nil
	}

	severity := domain.SeverityWarning
	if overrun > valueRange*criticalOverrunFraction {
		severity = domain.SeverityCritical
	}

	return &domain.TelemetryAlert{
		SensorID:  r.SensorID,
		Metric:    cfg.Metric,
		Value:     r.Value,
		Threshold: threshold,
		Severity:  severity,
		Message: fmt.Sprintf("%s reading %.2f %s outside allowed range [%.2f, %.2f]",
			cfg.Metric, r.Value, cfg.Unit, cfg.MinValue, cfg.MaxValue),
		Timestamp: time.Now().UTC(),
	}
}

func (s *service) Stats(sensorID string) (*domain.SensorStats, error) {
	readings, err := s.window(sensorID)
	if err != nil {
		return nil, err
	}
	stats := computeStats(readings)
	return &stats, nil
}

func (s *service) Trend(sensorID string) (*domain.TrendAnalysis, error) {
	readings, err := s.window(sensorID)
	if err != nil {
		return nil, err
	}
	trend := computeTrend(readings)
	return &trend, nil
}

func (s *service) RecentReadings(sensorID string, limit int) ([]domain.SensorReading, error) {
	readings, err := s.window(sensorID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(readings) > limit {
		readings = readings[len(readings)-limit:]
	}
	return readings, nil
}

func (s *service) window(sensorID string) ([]domain.SensorReading, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, known := s.sensors[sensorID]
	if !known {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSensor, sensorID)
	}
	return state.buffer.snapshot(), nil
}
