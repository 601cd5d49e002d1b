package handler

import (
	"net/http"
	"time"

	"github.com/farmfit/farmfit/internal/domain"
	"github.com/farmfit/farmfit/internal/telemetry"
)

// Recent readings query default
const defaultRecentReadingsLimit = 20

// IngestReadingRequest carries one sensor reading. The checksum covers
// sensor_id, timestamp and value and is verified before the reading is
// accepted.
type IngestReadingRequest struct {
	SensorID   string    `json:"sensor_id" validate:"required"`
	Timestamp  time.Time `json:"timestamp" validate:"required"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Confidence float64   `json:"confidence" validate:"min=0,max=1"`
	Checksum   string    `json:"checksum" validate:"required"`
}

// TelemetryHandler handles sensor telemetry HTTP requests
type TelemetryHandler struct {
	svc telemetry.Service
}

// NewTelemetryHandler creates a new telemetry handler
func NewTelemetryHandler(svc telemetry.Service) *TelemetryHandler {
	return &TelemetryHandler{svc: svc}
}

// HandleIngest accepts a sensor reading
// @Summary Ingest sensor reading
// @Tags telemetry
// @Accept json
// @Produce json
// @Param request body IngestReadingRequest true "Reading"
// @Success 202 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /telemetry/readings [post]
func (h *TelemetryHandler) HandleIngest(w http.ResponseWriter, r *http.Request) {
	var req IngestReadingRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Ingest reading"); err != nil {
		return
	}

	reading := domain.SensorReading{
		SensorID:   req.SensorID,
		Timestamp:  req.Timestamp,
		Value:      req.Value,
		Unit:       req.Unit,
		Confidence: req.Confidence,
		Checksum:   req.Checksum,
	}
	if err := h.svc.Ingest(r.Context(), reading); err != nil {
		respondServiceError(w, r, "Ingest reading", err)
		return
	}
	respondJSON(w, http.StatusAccepted, SuccessResponse{Message: "reading accepted"})
}

// HandleStats returns summary statistics for a sensor
// @Summary Get sensor statistics
// @Tags telemetry
// @Produce json
// @Param sensor_id query string true "Sensor ID"
// @Success 200 {object} domain.SensorStats
// @Failure 404 {object} ErrorResponse
// @Router /telemetry/stats [get]
func (h *TelemetryHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	sensorID, ok := GetQueryParam(r, w, "sensor_id")
	if !ok {
		return
	}

	stats, err := h.svc.Stats(sensorID)
	if err != nil {
		respondServiceError(w, r, "Get sensor stats", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// HandleTrend returns the trend analysis for a sensor
// @Summary Get sensor trend
// @Tags telemetry
// @Produce json
// @Param sensor_id query string true "Sensor ID"
// @Success 200 {object} domain.TrendAnalysis
// @Failure 404 {object} ErrorResponse
// @Router /telemetry/trend [get]
func (h *TelemetryHandler) HandleTrend(w http.ResponseWriter, r *http.Request) {
	sensorID, ok := GetQueryParam(r, w, "sensor_id")
	if !ok {
		return
	}

	trend, err := h.svc.Trend(sensorID)
	if err != nil {
		respondServiceError(w, r, "Get sensor trend", err)
		return
	}
	respondJSON(w, http.StatusOK, trend)
}

// HandleRecentReadings returns a sensor's most recent readings
// @Summary Get recent readings
// @Tags telemetry
// @Produce json
// @Param sensor_id query string true "Sensor ID"
// @Param limit query int false "Maximum readings"
// @Success 200 {array} domain.SensorReading
// @Failure 404 {object} ErrorResponse
// @Router /telemetry/readings [get]
func (h *TelemetryHandler) HandleRecentReadings(w http.ResponseWriter, r *http.Request) {
	sensorID, ok := GetQueryParam(r, w, "sensor_id")
	if !ok {
		return
	}
	limit := GetOptionalIntParam(r, "limit", defaultRecentReadingsLimit)

	readings, err := h.svc.RecentReadings(sensorID, limit)
	if err != nil {
		respondServiceError(w, r, "Get recent readings", err)
		return
	}
	respondJSON(w, http.StatusOK, readings)
}
