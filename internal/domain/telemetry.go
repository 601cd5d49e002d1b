package domain

import "time"

// SensorReading is a single validated telemetry sample
type SensorReading struct {
	SensorID   string    `json:"sensor_id"`
	Timestamp  time.Time `json:"timestamp"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Confidence float64   `json:"confidence"`
	Checksum   string    `json:"checksum"`
}

// SensorStats summarizes recent readings for one sensor
type SensorStats struct {
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Median     float64 `json:"median"`
	Count      int     `json:"count"`
	Confidence float64 `json:"confidence"`
}

// TrendAnalysis describes the direction of recent readings
type TrendAnalysis struct {
	Trend         string  `json:"trend"` // "stable", "increasing", "decreasing"
	TrendStrength float64 `json:"trend_strength"`
	Slope         float64 `json:"slope"`
	RSquared      float64 `json:"r_squared"`
}

// TelemetryAlert is raised when a reading crosses a configured threshold
type TelemetryAlert struct {
	SensorID  string    `json:"sensor_id"`
	Metric    string    `json:"metric"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Trend direction constants
const (
	TrendStable     = "stable"
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)
