package domain

import "time"

// CurrentWeather is a snapshot from the upstream weather provider
type CurrentWeather struct {
	Location      string    `json:"location"`
	Temperature   float64   `json:"temperature"`   // °C
	Humidity      float64   `json:"humidity"`      // percent
	Precipitation float64   `json:"precipitation"` // mm
	WindSpeed     float64   `json:"wind_speed"`    // km/h
	ObservedAt    time.Time `json:"observed_at"`
}

// WeatherAlert is produced by the weather rule engine
type WeatherAlert struct {
	RuleKey   string  `json:"rule_key"`
	Severity  string  `json:"severity"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Value     float64 `json:"value"`
	Threshold float64 `json:"threshold"`
}
