package notification

import (
	"fmt"

	"github.com/farmfit/farmfit/internal/domain"
)

// EvaluateWeather runs the fixed rule set against a weather snapshot and
// returns the alerts it trips. Frost is the only critical rule since it can
// destroy a crop overnight.
func EvaluateWeather(w domain.CurrentWeather) []domain.WeatherAlert {
	var alerts []domain.WeatherAlert

	if w.Temperature <= FrostThresholdCelsius {
		alerts = append(alerts, domain.WeatherAlert{
			RuleKey:   RuleKeyFrost,
			Severity:  domain.SeverityCritical,
			Title:     "Frost warning",
			Message:   fmt.Sprintf("Temperature %.1f°C is at or below freezing. Protect sensitive crops now.", w.Temperature),
			Value:     w.Temperature,
			Threshold: FrostThresholdCelsius,
		})
	}

	if w.Temperature >= HeatThresholdCelsius {
		alerts = append(alerts, domain.WeatherAlert{
			RuleKey:   RuleKeyHeat,
			Severity:  domain.SeverityWarning,
			Title:     "Heat stress warning",
			Message:   fmt.Sprintf("Temperature %.1f°C exceeds %.0f°C. Increase irrigation and shade where possible.", w.Temperature, HeatThresholdCelsius),
			Value:     w.Temperature,
			Threshold: HeatThresholdCelsius,
		})
	}

	if w.WindSpeed >= WindThresholdKmh {
		alerts = append(alerts, domain.WeatherAlert{
			RuleKey:   RuleKeyWind,
			Severity:  domain.SeverityWarning,
			Title:     "High wind warning",
			Message:   fmt.Sprintf("Wind speed %.0f km/h exceeds %.0f km/h. Secure equipment and row covers.", w.WindSpeed, WindThresholdKmh),
			Value:     w.WindSpeed,
			Threshold: WindThresholdKmh,
		})
	}

	if w.Precipitation >= RainThresholdMm {
		alerts = append(alerts, domain.WeatherAlert{
			RuleKey:   RuleKeyRain,
			Severity:  domain.SeverityWarning,
			Title:     "Heavy rain warning",
			Message:   fmt.Sprintf("Precipitation %.0f mm exceeds %.0f mm. Check drainage and delay field work.", w.Precipitation, RainThresholdMm),
			Value:     w.Precipitation,
			Threshold: RainThresholdMm,
		})
	}

	if w.Humidity < HumidityLowThresholdPc {
		alerts = append(alerts, domain.WeatherAlert{
			RuleKey:   RuleKeyLowHumidity,
			Severity:  domain.SeverityWarning,
			Title:     "Low humidity warning",
			Message:   fmt.Sprintf("Humidity %.0f%% is below %.0f%%. Elevated fire and desiccation risk.", w.Humidity, HumidityLowThresholdPc),
			Value:     w.Humidity,
			Threshold: HumidityLowThresholdPc,
		})
	}

	return alerts
}
