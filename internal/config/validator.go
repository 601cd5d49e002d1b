package config

import (
	"fmt"
	"strings"
)

// Validate checks that required configuration values are present and sane.
// Fails fast at startup rather than surfacing misconfiguration at request time.
func (c *Config) Validate() error {
	var problems []string

	if c.APIKey == "" {
		problems = append(problems, "API_KEY must be set")
	}

	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT %d out of range", c.Port))
	}

	switch c.Environment {
	case "dev", "staging", "prod", "test":
	default:
		problems = append(problems, fmt.Sprintf("ENVIRONMENT %q not recognized", c.Environment))
	}

	if c.WeatherPollInterval < MinWeatherPollInterval {
		problems = append(problems, fmt.Sprintf("WEATHER_POLL_INTERVAL below minimum %s", MinWeatherPollInterval))
	}

	if c.TelemetrySecret == "" && c.Environment == "prod" {
		problems = append(problems, "TELEMETRY_SECRET must be set in prod")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
