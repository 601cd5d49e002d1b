package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	ServiceName string
	Version     string
	LogLevel    string
	LogFormat   string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey         string // API key for authentication
	TrustedProxies []string

	// Weather provider settings
	WeatherAPIURL       string
	WeatherAPIKey       string
	WeatherLocation     string
	WeatherPollInterval time.Duration

	// Telemetry ingest settings
	TelemetrySecret string

	// Event delivery
	DeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:     getEnv("ENVIRONMENT", "dev"),
		ServiceName:     getEnv("SERVICE_NAME", "farmfit-server"),
		Version:         getEnv("VERSION", "dev"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBName:          getEnv("DB_NAME", "farmfit"),
		APIKey:          getEnv("API_KEY", ""),
		WeatherAPIURL:   getEnv("WEATHER_API_URL", "https://api.open-meteo.com/v1/forecast"),
		WeatherAPIKey:   getEnv("WEATHER_API_KEY", ""),
		WeatherLocation: getEnv("WEATHER_LOCATION", "default"),
		TelemetrySecret: getEnv("TELEMETRY_SECRET", ""),
		DeadLetterPath:  getEnv("DEAD_LETTER_PATH", "logs/deadletter.jsonl"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	pollStr := getEnv("WEATHER_POLL_INTERVAL", "15m")
	poll, err := time.ParseDuration(pollStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_POLL_INTERVAL value: %w", err)
	}
	cfg.WeatherPollInterval = poll

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
