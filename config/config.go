package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Metrics exporter names accepted by METRICS_EXPORTER
const (
	MetricsExporterOTLP       = "otlp"
	MetricsExporterPrometheus = "prometheus"
)

// Config holds application configuration
type Config struct {
	ServiceName     string
	OTELEndpoint    string
	Port            string
	LogLevel        string
	MetricsExporter string
	TracingEnabled  bool

	// StepDelay is the simulated latency spent at each protocol suspension point
	StepDelay      time.Duration
	RequestTimeout time.Duration
}

// Load loads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName:     "payment-router",
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Port:            getEnv("PORT", "8081"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		MetricsExporter: getEnv("METRICS_EXPORTER", MetricsExporterOTLP),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", true),
		StepDelay:       getDurationEnv("STEP_DELAY", time.Second),
		RequestTimeout:  getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
	}
	return defaultValue
}
