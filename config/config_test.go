package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "METRICS_EXPORTER", "STEP_DELAY", "REQUEST_TIMEOUT", "TRACING_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "payment-router", cfg.ServiceName)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, MetricsExporterOTLP, cfg.MetricsExporter)
	assert.True(t, cfg.TracingEnabled)
	assert.Equal(t, time.Second, cfg.StepDelay)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("METRICS_EXPORTER", MetricsExporterPrometheus)
	t.Setenv("STEP_DELAY", "0s")
	t.Setenv("REQUEST_TIMEOUT", "2500ms")
	t.Setenv("TRACING_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, MetricsExporterPrometheus, cfg.MetricsExporter)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, time.Duration(0), cfg.StepDelay)
	assert.Equal(t, 2500*time.Millisecond, cfg.RequestTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("STEP_DELAY", "soon")
	t.Setenv("REQUEST_TIMEOUT", "-1s")
	t.Setenv("TRACING_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, time.Second, cfg.StepDelay)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.TracingEnabled)
}
