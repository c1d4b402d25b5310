package main

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"payment-router/config"
	"payment-router/handlers"
	"payment-router/latency"
	"payment-router/logging"
	"payment-router/monitoring"
	"payment-router/processor"
	"payment-router/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logging
	if err := logging.InitLogger(cfg.LogLevel, cfg.OTELEndpoint); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logging.Sync()
	defer func() {
		if err := logging.Shutdown(context.Background()); err != nil {
			logging.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	// Initialize OpenTelemetry
	var tracer trace.Tracer = otel.Tracer(cfg.ServiceName)
	if cfg.TracingEnabled {
		tp, t, err := monitoring.InitTracer(cfg.ServiceName, cfg.OTELEndpoint)
		if err != nil {
			logging.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logging.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
		tracer = t
	}

	mp, metricsHandler, err := monitoring.InitMeter(cfg.ServiceName, cfg.OTELEndpoint, cfg.MetricsExporter)
	if err != nil {
		logging.Fatal("Failed to initialize meter", zap.Error(err))
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			logging.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Initialize processing layer
	rt := processor.NewRuntime(
		processor.WithDelayer(latency.Timer{}),
		processor.WithStepDelay(cfg.StepDelay),
		processor.WithTracer(tracer),
	)
	paymentService := service.NewPaymentService(tracer)
	paymentController := service.NewPaymentController(paymentService, rt)

	// Initialize handlers
	paymentHandler := handlers.NewPaymentHandler(paymentController, cfg.RequestTimeout)

	// Setup Gin router
	r := gin.Default()

	// OpenTelemetry middleware
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMetricsMiddleware())

	// Routes
	r.GET("/health", paymentHandler.HealthCheck)
	r.POST("/api/payments", paymentHandler.ProcessPayment)
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// Start server
	logging.Info("Payment router starting",
		zap.String("port", cfg.Port),
		zap.Duration("step_delay", cfg.StepDelay),
		zap.String("metrics_exporter", cfg.MetricsExporter),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		logging.Fatal("Failed to start server", zap.Error(err))
	}
}

// httpMetricsMiddleware records HTTP request metrics
func httpMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		// Record duration
		duration := float64(time.Since(start).Milliseconds())

		monitoring.HTTPServerDuration.Record(c.Request.Context(), duration,
			metric.WithAttributes(
				attribute.String("http_method", c.Request.Method),
				attribute.String("http_route", c.FullPath()),
				attribute.String("http_status_code", strconv.Itoa(c.Writer.Status())),
			),
		)
	}
}
