package monitoring

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"payment-router/config"
	"payment-router/logging"
)

var (
	// OpenTelemetry metrics
	PaymentCounter     metric.Int64Counter
	PaymentAmount      metric.Float64Histogram
	StepDuration       metric.Float64Histogram
	HTTPServerDuration metric.Float64Histogram
)

// Instruments start out bound to a no-op meter so packages using them work
// before InitMeter runs, which is always the case in tests.
func init() {
	if err := registerInstruments(noop.NewMeterProvider().Meter("payment-router")); err != nil {
		panic(err)
	}
}

// InitTracer initializes OpenTelemetry tracing
func InitTracer(serviceName, endpoint string) (*sdktrace.TracerProvider, trace.Tracer, error) {
	ctx := context.Background()

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, nil, err
	}

	res, err := newResource(ctx, serviceName)
	if err != nil {
		return nil, nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	tracer := tp.Tracer(serviceName)

	logging.Info("Tracing initialized", zap.String("service_name", serviceName))

	return tp, tracer, nil
}

// InitMeter initializes OpenTelemetry metrics. With the prometheus exporter the
// returned handler serves the scrape endpoint; with OTLP it is nil.
func InitMeter(serviceName, endpoint, exporter string) (*sdkmetric.MeterProvider, http.Handler, error) {
	ctx := context.Background()

	res, err := newResource(ctx, serviceName)
	if err != nil {
		return nil, nil, err
	}

	var (
		reader  sdkmetric.Reader
		handler http.Handler
	)

	switch exporter {
	case config.MetricsExporterPrometheus:
		promExporter, err := otelprom.New()
		if err != nil {
			return nil, nil, err
		}
		reader = promExporter
		handler = promhttp.Handler()
	case config.MetricsExporterOTLP:
		metricExporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, nil, err
		}
		reader = sdkmetric.NewPeriodicReader(metricExporter)
	default:
		return nil, nil, fmt.Errorf("unknown metrics exporter %q", exporter)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	if err := registerInstruments(mp.Meter(serviceName)); err != nil {
		return nil, nil, err
	}

	logging.Info("Metrics initialized",
		zap.String("exporter", exporter),
		zap.String("endpoint", endpoint),
	)

	return mp, handler, nil
}

func newResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
}

func registerInstruments(meter metric.Meter) error {
	var err error

	PaymentCounter, err = meter.Int64Counter(
		"payments_processed_total",
		metric.WithDescription("Total number of payments processed"),
	)
	if err != nil {
		return err
	}

	PaymentAmount, err = meter.Float64Histogram(
		"payment_amount",
		metric.WithDescription("Approved payment values"),
	)
	if err != nil {
		return err
	}

	StepDuration, err = meter.Float64Histogram(
		"payment_step_duration_seconds",
		metric.WithDescription("Duration of each payment protocol step"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	HTTPServerDuration, err = meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP server request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	return err
}
