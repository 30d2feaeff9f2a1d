package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Metrics holds all application metrics
type Metrics struct {
	RequestCount          metric.Int64Counter
	RequestDuration       metric.Float64Histogram
	MutationCount         metric.Int64Counter
	SnapshotWriteCount    metric.Int64Counter
	SnapshotWriteDuration metric.Float64Histogram
}

// Setup initializes the OpenTelemetry metrics pipeline and returns a
// shutdown function.
func Setup(ctx context.Context, serviceName, serviceVersion, endpoint string) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(meterProvider)

	return meterProvider.Shutdown, nil
}

// InitMetrics initializes application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("reviewhub-backend")

	requestCount, err := meter.Int64Counter(
		"http.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.request.duration_ms",
		metric.WithDescription("HTTP request duration in milliseconds"),
	)
	if err != nil {
		return nil, err
	}

	mutationCount, err := meter.Int64Counter(
		"store.mutations.total",
		metric.WithDescription("Total number of committed store mutations"),
	)
	if err != nil {
		return nil, err
	}

	snapshotWriteCount, err := meter.Int64Counter(
		"store.snapshot.writes.total",
		metric.WithDescription("Total number of snapshot writes"),
	)
	if err != nil {
		return nil, err
	}

	snapshotWriteDuration, err := meter.Float64Histogram(
		"store.snapshot.write_duration_ms",
		metric.WithDescription("Snapshot write duration in milliseconds"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:          requestCount,
		RequestDuration:       requestDuration,
		MutationCount:         mutationCount,
		SnapshotWriteCount:    snapshotWriteCount,
		SnapshotWriteDuration: snapshotWriteDuration,
	}, nil
}
