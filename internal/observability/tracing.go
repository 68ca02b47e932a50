// Package observability configures OpenTelemetry tracing.
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/filmvibe/app-discover-api/internal/config"
	"github.com/filmvibe/app-discover-api/internal/logging"
)

const (
	ServiceName    = "app-discover-api"
	ServiceVersion = "v1.0.0"
)

var tracerProvider *sdktrace.TracerProvider

// ResourceAttributes describes this deployment on every exported span.
func ResourceAttributes(cfg *config.Config) []attribute.KeyValue {
	return []attribute.KeyValue{
		semconv.ServiceNameKey.String(ServiceName),
		semconv.ServiceVersionKey.String(ServiceVersion),
		attribute.String("discover.catalog.backend", cfg.CatalogBackend),
		attribute.String("discover.cache.backend", cfg.Cache.Backend),
		attribute.Int("discover.recommend.fetch_pages", cfg.Recommend.FetchPages),
		attribute.Bool("discover.mood.enabled", cfg.GeminiAPIKey != ""),
		attribute.String("discover.tmdb.language", cfg.TMDB.Language),
	}
}

// Sampler keeps the caller's decision for propagated traces and samples
// root traces at cfg.TracingSampleRatio.
func Sampler(cfg *config.Config) sdktrace.Sampler {
	if cfg.TracingSampleRatio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.TracingSampleRatio))
}

// InitTracer installs a batching OTLP/gRPC tracer provider when tracing is
// enabled. Failures are logged and leave the no-op provider in place.
func InitTracer(cfg *config.Config) {
	if !cfg.TracingEnabled {
		logging.Info().Msg("tracing disabled")
		return
	}

	ctx := context.Background()

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
		otlptracegrpc.WithEndpoint(cfg.TracingEndpoint),
		otlptracegrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
	))
	if err != nil {
		logging.Error().Err(err).Str("endpoint", cfg.TracingEndpoint).Msg("create OTLP exporter")
		return
	}

	res, err := resource.New(ctx, resource.WithAttributes(ResourceAttributes(cfg)...))
	if err != nil {
		logging.Error().Err(err).Msg("create tracing resource")
		return
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(Sampler(cfg)),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logging.Info().
		Str("endpoint", cfg.TracingEndpoint).
		Str("catalog_backend", cfg.CatalogBackend).
		Float64("sample_ratio", cfg.TracingSampleRatio).
		Msg("tracer initialized")
}

// ShutdownTracer flushes pending spans.
func ShutdownTracer() {
	if tracerProvider == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := tracerProvider.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("shutdown tracer provider")
	}
}
