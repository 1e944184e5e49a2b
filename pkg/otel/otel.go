package otel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
)

const instrumentationName = "github.com/adrianliechti/plantuml"

var (
	EnableDebug     = os.Getenv("DEBUG") != ""
	EnableTelemetry = os.Getenv("TELEMETRY") != ""
)

// Observable is implemented by the decorators of this package so that
// config does not wrap a provider twice.
type Observable interface {
	otelSetup()
}

// Setup installs the default slog logger on w and, with TELEMETRY set,
// replaces it with an OTLP bridge next to the trace and metric providers.
func Setup(ctx context.Context, w io.Writer, service, version string) error {
	level := slog.LevelInfo

	if EnableDebug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})))

	if !EnableTelemetry {
		return nil
	}

	resource, err := sdkresource.New(ctx,
		sdkresource.WithFromEnv(),
		sdkresource.WithTelemetrySDK(),
		sdkresource.WithAttributes(
			attribute.String("service.name", service),
			attribute.String("service.version", version),
		),
	)

	if err != nil {
		return err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return errors.Join(
		setupLogger(ctx, resource),
		setupMeter(ctx, resource),
		setupTracer(ctx, resource),
	)
}

// useGRPC reports whether the OTLP exporter for signal speaks gRPC
// instead of the default HTTP.
func useGRPC(signal string) bool {
	for _, key := range []string{"OTEL_EXPORTER_OTLP_PROTOCOL", "OTEL_EXPORTER_OTLP_" + signal + "_PROTOCOL"} {
		if strings.ToLower(os.Getenv(key)) == "grpc" {
			return true
		}
	}

	return false
}

func setupLogger(ctx context.Context, resource *sdkresource.Resource) error {
	var err error
	var exporter sdklog.Exporter

	if useGRPC("LOGS") {
		exporter, err = otlploggrpc.New(ctx)
	} else {
		exporter, err = otlploghttp.New(ctx)
	}

	if err != nil {
		return err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(resource),
	)

	global.SetLoggerProvider(provider)

	slog.SetDefault(otelslog.NewLogger(instrumentationName, otelslog.WithLoggerProvider(provider)))

	return nil
}

func setupMeter(ctx context.Context, resource *sdkresource.Resource) error {
	var err error
	var exporter sdkmetric.Exporter

	if useGRPC("METRICS") {
		exporter, err = otlpmetricgrpc.New(ctx)
	} else {
		exporter, err = otlpmetrichttp.New(ctx)
	}

	if err != nil {
		return err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))),
		sdkmetric.WithResource(resource),
	)

	otel.SetMeterProvider(provider)

	return nil
}

func setupTracer(ctx context.Context, resource *sdkresource.Resource) error {
	var err error
	var exporter sdktrace.SpanExporter

	if useGRPC("TRACES") {
		exporter, err = otlptracegrpc.New(ctx)
	} else {
		exporter, err = otlptracehttp.New(ctx)
	}

	if err != nil {
		return err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(time.Second)),
		sdktrace.WithResource(resource),
	)

	otel.SetTracerProvider(provider)

	return nil
}
