// Package otel wires OpenTelemetry tracing for the service and offers small
// helpers to start spans from a request context.
package otel

import (
	"context"
	"fmt"

	gotel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"lightshop/pkg/logger"
)

// Config describes where spans go and how many are kept.
type Config struct {
	ServiceName string
	Host        string
	Probability float64
}

// InitTracing installs a global tracer provider. Spans are exported over
// OTLP/gRPC when Host is set; otherwise they are sampled but kept in process.
func InitTracing(log *logger.Logger, cfg Config) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	ctx := context.Background()

	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", cfg.ServiceName),
	))
	if err != nil {
		return nil, nil, fmt.Errorf("tracing resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.Probability))),
		sdktrace.WithResource(res),
	}
	if cfg.Host != "" {
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Host),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("otlp exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
		log.Info(ctx, "tracing exporter configured", "host", cfg.Host, "probability", cfg.Probability)
	} else {
		log.Info(ctx, "tracing without exporter", "probability", cfg.Probability)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	gotel.SetTracerProvider(tp)
	gotel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	gotel.SetErrorHandler(gotel.ErrorHandlerFunc(func(err error) {
		log.Error(context.Background(), "tracing", "error", err)
	}))

	return tp, tp.Shutdown, nil
}

type tracerKey struct{}

// InjectTracing stores tracer in ctx for AddSpan.
func InjectTracing(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerKey{}, tracer)
}

// AddSpan starts a span named name as a child of any span in ctx. Without an
// injected tracer the global provider is used.
func AddSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer, ok := ctx.Value(tracerKey{}).(trace.Tracer)
	if !ok {
		tracer = gotel.Tracer("lightshop")
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// GetTraceID returns the trace id of the span in ctx, or "".
func GetTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
