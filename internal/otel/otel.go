package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/detectors/aws/ecs"
	otelxray "go.opentelemetry.io/contrib/propagators/aws/xray"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
)

// SetupTracer installs a global tracer provider exporting to the local OTLP
// collector with X-Ray compatible ids and propagation. Callers own the
// returned provider and should flush or shut it down.
func SetupTracer(ctx context.Context, svcName string) (*sdktrace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithInsecure(), otlptracegrpc.WithDialOption(grpc.WithBlock()))
	if err != nil {
		return nil, fmt.Errorf("create otel trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(serviceResource(ctx, svcName)),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithIDGenerator(otelxray.NewIDGenerator()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(otelxray.Propagator{})
	return tp, nil
}

// serviceResource names the service and, when running on ECS, adds the task
// and container attributes.
func serviceResource(ctx context.Context, svcName string) *resource.Resource {
	r := resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceNameKey.String(svcName))

	detected, err := ecs.NewResourceDetector().Detect(ctx)
	if err != nil || detected == nil {
		return r
	}

	merged, err := resource.Merge(r, detected)
	if err != nil {
		return r
	}
	return merged
}

// XRayTraceID formats the span's trace id the way X-Ray prints it, or
// returns "" when span carries no trace.
func XRayTraceID(span trace.Span) string {
	sc := span.SpanContext()
	if !sc.HasTraceID() {
		return ""
	}

	id := sc.TraceID().String()
	if len(id) < 9 {
		return id
	}

	return fmt.Sprintf("1-%s-%s", id[:8], id[8:])
}
