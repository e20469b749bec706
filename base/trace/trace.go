package trace

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.uber.org/zap"
)

// Init installs the global tracer provider and trace-context propagator.
// Finished spans are logged at debug level and, when endpoint is set, exported over OTLP gRPC.
func Init(ctx context.Context, endpoint, serviceName string) (func(context.Context) error, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
		sdktrace.WithSpanProcessor(&logProcessor{}),
	}
	if endpoint != "" {
		exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(endpoint), otlptracegrpc.WithInsecure())
		if err != nil {
			return nil, errors.Wrap(err, "create trace exporter failed")
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

type logProcessor struct{}

func (p *logProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logProcessor) OnEnd(s sdktrace.ReadOnlySpan) {
	zap.S().Debugf(
		"span=%s trace_id=%s status=%s latency=%d",
		s.Name(),
		s.SpanContext().TraceID(),
		s.Status().Code,
		s.EndTime().Sub(s.StartTime()).Microseconds(),
	)
}

func (p *logProcessor) Shutdown(context.Context) error {
	return nil
}

func (p *logProcessor) ForceFlush(context.Context) error {
	return nil
}
