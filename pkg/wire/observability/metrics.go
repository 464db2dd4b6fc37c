package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records dispatcher metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEmit records a completed emit call over one or more channels.
	RecordEmit(ctx context.Context, channels int, duration time.Duration, err error)

	// RecordHandler records one handler invocation.
	RecordHandler(ctx context.Context, channel, handler string, duration time.Duration, err error)

	// RecordResolve records the size of a resolved handler chain.
	RecordResolve(ctx context.Context, channel string, handlers int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	emits          metric.Int64Counter
	emitLatency    metric.Float64Histogram
	emitErrors     metric.Int64Counter
	handlerCalls   metric.Int64Counter
	handlerLatency metric.Float64Histogram
	handlerErrors  metric.Int64Counter
	chainLength    metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("eventwire")

	emits, err := meter.Int64Counter("wire.emit.count",
		metric.WithDescription("Number of emit calls"),
	)
	if err != nil {
		return nil, err
	}

	emitLatency, err := meter.Float64Histogram("wire.emit.latency_ms",
		metric.WithDescription("Emit latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	emitErrors, err := meter.Int64Counter("wire.emit.errors",
		metric.WithDescription("Number of emit calls that reported a handler failure"),
	)
	if err != nil {
		return nil, err
	}

	handlerCalls, err := meter.Int64Counter("wire.handler.executions",
		metric.WithDescription("Number of handler invocations"),
	)
	if err != nil {
		return nil, err
	}

	handlerLatency, err := meter.Float64Histogram("wire.handler.latency_ms",
		metric.WithDescription("Handler latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	handlerErrors, err := meter.Int64Counter("wire.handler.errors",
		metric.WithDescription("Number of failed handler invocations"),
	)
	if err != nil {
		return nil, err
	}

	chainLength, err := meter.Int64Histogram("wire.chain.length",
		metric.WithDescription("Number of handlers resolved for a channel"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		emits:          emits,
		emitLatency:    emitLatency,
		emitErrors:     emitErrors,
		handlerCalls:   handlerCalls,
		handlerLatency: handlerLatency,
		handlerErrors:  handlerErrors,
		chainLength:    chainLength,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEmit records an emit call.
func (m *otelMetrics) RecordEmit(ctx context.Context, channels int, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
		attribute.Int("channels", channels),
	}
	m.emits.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.emitLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.emitErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordHandler records a handler invocation.
func (m *otelMetrics) RecordHandler(ctx context.Context, channel, handler string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("channel", channel),
		attribute.String("handler", handler),
	}

	m.handlerCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.handlerLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.handlerErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordResolve records a resolved chain length.
func (m *otelMetrics) RecordResolve(ctx context.Context, channel string, handlers int) {
	m.chainLength.Record(ctx, int64(handlers), metric.WithAttributes(
		attribute.String("channel", channel),
	))
}
