package wire

import (
	"log/slog"

	"github.com/randalmurphal/eventwire/pkg/wire/observability"
)

// wireConfig holds dispatcher-level settings.
type wireConfig struct {
	name    string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

func defaultWireConfig() wireConfig {
	return wireConfig{
		name:    "wire",
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a dispatcher.
type Option func(*wireConfig)

// WithDispatcherName sets the name used in logs, metrics and spans.
// Default: "wire"
func WithDispatcherName(name string) Option {
	return func(c *wireConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger enables structured logging of emits and handler runs.
// A nil logger disables logging (the default).
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	w := wire.New[*Order](wire.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *wireConfig) {
		c.logger = logger
	}
}

// WithMetrics enables or disables OpenTelemetry metrics using the global
// meter provider.
func WithMetrics(enabled bool) Option {
	return func(c *wireConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithMetricsRecorder sets a custom metrics recorder.
func WithMetricsRecorder(m observability.MetricsRecorder) Option {
	return func(c *wireConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing enables or disables OpenTelemetry tracing using the global
// tracer provider. Each emit gets a span with one child span per handler.
func WithTracing(enabled bool) Option {
	return func(c *wireConfig) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithSpanManager sets a custom span manager.
func WithSpanManager(s observability.SpanManager) Option {
	return func(c *wireConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// registration collects per-handler options.
type registration struct {
	priority    int
	hasPriority bool
	name        string
	ensure      bool
	once        bool
}

// RegisterOption configures a single registration.
type RegisterOption func(*registration)

// WithPriority overrides the flavor's default priority. Lower runs first.
func WithPriority(p int) RegisterOption {
	return func(r *registration) {
		r.priority = p
		r.hasPriority = true
	}
}

// WithName overrides the handler name used by Skip and Off.
// An empty name keeps the default.
func WithName(name string) RegisterOption {
	return func(r *registration) {
		if name != "" {
			r.name = name
		}
	}
}

// WithEnsure marks the handler to run even after an earlier handler in the
// same chain has failed.
func WithEnsure() RegisterOption {
	return func(r *registration) {
		r.ensure = true
	}
}

// WithOnce marks the handler one-shot: it is removed as soon as it is
// resolved into a chain.
func WithOnce() RegisterOption {
	return func(r *registration) {
		r.once = true
	}
}
