package wire

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/randalmurphal/eventwire/pkg/wire/config"
	"github.com/randalmurphal/eventwire/pkg/wire/registry"
)

// Flavor selects the default priority and the priority sign rule of a
// registration.
type Flavor int

const (
	// FlavorPlain registers a regular listener. Default priority 0.
	FlavorPlain Flavor = iota
	// FlavorBefore registers a hook that runs ahead of plain listeners.
	// Default priority -10; explicit priorities must be <= 0.
	FlavorBefore
	// FlavorAfter registers a hook that runs behind plain listeners.
	// Default priority 10; explicit priorities must be >= 0.
	FlavorAfter
)

// Default priorities per flavor.
const (
	DefaultPriority       = 0
	DefaultBeforePriority = -10
	DefaultAfterPriority  = 10
)

// String returns the flavor name.
func (f Flavor) String() string {
	switch f {
	case FlavorPlain:
		return "on"
	case FlavorBefore:
		return "before"
	case FlavorAfter:
		return "after"
	default:
		return fmt.Sprintf("Flavor(%d)", int(f))
	}
}

func (f Flavor) defaultPriority() int {
	switch f {
	case FlavorBefore:
		return DefaultBeforePriority
	case FlavorAfter:
		return DefaultAfterPriority
	default:
		return DefaultPriority
	}
}

// entry is one handler registered on one pattern.
type entry[T any] struct {
	id       string
	pattern  string
	name     string
	flavor   Flavor
	priority int
	ensure   bool
	once     bool
	order    uint64
	handler  Handler[T]
}

// Wire is a pattern-addressable event dispatcher carrying payloads of type T.
// Use a pointer type for T when handlers must see each other's mutations.
//
// A Wire is safe for concurrent use. Handlers run without the internal lock
// held, so they may register, remove, skip or emit on the same Wire.
type Wire[T any] struct {
	cfg wireConfig

	mu      sync.Mutex
	buckets *registry.Ordered[string, []*entry[T]]
	skips   *registry.Ordered[string, map[string]struct{}]
	seq     uint64
}

// New creates an empty dispatcher.
func New[T any](opts ...Option) *Wire[T] {
	cfg := defaultWireConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Wire[T]{
		cfg:     cfg,
		buckets: registry.New[string, []*entry[T]](),
		skips:   registry.New[string, map[string]struct{}](),
	}
}

// FromConfig creates a dispatcher from loaded configuration and applies its
// skip rules. When logger is nil a JSON logger on stderr is created at the
// configured level. Extra options are applied after the configured ones.
func FromConfig[T any](cfg config.Config, logger *slog.Logger, opts ...Option) (*Wire[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if logger == nil {
		level, _ := cfg.Level()
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	base := []Option{
		WithDispatcherName(cfg.Name),
		WithLogger(logger),
		WithMetrics(cfg.Metrics),
		WithTracing(cfg.Tracing),
	}
	w := New[T](append(base, opts...)...)

	for _, pattern := range cfg.SkipPatterns() {
		if err := w.Skip(pattern, cfg.Skip[pattern]...); err != nil {
			return nil, fmt.Errorf("apply skip rule: %w", err)
		}
	}

	return w, nil
}

// Name returns the dispatcher name.
func (w *Wire[T]) Name() string {
	return w.cfg.name
}
