/*
Package wire provides a pattern-addressable event dispatcher.

# Overview

Handlers are registered against channel patterns. Emitting a channel name
runs every handler whose pattern matches, as one ordered chain:

	w := wire.New[*Order]()

	w.On("order.created", wire.Sync(reserveStock))
	w.Before("order.*", wire.Sync(validate))
	w.After("order.created", wire.Sync(sendReceipt))

	err := w.Emit(ctx, "order.created", order)

Each dispatcher is independent; there is no package-level instance.

# Patterns

A pattern is either an exact channel name or a prefix followed by a single
trailing "*". "order.*" matches "order.created" and "order.cancelled";
"order*" also matches "orders". Patterns may not be empty, may not start
with "*", and may not contain "*" anywhere but the end. Emitted channel
names may not contain "*" at all.

# Ordering

Every handler has an integer priority; lower runs first, and equal
priorities run in registration order. The registration flavor picks the
default:

	On      0    any explicit priority
	Before  -10  explicit priority must be <= 0
	After   10   explicit priority must be >= 0

	w.On("test", wire.Sync(h1), wire.WithPriority(11))
	w.On("test", wire.Sync(h2), wire.WithPriority(9))
	w.After("test", wire.Sync(h3))
	w.On("test", wire.Sync(h4))
	w.After("test", wire.Sync(h5))
	// emit "test" runs h4, h2, h3, h5, h1

# Sync and Async Handlers

Sync handlers complete when they return; a non-nil error fails the chain.
Async handlers receive a done callback and the chain waits for it:

	w.On("upload", wire.Async(func(ctx context.Context, f *File, done func(error)) {
	    go func() { done(store(ctx, f)) }()
	}))

Handlers in one chain never run concurrently.

# Failures and Ensure

The first failure is recorded and the remaining handlers are skipped,
except those registered WithEnsure, which still run in order. Emit returns
the first failure wrapped in a *HandlerError. A panicking handler fails the
chain with a *PanicError.

# One-shot Handlers and Skip Rules

Once registers a handler that is dropped as soon as a matching emit
resolves its chain. Skip suppresses handlers by name on every channel the
skip pattern matches:

	w.On("foo.bar", wire.Sync(h), wire.WithName("foobar"))
	w.Skip("foo.*", "foobar")

# Introspection

Has reports whether a plain listener exists on an exact name; Stat lists
registered patterns with their handler counts.

# Observability

WithLogger, WithMetrics and WithTracing enable slog logging, OpenTelemetry
metrics and OpenTelemetry spans. FromConfig builds a dispatcher from a
config.Config loaded from YAML or JSON.
*/
package wire
