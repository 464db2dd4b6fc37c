package wire

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/eventwire/pkg/wire/observability"
)

// Emit runs the handler chain for channel against payload and returns the
// first handler failure, or nil.
//
// Handlers run one at a time in priority order. After a failure only
// handlers registered WithEnsure still run; their own failures never
// replace the first one. Async handlers are awaited before the next handler
// starts. If ctx is cancelled while waiting, ctx.Err() becomes the failure.
//
// A returned error is either an *ArgumentError (nothing ran) or a
// *HandlerError wrapping what the handler reported.
func (w *Wire[T]) Emit(ctx context.Context, channel string, payload T) error {
	return w.EmitAll(ctx, []string{channel}, payload)
}

// EmitAll runs the chain of each channel in order, sharing payload. A
// failure in one channel's chain does not prevent later channels from
// running; the first failure across all chains is returned.
func (w *Wire[T]) EmitAll(ctx context.Context, channels []string, payload T) error {
	if err := validateEmit(ctx, "emit", channels); err != nil {
		return err
	}
	return w.dispatch(ctx, channels, payload)
}

// EmitAsync validates its arguments synchronously, then runs EmitAll on a
// new goroutine and calls completion exactly once with its result.
// completion may be nil.
//
// Example:
//
//	err := w.EmitAsync(ctx, []string{"order.created"}, order, func(err error) {
//	    if err != nil {
//	        log.Printf("order hooks failed: %v", err)
//	    }
//	})
func (w *Wire[T]) EmitAsync(ctx context.Context, channels []string, payload T, completion func(error)) error {
	if err := validateEmit(ctx, "emit", channels); err != nil {
		return err
	}

	// Copy so the caller may reuse its slice.
	chs := append([]string(nil), channels...)
	go func() {
		err := w.dispatch(ctx, chs, payload)
		if completion != nil {
			completion(err)
		}
	}()
	return nil
}

func validateEmit(ctx context.Context, op string, channels []string) error {
	if ctx == nil {
		return invalid(op, "context", "", ErrNilContext)
	}
	if len(channels) == 0 {
		return invalid(op, "channel", "", ErrEmptyChannel)
	}
	for _, ch := range channels {
		if err := validateChannel(op, ch); err != nil {
			return err
		}
	}
	return nil
}

// dispatch runs the chains of all channels with emit-level observability.
func (w *Wire[T]) dispatch(ctx context.Context, channels []string, payload T) (emitErr error) {
	emitID := uuid.NewString()
	logger := observability.EnrichLogger(w.cfg.logger, w.cfg.name, emitID)
	start := time.Now()

	observability.LogEmitStart(logger, channels)

	ctx, span := w.cfg.spans.StartEmitSpan(ctx, w.cfg.name, emitID, channels)
	defer func() {
		w.cfg.spans.EndSpanWithError(span, emitErr)
	}()

	executed := 0
	for _, ch := range channels {
		n, err := w.runChain(ctx, logger, ch, payload)
		executed += n
		if emitErr == nil && err != nil {
			emitErr = err
		}
	}

	duration := time.Since(start)
	durationMs := float64(duration.Milliseconds())
	w.cfg.metrics.RecordEmit(ctx, len(channels), duration, emitErr)

	if emitErr != nil {
		observability.LogEmitError(logger, emitErr, durationMs, executed)
	} else {
		observability.LogEmitComplete(logger, durationMs, executed)
	}

	return emitErr
}

// runChain resolves and executes the chain for one channel. It returns the
// number of handlers invoked and the chain's first failure.
func (w *Wire[T]) runChain(ctx context.Context, logger *slog.Logger, channel string, payload T) (int, error) {
	chain := w.resolve(channel, logger)
	w.cfg.metrics.RecordResolve(ctx, channel, len(chain))

	var failed error
	executed := 0
	for _, e := range chain {
		if failed != nil && !e.ensure {
			observability.LogHandlerSkipped(logger, channel, e.name)
			w.cfg.spans.AddSpanEvent(ctx, "handler.skipped",
				attribute.String("wire.channel", channel),
				attribute.String("wire.handler", e.name),
			)
			continue
		}

		executed++
		if err := w.invoke(ctx, logger, channel, e, payload); err != nil && failed == nil {
			failed = err
		}
	}

	return executed, failed
}

// invoke runs a single handler with handler-level observability.
func (w *Wire[T]) invoke(ctx context.Context, logger *slog.Logger, channel string, e *entry[T], payload T) error {
	observability.LogHandlerStart(logger, channel, e.name, e.priority)

	hctx, span := w.cfg.spans.StartHandlerSpan(ctx, channel, e.name, e.priority)
	start := time.Now()

	err := e.handler.call(hctx, payload)
	if err != nil {
		err = &HandlerError{
			Channel: channel,
			Handler: e.name,
			Err:     err,
		}
	}

	duration := time.Since(start)
	w.cfg.metrics.RecordHandler(hctx, channel, e.name, duration, err)
	w.cfg.spans.EndSpanWithError(span, err)

	if err != nil {
		observability.LogHandlerError(logger, channel, e.name, err)
		return err
	}
	observability.LogHandlerComplete(logger, channel, e.name, float64(duration.Milliseconds()))
	return nil
}
