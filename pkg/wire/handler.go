package wire

import (
	"context"
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

// SyncFunc handles a payload and returns when done. A non-nil error fails
// the chain.
type SyncFunc[T any] func(ctx context.Context, payload T) error

// AsyncFunc handles a payload and reports completion by calling done,
// possibly from another goroutine. Passing a non-nil error to done fails
// the chain. Only the first call to done counts.
//
// The chain waits for done before running the next handler. A handler that
// never calls done stalls its chain until ctx is cancelled.
type AsyncFunc[T any] func(ctx context.Context, payload T, done func(error))

// Handler is a callable registered on a dispatcher. Build one with Sync or
// Async; the zero value is rejected at registration.
type Handler[T any] struct {
	name  string
	sync  SyncFunc[T]
	async AsyncFunc[T]
}

// Sync wraps a function that completes when it returns.
func Sync[T any](fn func(ctx context.Context, payload T) error) Handler[T] {
	h := Handler[T]{sync: fn}
	if fn != nil {
		h.name = funcName(fn)
	}
	return h
}

// Async wraps a function that completes by calling done.
func Async[T any](fn func(ctx context.Context, payload T, done func(error))) Handler[T] {
	h := Handler[T]{async: fn}
	if fn != nil {
		h.name = funcName(fn)
	}
	return h
}

// Name returns the handler's default name: the declared Go function name
// without its package path. Anonymous functions get compiler-generated
// names such as "TestFoo.func1".
func (h Handler[T]) Name() string {
	return h.name
}

// IsAsync reports whether the handler completes through a done callback.
func (h Handler[T]) IsAsync() bool {
	return h.async != nil
}

func (h Handler[T]) valid() bool {
	return h.sync != nil || h.async != nil
}

// call runs the handler and waits for it to finish. Panics are returned as
// *PanicError.
func (h Handler[T]) call(ctx context.Context, payload T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{
				Value: r,
				Stack: string(debug.Stack()),
			}
		}
	}()

	if h.sync != nil {
		return h.sync(ctx, payload)
	}

	result := make(chan error, 1)
	var once sync.Once
	done := func(err error) {
		once.Do(func() { result <- err })
	}

	h.async(ctx, payload, done)

	// Prefer a completion that is already available over a cancelled context.
	select {
	case err := <-result:
		return err
	default:
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// funcName returns the short name of a function value.
func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return ""
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
