package wire_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/eventwire/pkg/wire"
)

// fakeMetrics records every call made by the dispatcher.
type fakeMetrics struct {
	mu       sync.Mutex
	emits    []error
	handlers []string
	resolves map[string]int
}

func (m *fakeMetrics) RecordEmit(_ context.Context, _ int, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emits = append(m.emits, err)
}

func (m *fakeMetrics) RecordHandler(_ context.Context, channel, handler string, _ time.Duration, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, channel+"/"+handler)
}

func (m *fakeMetrics) RecordResolve(_ context.Context, channel string, handlers int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resolves == nil {
		m.resolves = make(map[string]int)
	}
	m.resolves[channel] = handlers
}

// fakeSpans records span lifecycle calls.
type fakeSpans struct {
	mu     sync.Mutex
	starts []string
	ends   []error
	events []string
}

func (s *fakeSpans) StartEmitSpan(ctx context.Context, dispatcher, _ string, channels []string) (context.Context, trace.Span) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts = append(s.starts, "emit:"+dispatcher+":"+strings.Join(channels, ","))
	return ctx, trace.SpanFromContext(ctx)
}

func (s *fakeSpans) StartHandlerSpan(ctx context.Context, channel, handler string, _ int) (context.Context, trace.Span) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts = append(s.starts, "handler:"+channel+":"+handler)
	return ctx, trace.SpanFromContext(ctx)
}

func (s *fakeSpans) EndSpanWithError(_ trace.Span, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ends = append(s.ends, err)
}

func (s *fakeSpans) AddSpanEvent(_ context.Context, name string, attrs ...attribute.KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range attrs {
		if a.Key == "wire.handler" {
			name += ":" + a.Value.AsString()
		}
	}
	s.events = append(s.events, name)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		records = append(records, rec)
	}
	return records
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	w := wire.New[*payload](wire.WithLogger(logger), wire.WithDispatcherName("orders"))
	mustOn(t)(w.On("order.created", fail(errors.New("declined")), wire.WithName("reserve")))
	mustOn(t)(w.On("order.created", record(1), wire.WithName("notify")))

	require.Error(t, w.Emit(ctx(), "order.created", &payload{}))

	records := decodeLines(t, &buf)
	require.NotEmpty(t, records)

	var emitID string
	msgs := make([]string, 0, len(records))
	for _, rec := range records {
		assert.Equal(t, "orders", rec["dispatcher"])
		id, _ := rec["emit_id"].(string)
		require.NotEmpty(t, id)
		if emitID == "" {
			emitID = id
		}
		assert.Equal(t, emitID, id, "all records of one emit share its id")
		msgs = append(msgs, rec["msg"].(string))
	}

	assert.Equal(t, "emit starting", msgs[0])
	assert.Equal(t, "emit failed", msgs[len(msgs)-1])
	assert.Contains(t, msgs, "handler skipped after failure")
}

func TestWithMetricsRecorder(t *testing.T) {
	m := &fakeMetrics{}
	w := wire.New[*payload](wire.WithMetricsRecorder(m))

	mustOn(t)(w.On("a.*", record(1), wire.WithName("one")))
	mustOn(t)(w.On("a.b", record(2), wire.WithName("two")))

	require.NoError(t, w.EmitAll(ctx(), []string{"a.b", "a.c"}, &payload{}))

	assert.Equal(t, []error{nil}, m.emits)
	assert.Equal(t, []string{"a.b/one", "a.b/two", "a.c/one"}, m.handlers)
	assert.Equal(t, map[string]int{"a.b": 2, "a.c": 1}, m.resolves)
}

func TestWithSpanManager(t *testing.T) {
	s := &fakeSpans{}
	w := wire.New[*payload](wire.WithSpanManager(s), wire.WithDispatcherName("orders"))
	testErr := errors.New("test")

	mustOn(t)(w.On("test", fail(testErr), wire.WithName("first")))
	mustOn(t)(w.On("test", record(1), wire.WithName("second")))

	err := w.Emit(ctx(), "test", &payload{})
	require.Error(t, err)

	assert.Equal(t, []string{"emit:orders:test", "handler:test:first"}, s.starts)
	assert.Equal(t, []string{"handler.skipped:second"}, s.events)
	require.Len(t, s.ends, 2)
	assert.ErrorIs(t, s.ends[0], testErr, "handler span ends first")
	assert.ErrorIs(t, s.ends[1], testErr)
}

func TestWithNilObservers(t *testing.T) {
	w := wire.New[*payload](
		wire.WithLogger(nil),
		wire.WithMetricsRecorder(nil),
		wire.WithSpanManager(nil),
		wire.WithMetrics(false),
		wire.WithTracing(false),
	)
	mustOn(t)(w.On("test", record(1)))

	assert.Equal(t, []int{1}, emit(t, w, "test"))
}
