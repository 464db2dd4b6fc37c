package wire

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/randalmurphal/eventwire/pkg/wire/observability"
)

// resolve builds the handler chain for one channel.
//
// The chain is the union of entries from every pattern matching channel,
// minus entries whose name is suppressed by a matching skip rule, ordered
// by priority and then registration order. One-shot entries included in
// the chain are removed from the registry before resolve returns.
func (w *Wire[T]) resolve(channel string, logger *slog.Logger) []*entry[T] {
	w.mu.Lock()
	defer w.mu.Unlock()

	suppressed := make(map[string]struct{})
	w.skips.Range(func(pattern string, names map[string]struct{}) bool {
		if Matches(pattern, channel) {
			for n := range names {
				suppressed[n] = struct{}{}
			}
		}
		return true
	})

	var chain []*entry[T]
	w.buckets.Range(func(pattern string, entries []*entry[T]) bool {
		if !Matches(pattern, channel) {
			return true
		}
		for _, e := range entries {
			if _, skip := suppressed[e.name]; skip {
				continue
			}
			chain = append(chain, e)
		}
		return true
	})

	slices.SortFunc(chain, func(a, b *entry[T]) int {
		if c := cmp.Compare(a.priority, b.priority); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})

	for _, e := range chain {
		if e.once {
			w.removeEntry(e)
			observability.LogOnceExpired(logger, e.pattern, e.name)
		}
	}

	return chain
}

// removeEntry drops a single entry from its pattern bucket.
// Callers hold w.mu.
func (w *Wire[T]) removeEntry(target *entry[T]) {
	bucket, ok := w.buckets.Get(target.pattern)
	if !ok {
		return
	}
	kept := make([]*entry[T], 0, len(bucket))
	for _, e := range bucket {
		if e != target {
			kept = append(kept, e)
		}
	}
	w.storeBucket(target.pattern, kept)
}
