package wire

import (
	"github.com/google/uuid"
)

// On registers h on pattern with default priority 0 and returns the
// handler ID accepted by Off.
//
// Example:
//
//	id, err := w.On("order.*", wire.Sync(audit), wire.WithPriority(5))
func (w *Wire[T]) On(pattern string, h Handler[T], opts ...RegisterOption) (string, error) {
	return w.register("on", FlavorPlain, []string{pattern}, h, opts)
}

// Before registers h on pattern with default priority -10.
// An explicit priority above zero is rejected.
func (w *Wire[T]) Before(pattern string, h Handler[T], opts ...RegisterOption) (string, error) {
	return w.register("before", FlavorBefore, []string{pattern}, h, opts)
}

// After registers h on pattern with default priority 10.
// An explicit priority below zero is rejected.
func (w *Wire[T]) After(pattern string, h Handler[T], opts ...RegisterOption) (string, error) {
	return w.register("after", FlavorAfter, []string{pattern}, h, opts)
}

// Once registers a plain one-shot handler. It takes part in exactly one
// chain: the next emit whose channel matches pattern. It is removed when
// that chain is resolved, before any handler runs.
func (w *Wire[T]) Once(pattern string, h Handler[T], opts ...RegisterOption) (string, error) {
	return w.register("once", FlavorPlain, []string{pattern}, h, append(opts, WithOnce()))
}

// Register adds h under every pattern in patterns with the given flavor.
// All entries created by one call share the returned ID. Validation
// happens before anything is stored, so a rejected call registers nothing.
func (w *Wire[T]) Register(flavor Flavor, patterns []string, h Handler[T], opts ...RegisterOption) (string, error) {
	return w.register("register", flavor, patterns, h, opts)
}

func (w *Wire[T]) register(op string, flavor Flavor, patterns []string, h Handler[T], opts []RegisterOption) (string, error) {
	if !h.valid() {
		return "", invalid(op, "handler", "", ErrNilHandler)
	}
	if len(patterns) == 0 {
		return "", invalid(op, "pattern", "", ErrEmptyPattern)
	}
	for _, p := range patterns {
		if err := validatePattern(op, p); err != nil {
			return "", err
		}
	}

	reg := registration{
		priority: flavor.defaultPriority(),
		name:     h.Name(),
	}
	for _, opt := range opts {
		opt(&reg)
	}

	if reg.hasPriority {
		switch {
		case flavor == FlavorBefore && reg.priority > 0,
			flavor == FlavorAfter && reg.priority < 0:
			return "", invalid(op, "priority", "", ErrPrioritySign)
		}
	}

	id := uuid.NewString()

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range patterns {
		w.seq++
		e := &entry[T]{
			id:       id,
			pattern:  p,
			name:     reg.name,
			flavor:   flavor,
			priority: reg.priority,
			ensure:   reg.ensure,
			once:     reg.once,
			order:    w.seq,
			handler:  h,
		}
		bucket, _ := w.buckets.Get(p)
		w.buckets.Register(p, append(bucket, e))
	}

	return id, nil
}

// Off removes the handlers registered on exactly pattern whose ID or name
// equals ref. It reports whether anything was removed. A pattern left
// without handlers disappears from Stat.
func (w *Wire[T]) Off(pattern, ref string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	bucket, ok := w.buckets.Get(pattern)
	if !ok {
		return false
	}

	kept := make([]*entry[T], 0, len(bucket))
	for _, e := range bucket {
		if e.id == ref || e.name == ref {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == len(bucket) {
		return false
	}

	w.storeBucket(pattern, kept)
	return true
}

// Skip suppresses handlers named in names on every channel matched by
// pattern. Rules accumulate across calls; repeating a rule has no
// further effect. Skip rules are never removed.
func (w *Wire[T]) Skip(pattern string, names ...string) error {
	if err := validatePattern("skip", pattern); err != nil {
		return err
	}
	if len(names) == 0 {
		return invalid("skip", "names", "", ErrNoSkipNames)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	set := w.skips.GetOrCreate(pattern, func() map[string]struct{} {
		return make(map[string]struct{}, len(names))
	})
	for _, n := range names {
		set[n] = struct{}{}
	}
	return nil
}

// storeBucket replaces a pattern's entries, dropping the pattern when empty.
// Callers hold w.mu.
func (w *Wire[T]) storeBucket(pattern string, entries []*entry[T]) {
	if len(entries) == 0 {
		w.buckets.Delete(pattern)
		return
	}
	w.buckets.Register(pattern, entries)
}
