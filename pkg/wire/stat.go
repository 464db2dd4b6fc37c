package wire

// Stat summarizes one registered pattern.
type Stat struct {
	Pattern  string
	Handlers int
}

// Has reports whether a plain listener is registered on exactly name.
// Wildcard patterns and Before/After hooks are not considered, so Has
// distinguishes a real listener from meta hooks.
func (w *Wire[T]) Has(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	bucket, ok := w.buckets.Get(name)
	if !ok {
		return false
	}
	for _, e := range bucket {
		if e.flavor == FlavorPlain {
			return true
		}
	}
	return false
}

// Stat returns one record per registered pattern in the order the patterns
// were first registered.
func (w *Wire[T]) Stat() []Stat {
	w.mu.Lock()
	defer w.mu.Unlock()

	stats := make([]Stat, 0, w.buckets.Len())
	w.buckets.Range(func(pattern string, entries []*entry[T]) bool {
		stats = append(stats, Stat{Pattern: pattern, Handlers: len(entries)})
		return true
	})
	return stats
}
