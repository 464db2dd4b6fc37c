package registry

// Ordered is a map that remembers the order in which keys were first added.
type Ordered[K comparable, V any] struct {
	index   map[K]int
	keys    []K
	entries map[K]V
}

// New creates a new empty registry.
func New[K comparable, V any]() *Ordered[K, V] {
	return &Ordered[K, V]{
		index:   make(map[K]int),
		entries: make(map[K]V),
	}
}

// Register adds or updates a value. New keys are appended to the order.
func (r *Ordered[K, V]) Register(key K, value V) {
	if _, ok := r.entries[key]; !ok {
		r.index[key] = len(r.keys)
		r.keys = append(r.keys, key)
	}
	r.entries[key] = value
}

// Get returns the value for a key and whether it exists.
func (r *Ordered[K, V]) Get(key K) (V, bool) {
	v, ok := r.entries[key]
	return v, ok
}

// Has returns true if the key exists in the registry.
func (r *Ordered[K, V]) Has(key K) bool {
	_, ok := r.entries[key]
	return ok
}

// Delete removes a key. Deleting a missing key is a no-op.
func (r *Ordered[K, V]) Delete(key K) {
	i, ok := r.index[key]
	if !ok {
		return
	}
	delete(r.entries, key)
	delete(r.index, key)

	copy(r.keys[i:], r.keys[i+1:])
	var zero K
	r.keys[len(r.keys)-1] = zero
	r.keys = r.keys[:len(r.keys)-1]

	for j := i; j < len(r.keys); j++ {
		r.index[r.keys[j]] = j
	}
}

// Keys returns all keys in insertion order.
// The returned slice is a copy.
func (r *Ordered[K, V]) Keys() []K {
	keys := make([]K, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of entries in the registry.
func (r *Ordered[K, V]) Len() int {
	return len(r.keys)
}

// Range calls fn for each entry in insertion order until fn returns false.
//
// Range iterates over a snapshot of the keys, so fn may Register or Delete
// without disturbing the iteration. Keys deleted before they are reached
// are skipped.
func (r *Ordered[K, V]) Range(fn func(K, V) bool) {
	for _, k := range r.Keys() {
		v, ok := r.entries[k]
		if !ok {
			continue
		}
		if !fn(k, v) {
			return
		}
	}
}

// GetOrCreate returns the value for a key, storing factory() under the key
// first if it does not exist yet.
func (r *Ordered[K, V]) GetOrCreate(key K, factory func() V) V {
	if v, ok := r.entries[key]; ok {
		return v
	}
	v := factory()
	r.Register(key, v)
	return v
}
