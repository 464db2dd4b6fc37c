// Package registry provides an insertion-ordered map used as the backing
// store for wire's pattern buckets and skip rules.
//
// # Basic Usage
//
//	r := registry.New[string, int]()
//	r.Register("b", 2)
//	r.Register("a", 1)
//
//	r.Keys() // [b a]
//
// Re-registering an existing key replaces its value but keeps its
// original position. Deleting a key and registering it again moves it
// to the end.
//
// # Lazy Initialization
//
// GetOrCreate returns the value for a key, storing the factory's result
// first if the key is absent:
//
//	bucket := buckets.GetOrCreate("user.*", newBucket)
//
// # Thread Safety
//
// Ordered is NOT safe for concurrent use. Its owner is expected to hold
// its own lock around every call, which lets a single critical section
// span several registry operations (lookup, mutate, delete-if-empty).
package registry
