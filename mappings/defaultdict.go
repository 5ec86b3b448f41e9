// Package mappings holds small map adapters.
package mappings

import "sync"

// DefaultDictKey is a map that fills a missing key by calling its factory
// with that key. The computed value is stored, so the factory runs at most
// once per key. It is safe for concurrent use.
type DefaultDictKey[K comparable, V any] struct {
	mu      sync.Mutex
	factory func(K) V
	m       map[K]V
}

// NewDefaultDictKey returns an empty DefaultDictKey backed by factory.
func NewDefaultDictKey[K comparable, V any](factory func(K) V) *DefaultDictKey[K, V] {
	return &DefaultDictKey[K, V]{factory: factory, m: make(map[K]V)}
}

// Get returns the value for k, computing and storing it on a miss.
func (d *DefaultDictKey[K, V]) Get(k K) V {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v, ok := d.m[k]; ok {
		return v
	}
	v := d.factory(k)
	d.m[k] = v
	return v
}

// Lookup returns the stored value for k without computing one.
func (d *DefaultDictKey[K, V]) Lookup(k K) (V, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.m[k]
	return v, ok
}

// Set stores v under k.
func (d *DefaultDictKey[K, V]) Set(k K, v V) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.m[k] = v
}

// Delete removes k.
func (d *DefaultDictKey[K, V]) Delete(k K) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.m, k)
}

// Len returns the number of stored keys.
func (d *DefaultDictKey[K, V]) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.m)
}
