package xcresult

import (
	"fmt"
	"sync"
)

// cache memoizes the result of an expensive, deterministic
// computation keyed by K. It is safe for concurrent use. Concurrent
// misses on the same key may compute the value more than once, and
// the first stored result wins.
type cache[K comparable, V any] struct {
	m sync.Map
}

type cacheEntry[V any] struct {
	val V
	err error
}

// Get returns the cached value for k, computing it with mk on a
// miss. Errors are cached too.
func (c *cache[K, V]) Get(k K, mk func(K) (V, error)) (V, error) {
	if ent, ok := c.m.Load(k); ok {
		return c.unpack(ent)
	}
	val, err := mk(k)
	ent, _ := c.m.LoadOrStore(k, cacheEntry[V]{val, err})
	return c.unpack(ent)
}

func (c *cache[K, V]) unpack(ent any) (V, error) {
	if e, ok := ent.(cacheEntry[V]); ok {
		return e.val, e.err
	}
	panic(fmt.Sprintf("mystery value %v (%T) in cache", ent, ent))
}
