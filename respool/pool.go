// Package respool implements the four keyed transient resource pools that
// back rdg.Builder's create_* calls (§3.5, §4.3): buffers, textures,
// texture views, and descriptor sets. Every pool is a free-list cache keyed
// on structural info rather than exact byte size, so a pass that reuses the
// same shape of resource across frames gets back the one GPU object the
// pool already allocated for it instead of a fresh one.
package respool

import "sync"

// keyedPool is the shared free-list mechanics every concrete pool below
// wraps with its own key/create/destroy types. Acquire/Release are called
// once per pass per frame; the mutex exists for the same future-proofing
// reason the backend takes one, not because passes actually run
// concurrently (§4.2 Non-goals).
type keyedPool[K comparable, R any] struct {
	mu        sync.Mutex
	free      map[K][]R
	allocated int
}

func newKeyedPool[K comparable, R any]() *keyedPool[K, R] {
	return &keyedPool[K, R]{free: make(map[K][]R)}
}

// acquire pops a pooled value matching key for which fits returns true,
// preferring the most recently released one (LIFO keeps hot cache lines
// warm). If none fits, create is invoked and the result counts toward
// AllocatedSize.
func (p *keyedPool[K, R]) acquire(key K, fits func(R) bool, create func() R) R {
	p.mu.Lock()
	defer p.mu.Unlock()
	list := p.free[key]
	for i := len(list) - 1; i >= 0; i-- {
		if fits(list[i]) {
			v := list[i]
			list[i] = list[len(list)-1]
			p.free[key] = list[:len(list)-1]
			return v
		}
	}
	p.allocated++
	return create()
}

// release returns v to the free list under key for future acquire calls.
func (p *keyedPool[K, R]) release(key K, v R) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free[key] = append(p.free[key], v)
}

// pooledSize returns the number of values currently sitting idle in free
// lists, summed across every key.
func (p *keyedPool[K, R]) pooledSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, list := range p.free {
		n += len(list)
	}
	return n
}

// allocatedSize returns the total number of values this pool has ever
// created via the create callback passed to acquire.
func (p *keyedPool[K, R]) allocatedSize() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.allocated
}

// clear drops every free-list entry, invoking destroy on each so the
// pool's reference to it is released. allocatedSize is left untouched —
// it tracks lifetime creation count, not current residency.
func (p *keyedPool[K, R]) clear(destroy func(R)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, list := range p.free {
		for _, v := range list {
			destroy(v)
		}
		delete(p.free, key)
	}
}
