package respool

import "github.com/kestrel3d/rdgo/rhi"

// bufferEntry pairs a pooled buffer with the ResourceState it was released
// in, so the next allocator sees the correct starting state for barrier
// inference (§4.3 "Returned metadata with each allocate: ... its last
// known ResourceState").
type bufferEntry struct {
	buf   rhi.Buffer
	state rhi.ResourceState
}

// BufferPool caches rhi.Buffer instances keyed on (MemoryUsage, Type,
// CreationFlags) — Size and Stride are deliberately excluded from the key
// (§4.3): a pooled buffer that is already large enough for a smaller
// request is reused rather than rejected.
type BufferPool struct {
	backend rhi.Backend
	pool    *keyedPool[rhi.BufferPoolKey, bufferEntry]
}

// NewBufferPool builds a buffer pool that creates new buffers through
// backend when the free list holds nothing suitable.
func NewBufferPool(backend rhi.Backend) *BufferPool {
	return &BufferPool{backend: backend, pool: newKeyedPool[rhi.BufferPoolKey, bufferEntry]()}
}

// Acquire returns a buffer satisfying info and the ResourceState it was
// last released in (rhi.ResourceStateUndefined for a freshly created
// buffer), reusing a pooled one whose capacity is at least as large when
// one exists.
func (p *BufferPool) Acquire(info rhi.BufferInfo) (rhi.Buffer, rhi.ResourceState) {
	key := info.PoolKey()
	e := p.pool.acquire(key, func(e bufferEntry) bool {
		existing := e.buf.Info()
		return existing.Size >= info.Size && existing.Stride == info.Stride
	}, func() bufferEntry {
		return bufferEntry{buf: p.backend.CreateBuffer(info), state: rhi.ResourceStateUndefined}
	})
	return e.buf, e.state
}

// Release returns buf to the free list under its own info's pool key,
// recording state as the ResourceState the caller left it in.
func (p *BufferPool) Release(buf rhi.Buffer, state rhi.ResourceState) {
	p.pool.release(buf.Info().PoolKey(), bufferEntry{buf: buf, state: state})
}

// PooledSize reports how many buffers currently sit idle across every key.
func (p *BufferPool) PooledSize() int { return p.pool.pooledSize() }

// AllocatedSize reports the total number of buffers ever created by this
// pool.
func (p *BufferPool) AllocatedSize() int { return p.pool.allocatedSize() }

// Clear releases every pooled buffer's backend reference and empties the
// free lists.
func (p *BufferPool) Clear() {
	p.pool.clear(func(e bufferEntry) { e.buf.Release() })
}
