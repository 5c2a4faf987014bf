package respool

import "github.com/kestrel3d/rdgo/rhi"

// descriptorSetKey identifies one ring slot of descriptor sets: a root
// signature, a set index within it, and a frame-in-flight slot (§3.5).
// Binding the same (layout, set) pair in two different in-flight frames
// must never hand out the same underlying descriptor set, since the GPU
// may still be reading frame N-1's bindings while frame N is recorded.
type descriptorSetKey struct {
	layout   rhi.RootSignature
	setIndex uint32
	frame    uint32
}

// DescriptorSetPool caches rhi.DescriptorSet instances keyed by
// (RootSignature, set index, frame-in-flight slot), ring-buffered across
// rhi.FramesInFlight slots so concurrent in-flight frames never alias the
// same descriptor set object (§3.5, §4.3).
type DescriptorSetPool struct {
	backend rhi.Backend
	pool    *keyedPool[descriptorSetKey, rhi.DescriptorSet]
}

// NewDescriptorSetPool builds a descriptor set pool backed by backend.
func NewDescriptorSetPool(backend rhi.Backend) *DescriptorSetPool {
	return &DescriptorSetPool{backend: backend, pool: newKeyedPool[descriptorSetKey, rhi.DescriptorSet]()}
}

// Acquire returns a descriptor set for layout/setIndex scoped to
// frameIndex mod rhi.FramesInFlight, creating one through the backend if
// the free list holds none for that ring slot.
func (p *DescriptorSetPool) Acquire(layout rhi.RootSignature, setIndex uint32, frameIndex uint64) rhi.DescriptorSet {
	key := descriptorSetKey{layout: layout, setIndex: setIndex, frame: uint32(frameIndex % rhi.FramesInFlight)}
	return p.pool.acquire(key, func(rhi.DescriptorSet) bool { return true }, func() rhi.DescriptorSet {
		return p.backend.CreateDescriptorSet(layout, setIndex)
	})
}

// Release returns set back to the free list for the ring slot it was
// acquired under.
func (p *DescriptorSetPool) Release(set rhi.DescriptorSet, frameIndex uint64) {
	key := descriptorSetKey{layout: set.Layout(), setIndex: set.SetIndex(), frame: uint32(frameIndex % rhi.FramesInFlight)}
	p.pool.release(key, set)
}

// PooledSize reports how many descriptor sets currently sit idle across
// every ring slot.
func (p *DescriptorSetPool) PooledSize() int { return p.pool.pooledSize() }

// AllocatedSize reports the total number of descriptor sets ever created
// by this pool.
func (p *DescriptorSetPool) AllocatedSize() int { return p.pool.allocatedSize() }

// Clear releases every pooled descriptor set's backend reference and
// empties the free lists.
func (p *DescriptorSetPool) Clear() {
	p.pool.clear(func(s rhi.DescriptorSet) { s.Release() })
}
