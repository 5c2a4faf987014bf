package respool

import "github.com/kestrel3d/rdgo/rhi"

// textureEntry pairs a pooled texture with the ResourceState it was
// released in (§4.3).
type textureEntry struct {
	tex   rhi.Texture
	state rhi.ResourceState
}

// TexturePool caches rhi.Texture instances keyed on the full normalized
// TextureInfo (§4.3): unlike buffers, textures are keyed exactly — format,
// extent, array layers, mip count, memory usage, type flags and creation
// flags must all match for reuse, since a texture's dimensions are baked
// into its GPU allocation in a way a buffer's byte size is not.
type TexturePool struct {
	backend rhi.Backend
	pool    *keyedPool[rhi.TextureInfo, textureEntry]
}

// NewTexturePool builds a texture pool backed by backend.
func NewTexturePool(backend rhi.Backend) *TexturePool {
	return &TexturePool{backend: backend, pool: newKeyedPool[rhi.TextureInfo, textureEntry]()}
}

// Acquire returns a texture matching info's normalized form exactly and the
// ResourceState it was last released in (rhi.ResourceStateUndefined for a
// freshly created texture), creating one through the backend if the free
// list holds none.
func (p *TexturePool) Acquire(info rhi.TextureInfo) (rhi.Texture, rhi.ResourceState) {
	key := info.Normalized()
	e := p.pool.acquire(key, func(textureEntry) bool { return true }, func() textureEntry {
		return textureEntry{tex: p.backend.CreateTexture(key), state: rhi.ResourceStateUndefined}
	})
	return e.tex, e.state
}

// Release returns tex to the free list under its own normalized info,
// recording state as the ResourceState the caller left it in.
func (p *TexturePool) Release(tex rhi.Texture, state rhi.ResourceState) {
	p.pool.release(tex.Info().Normalized(), textureEntry{tex: tex, state: state})
}

// PooledSize reports how many textures currently sit idle across every key.
func (p *TexturePool) PooledSize() int { return p.pool.pooledSize() }

// AllocatedSize reports the total number of textures ever created by this
// pool.
func (p *TexturePool) AllocatedSize() int { return p.pool.allocatedSize() }

// Clear releases every pooled texture's backend reference and empties the
// free lists.
func (p *TexturePool) Clear() {
	p.pool.clear(func(e textureEntry) { e.tex.Release() })
}
