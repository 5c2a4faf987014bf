package respool

import "github.com/kestrel3d/rdgo/rhi"

// TextureViewPool caches rhi.TextureView instances keyed on the full
// TextureViewInfo, with Format and Subresource normalized from the
// underlying texture's own defaults first (§4.3) so two callers asking for
// "the whole texture, native format" resolve to the same key regardless of
// whether they spelled out the format or subresource range explicitly.
type TextureViewPool struct {
	backend rhi.Backend
	pool    *keyedPool[rhi.TextureViewInfo, rhi.TextureView]
}

// NewTextureViewPool builds a texture view pool backed by backend.
func NewTextureViewPool(backend rhi.Backend) *TextureViewPool {
	return &TextureViewPool{backend: backend, pool: newKeyedPool[rhi.TextureViewInfo, rhi.TextureView]()}
}

// Acquire returns a view matching info once normalized against tex's own
// info, creating one through the backend if the free list holds none.
func (p *TextureViewPool) Acquire(info rhi.TextureViewInfo) rhi.TextureView {
	key := normalizeViewInfo(info)
	return p.pool.acquire(key, func(rhi.TextureView) bool { return true }, func() rhi.TextureView {
		return p.backend.CreateTextureView(key)
	})
}

// normalizeViewInfo fills in Format and Subresource from the referenced
// texture's own info when left at their zero values.
func normalizeViewInfo(info rhi.TextureViewInfo) rhi.TextureViewInfo {
	if info.Texture == nil {
		return info
	}
	texInfo := info.Texture.Info()
	if info.Format == rhi.FormatUnknown {
		info.Format = texInfo.Format
	}
	if info.Subresource.IsDefault() {
		info.Subresource = rhi.TextureSubresourceRange{
			Aspect:     defaultAspect(texInfo.Format),
			BaseMip:    0,
			LevelCount: texInfo.Normalized().MipLevels,
			BaseLayer:  0,
			LayerCount: texInfo.ArrayLayers,
		}
	}
	return info
}

func defaultAspect(f rhi.Format) rhi.TextureAspect {
	if f.IsDepthStencil() {
		if f == rhi.FormatD24UnormS8Uint || f == rhi.FormatD32FloatS8Uint {
			return rhi.TextureAspectDepth | rhi.TextureAspectStencil
		}
		return rhi.TextureAspectDepth
	}
	return rhi.TextureAspectColor
}

// Release returns view to the free list under its own normalized info.
func (p *TextureViewPool) Release(view rhi.TextureView) {
	p.pool.release(normalizeViewInfo(view.Info()), view)
}

// PooledSize reports how many views currently sit idle across every key.
func (p *TextureViewPool) PooledSize() int { return p.pool.pooledSize() }

// AllocatedSize reports the total number of views ever created by this
// pool.
func (p *TextureViewPool) AllocatedSize() int { return p.pool.allocatedSize() }

// Clear releases every pooled view's backend reference and empties the free
// lists.
func (p *TextureViewPool) Clear() {
	p.pool.clear(func(v rhi.TextureView) { v.Release() })
}
