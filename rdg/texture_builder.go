package rdg

import "github.com/kestrel3d/rdgo/rhi"

// TextureBuilder is the fluent declaration API for one texture resource
// node (§4.4 "create_texture(name)...finish()").
type TextureBuilder struct {
	b    *Builder
	name string

	info     rhi.TextureInfo
	imported bool
	importedHandle rhi.Texture
	initialState   rhi.ResourceState
}

func (tb *TextureBuilder) Format(f rhi.Format) *TextureBuilder {
	tb.info.Format = f
	return tb
}

func (tb *TextureBuilder) Extent(e rhi.Extent3D) *TextureBuilder {
	tb.info.Extent = e
	return tb
}

func (tb *TextureBuilder) MemoryUsage(u rhi.MemoryUsage) *TextureBuilder {
	tb.info.MemoryUsage = u
	return tb
}

func (tb *TextureBuilder) MipLevels(n uint32) *TextureBuilder {
	tb.info.MipLevels = n
	return tb
}

func (tb *TextureBuilder) ArrayLayers(n uint32) *TextureBuilder {
	tb.info.ArrayLayers = n
	return tb
}

// AllowRenderTarget marks the texture usable as a color attachment.
func (tb *TextureBuilder) AllowRenderTarget() *TextureBuilder {
	tb.info.Type |= rhi.ResourceTypeRenderTarget
	return tb
}

// AllowDepthStencil marks the texture usable as a depth/stencil attachment.
func (tb *TextureBuilder) AllowDepthStencil() *TextureBuilder {
	tb.info.Type |= rhi.ResourceTypeDepthStencil
	return tb
}

// AllowShaderRead marks the texture usable as a sampled shader resource.
func (tb *TextureBuilder) AllowShaderRead() *TextureBuilder {
	tb.info.Type |= rhi.ResourceTypeTexture
	return tb
}

// AllowReadWrite marks the texture usable as a UAV (RwTexture).
func (tb *TextureBuilder) AllowReadWrite() *TextureBuilder {
	tb.info.Type |= rhi.ResourceTypeRwTexture
	return tb
}

// Import registers the node as wrapping an externally-owned RHI texture
// (e.g. a swapchain backbuffer) already in initialState. Imported
// resources are never destroyed or returned to the pool by the graph
// (§3.5, §5).
func (tb *TextureBuilder) Import(tex rhi.Texture, initialState rhi.ResourceState) *TextureBuilder {
	tb.imported = true
	tb.importedHandle = tex
	tb.initialState = initialState
	if tex != nil {
		tb.info = tex.Info()
	}
	return tb
}

// Finish allocates the node, registers it in the blackboard under its
// declared name, and returns its handle.
func (tb *TextureBuilder) Finish() TextureHandle {
	n := &textureNode{
		name:         tb.name,
		info:         tb.info.Normalized(),
		imported:     tb.imported,
		handle:       tb.importedHandle,
		initialState: tb.initialState,
		currentState: tb.initialState,
	}
	if tb.imported {
		n.resolved = true
	}
	id := tb.b.graph.CreateNode(n)
	h := TextureHandle{id: id}
	tb.b.blackboard.textures[tb.name] = h
	return h
}
