package rdg

import "github.com/kestrel3d/rdgo/rhi"

// PresentPassBuilder is the fluent declaration API for a present pass node
// (§4.4 "create_present_pass(name).texture(source,
// layers).present_texture(swapchain_backbuffer)").
type PresentPassBuilder struct {
	b    *Builder
	name string
	node *passNode
}

func (pp *PresentPassBuilder) ensure() *passNode {
	if pp.node == nil {
		pp.node = pp.b.createPassNode(pp.name, PassKindPresent)
	}
	return pp.node
}

// Texture binds the source texture whose contents are blitted to the
// swapchain backbuffer.
func (pp *PresentPassBuilder) Texture(tex TextureHandle, layers rhi.TextureSubresourceLayers) *PresentPassBuilder {
	n := pp.ensure()
	if !tex.Valid() {
		warnMissingBinding("PresentPassBuilder.Texture", "")
		return pp
	}
	n.presentSrc = &copyEndpoint{texture: tex.id, layers: layers}
	pp.b.addTextureEdge(n.id, "PresentPassBuilder.Texture", tex, AsTransferSrc, textureBinding{
		viewType: rhi.TextureViewType2D,
		subresource: rhi.TextureSubresourceRange{
			Aspect: layers.Aspect, BaseMip: layers.MipLevel, LevelCount: 1,
			BaseLayer: layers.BaseLayer, LayerCount: layers.LayerCount,
		},
	})
	return pp
}

// PresentTexture binds the swapchain backbuffer texture this pass presents.
func (pp *PresentPassBuilder) PresentTexture(backbuffer TextureHandle) *PresentPassBuilder {
	n := pp.ensure()
	if !backbuffer.Valid() {
		warnMissingBinding("PresentPassBuilder.PresentTexture", "")
		return pp
	}
	n.presentDst = &copyEndpoint{texture: backbuffer.id}
	pp.b.addTextureEdge(n.id, "PresentPassBuilder.PresentTexture", backbuffer, AsPresent, textureBinding{
		viewType: rhi.TextureViewType2D,
	})
	return pp
}

func (pp *PresentPassBuilder) Finish() PresentPassHandle {
	n := pp.ensure()
	h := PresentPassHandle{id: n.id}
	pp.b.blackboard.presentPasses[pp.name] = h
	return h
}
