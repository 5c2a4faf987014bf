package rdg

import "github.com/kestrel3d/rdgo/rhi"

// CopyPassBuilder is the fluent declaration API for a copy pass node (§4.4
// "create_copy_pass(name).from(texture, layers).to(texture,
// layers).generate_mips()?"). Exactly one From and one To are expected.
type CopyPassBuilder struct {
	b    *Builder
	name string
	node *passNode
}

func (cp *CopyPassBuilder) ensure() *passNode {
	if cp.node == nil {
		cp.node = cp.b.createPassNode(cp.name, PassKindCopy)
	}
	return cp.node
}

// From binds the copy source texture and its subresource layers.
func (cp *CopyPassBuilder) From(tex TextureHandle, layers rhi.TextureSubresourceLayers) *CopyPassBuilder {
	n := cp.ensure()
	if !tex.Valid() {
		warnMissingBinding("CopyPassBuilder.From", "")
		return cp
	}
	n.copyFrom = &copyEndpoint{texture: tex.id, layers: layers}
	cp.b.addTextureEdge(n.id, "CopyPassBuilder.From", tex, AsTransferSrc, textureBinding{
		viewType: rhi.TextureViewType2D,
		subresource: rhi.TextureSubresourceRange{
			Aspect: layers.Aspect, BaseMip: layers.MipLevel, LevelCount: 1,
			BaseLayer: layers.BaseLayer, LayerCount: layers.LayerCount,
		},
	})
	return cp
}

// To binds the copy destination texture and its subresource layers.
func (cp *CopyPassBuilder) To(tex TextureHandle, layers rhi.TextureSubresourceLayers) *CopyPassBuilder {
	n := cp.ensure()
	if !tex.Valid() {
		warnMissingBinding("CopyPassBuilder.To", "")
		return cp
	}
	n.copyTo = &copyEndpoint{texture: tex.id, layers: layers}
	cp.b.addTextureEdge(n.id, "CopyPassBuilder.To", tex, AsTransferDst, textureBinding{
		viewType: rhi.TextureViewType2D,
		subresource: rhi.TextureSubresourceRange{
			Aspect: layers.Aspect, BaseMip: layers.MipLevel, LevelCount: 1,
			BaseLayer: layers.BaseLayer, LayerCount: layers.LayerCount,
		},
	})
	return cp
}

// GenerateMips additionally fills every mip below 0 of the destination
// texture from its base level once the copy completes (§4.4 copy-pass
// specialization). On a single-mip texture this is a no-op (§8 boundary
// behavior) but the surrounding barrier pair is still emitted.
func (cp *CopyPassBuilder) GenerateMips() *CopyPassBuilder {
	cp.ensure().generateMipsOnCopy = true
	return cp
}

func (cp *CopyPassBuilder) Finish() CopyPassHandle {
	n := cp.ensure()
	h := CopyPassHandle{id: n.id}
	cp.b.blackboard.copyPasses[cp.name] = h
	return h
}
