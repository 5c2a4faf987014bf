package rdg

import "github.com/kestrel3d/rdgo/rhi"

// RenderPassBuilder is the fluent declaration API for a render pass node
// (§4.4 "create_render_pass(name)...execute(closure).finish()").
type RenderPassBuilder struct {
	b    *Builder
	name string
	node *passNode
}

func (rb *RenderPassBuilder) ensure() *passNode {
	if rb.node == nil {
		rb.node = rb.b.createPassNode(rb.name, PassKindRender)
	}
	return rb.node
}

// RootSignature configures the pipeline layout used for descriptor set
// allocation during this pass (§4.4 step 1).
func (rb *RenderPassBuilder) RootSignature(info rhi.RootSignatureInfo) *RenderPassBuilder {
	n := rb.ensure()
	n.rootSignature, n.hasRootSig = info, true
	return rb
}

// PassIndex sets the user-defined pipeline-keying index (§4 SUPPLEMENTED
// FEATURES, recovered from original_source's pass_index[3]).
func (rb *RenderPassBuilder) PassIndex(x, y, z uint32) *RenderPassBuilder {
	rb.ensure().passIndex = [3]uint32{x, y, z}
	return rb
}

// Color binds tex as the color attachment at the given slot, with the
// given load/store ops and clear color, covering the default (whole
// texture) subresource range.
func (rb *RenderPassBuilder) Color(binding uint32, tex TextureHandle, loadOp rhi.AttachmentLoadOp, storeOp rhi.AttachmentStoreOp, clear [4]float32) *RenderPassBuilder {
	n := rb.ensure()
	if !tex.Valid() {
		warnMissingBinding("RenderPassBuilder.Color", "")
		return rb
	}
	n.colors = append(n.colors, colorAttachmentSlot{
		binding: binding, texture: tex.id, loadOp: loadOp, storeOp: storeOp, clearColor: clear,
	})
	rb.b.addTextureEdge(n.id, "RenderPassBuilder.Color", tex, AsColor, textureBinding{
		viewType: rhi.TextureViewType2D, binding: binding,
	})
	return rb
}

// DepthStencil binds tex as the depth/stencil attachment. readOnly marks
// the attachment bound for testing only, not writing (ReadOnlyDepth role,
// resource->pass direction).
func (rb *RenderPassBuilder) DepthStencil(tex TextureHandle, depthLoad, depthStore rhi.AttachmentLoadOp, depthClear float32, stencilLoad, stencilStore rhi.AttachmentLoadOp, stencilClear uint32, readOnly bool) *RenderPassBuilder {
	n := rb.ensure()
	if !tex.Valid() {
		warnMissingBinding("RenderPassBuilder.DepthStencil", "")
		return rb
	}
	n.depth = &depthAttachmentSlot{
		texture: tex.id, depthLoadOp: depthLoad, depthStoreOp: depthStore, depthClearValue: depthClear,
		stencilLoadOp: stencilLoad, stencilStoreOp: stencilStore, stencilClearValue: stencilClear,
		readOnly: readOnly,
	}
	role := AsDepthStencil
	if readOnly {
		role |= ReadOnlyDepth
	}
	rb.b.addTextureEdge(n.id, "RenderPassBuilder.DepthStencil", tex, role, textureBinding{viewType: rhi.TextureViewType2D})
	return rb
}

// ReadTexture binds tex as a sampled shader resource at (set, binding,
// index).
func (rb *RenderPassBuilder) ReadTexture(set, binding, index uint32, tex TextureHandle) *RenderPassBuilder {
	n := rb.ensure()
	rb.b.addTextureEdge(n.id, "RenderPassBuilder.ReadTexture", tex, AsShaderRead, textureBinding{
		viewType: rhi.TextureViewType2D, set: set, binding: binding, index: index,
	})
	return rb
}

// ReadWriteTexture binds tex as a general read-write storage binding at
// (set, binding, index) — distinct from a UAV output declared via a
// compute/ray-tracing pass's OutputReadWrite.
func (rb *RenderPassBuilder) ReadWriteTexture(set, binding, index uint32, tex TextureHandle) *RenderPassBuilder {
	n := rb.ensure()
	rb.b.addTextureEdge(n.id, "RenderPassBuilder.ReadWriteTexture", tex, AsShaderReadWrite, textureBinding{
		viewType: rhi.TextureViewType2D, set: set, binding: binding, index: index,
	})
	return rb
}

// ReadBuffer binds buf as a uniform/constant buffer at (set, binding,
// index).
func (rb *RenderPassBuilder) ReadBuffer(set, binding, index uint32, buf BufferHandle, offset, size uint64) *RenderPassBuilder {
	n := rb.ensure()
	rb.b.addBufferEdge(n.id, "RenderPassBuilder.ReadBuffer", buf, AsShaderRead, bufferBinding{
		offset: offset, size: size, set: set, binding: binding, index: index,
	})
	return rb
}

// ReadWriteBuffer binds buf as a read-write storage buffer at (set,
// binding, index).
func (rb *RenderPassBuilder) ReadWriteBuffer(set, binding, index uint32, buf BufferHandle, offset, size uint64) *RenderPassBuilder {
	n := rb.ensure()
	rb.b.addBufferEdge(n.id, "RenderPassBuilder.ReadWriteBuffer", buf, AsShaderReadWrite, bufferBinding{
		offset: offset, size: size, set: set, binding: binding, index: index,
	})
	return rb
}

// Execute sets the pass's executor callback, invoked at step 6 of pass
// execution (§4.4, §6.3).
func (rb *RenderPassBuilder) Execute(fn func(*PassContext)) *RenderPassBuilder {
	rb.ensure().executeFn = fn
	return rb
}

// Finish registers the pass in the blackboard and returns its handle.
func (rb *RenderPassBuilder) Finish() RenderPassHandle {
	n := rb.ensure()
	h := RenderPassHandle{id: n.id}
	rb.b.blackboard.renderPasses[rb.name] = h
	return h
}
