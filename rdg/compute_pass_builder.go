package rdg

import "github.com/kestrel3d/rdgo/rhi"

// ComputePassBuilder is the fluent declaration API for a compute pass node
// (§4.4 "create_compute_pass...similar shape; compute adds
// output_indirect_draw(buffer)").
type ComputePassBuilder struct {
	b    *Builder
	name string
	node *passNode
}

func (cb *ComputePassBuilder) ensure() *passNode {
	if cb.node == nil {
		cb.node = cb.b.createPassNode(cb.name, PassKindCompute)
	}
	return cb.node
}

func (cb *ComputePassBuilder) RootSignature(info rhi.RootSignatureInfo) *ComputePassBuilder {
	n := cb.ensure()
	n.rootSignature, n.hasRootSig = info, true
	return cb
}

func (cb *ComputePassBuilder) PassIndex(x, y, z uint32) *ComputePassBuilder {
	cb.ensure().passIndex = [3]uint32{x, y, z}
	return cb
}

func (cb *ComputePassBuilder) ReadTexture(set, binding, index uint32, tex TextureHandle) *ComputePassBuilder {
	n := cb.ensure()
	cb.b.addTextureEdge(n.id, "ComputePassBuilder.ReadTexture", tex, AsShaderRead, textureBinding{
		viewType: rhi.TextureViewType2D, set: set, binding: binding, index: index,
	})
	return cb
}

// OutputReadTexture registers tex as a UAV this pass reads through (role
// AsOutputRead, pass->resource direction — the pass is the one "producing"
// the resource's tracked state going forward even though it only reads).
func (cb *ComputePassBuilder) OutputReadTexture(set, binding, index uint32, tex TextureHandle) *ComputePassBuilder {
	n := cb.ensure()
	cb.b.addTextureEdge(n.id, "ComputePassBuilder.OutputReadTexture", tex, AsOutputRead, textureBinding{
		viewType: rhi.TextureViewType2D, set: set, binding: binding, index: index,
	})
	return cb
}

// OutputReadWriteTexture registers tex as a UAV this pass reads and writes
// (role AsOutputReadWrite). This is the declaration S2 uses: a compute
// pass writing a RwTexture a later render pass reads as SRV.
func (cb *ComputePassBuilder) OutputReadWriteTexture(set, binding, index uint32, tex TextureHandle) *ComputePassBuilder {
	n := cb.ensure()
	cb.b.addTextureEdge(n.id, "ComputePassBuilder.OutputReadWriteTexture", tex, AsOutputReadWrite, textureBinding{
		viewType: rhi.TextureViewType2D, set: set, binding: binding, index: index,
	})
	return cb
}

func (cb *ComputePassBuilder) ReadBuffer(set, binding, index uint32, buf BufferHandle, offset, size uint64) *ComputePassBuilder {
	n := cb.ensure()
	cb.b.addBufferEdge(n.id, "ComputePassBuilder.ReadBuffer", buf, AsShaderRead, bufferBinding{
		offset: offset, size: size, set: set, binding: binding, index: index,
	})
	return cb
}

func (cb *ComputePassBuilder) OutputReadWriteBuffer(set, binding, index uint32, buf BufferHandle, offset, size uint64) *ComputePassBuilder {
	n := cb.ensure()
	cb.b.addBufferEdge(n.id, "ComputePassBuilder.OutputReadWriteBuffer", buf, AsOutputReadWrite, bufferBinding{
		offset: offset, size: size, set: set, binding: binding, index: index,
	})
	return cb
}

// OutputIndirectDraw registers buf as the indirect-draw argument buffer
// this compute pass populates (§4 SUPPLEMENTED FEATURES,
// output_indirect_draw).
func (cb *ComputePassBuilder) OutputIndirectDraw(buf BufferHandle) *ComputePassBuilder {
	n := cb.ensure()
	cb.b.addBufferEdge(n.id, "ComputePassBuilder.OutputIndirectDraw", buf, AsOutputIndirectDraw, bufferBinding{})
	return cb
}

func (cb *ComputePassBuilder) Execute(fn func(*PassContext)) *ComputePassBuilder {
	cb.ensure().executeFn = fn
	return cb
}

func (cb *ComputePassBuilder) Finish() ComputePassHandle {
	n := cb.ensure()
	h := ComputePassHandle{id: n.id}
	cb.b.blackboard.computePasses[cb.name] = h
	return h
}
